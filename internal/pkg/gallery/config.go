package gallery

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v3"

	"github.com/dmcfuji/studiosite/app/models"
	"github.com/dmcfuji/studiosite/internal/pkg/env"
)

// RefreshPolicy decides whether listings may be served from cache.
type RefreshPolicy string

const (
	// PolicyServerOnly lists storage on every call.
	PolicyServerOnly RefreshPolicy = "server-only"
	// PolicyStaleWhileRevalidate serves the cached listing and refreshes it in the background
	// once it is older than the TTL. Pages rendered from a stale listing ask the browser to
	// re-fetch /api/gallery.
	PolicyStaleWhileRevalidate RefreshPolicy = "stale-while-revalidate"
)

// ParsePolicy maps a config string to a policy, defaulting to server-only.
func ParsePolicy(s string) RefreshPolicy {
	if RefreshPolicy(s) == PolicyStaleWhileRevalidate {
		return PolicyStaleWhileRevalidate
	}
	return PolicyServerOnly
}

// Config describes which folders make up the gallery and how listings are cached
type Config struct {
	Bucket     string
	Categories []models.Category
	Policy     RefreshPolicy
	CacheTTL   time.Duration
}

type fileConfig struct {
	Categories []models.Category `yaml:"categories"`
}

// LoadConfig reads GALLERY_CONFIG (default config/gallery.yml). A missing file falls back to
// the built-in category set.
func LoadConfig(bucket string) (*Config, error) {
	cfg := &Config{
		Bucket:     bucket,
		Categories: models.DefaultCategories(),
		Policy:     ParsePolicy(env.GetEnv("GALLERY_REFRESH_POLICY", string(PolicyServerOnly))),
		CacheTTL:   time.Duration(env.GetEnvInt("GALLERY_CACHE_TTL", 60)) * time.Second,
	}

	path := env.GetEnv("GALLERY_CONFIG", "config/gallery.yml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Infof("[Gallery] %s not found, using default categories", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	categories, err := ParseCategories(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid gallery config %s: %w", path, err)
	}
	cfg.Categories = categories
	return cfg, nil
}

// ParseCategories decodes and validates a YAML category list
func ParseCategories(raw []byte) ([]models.Category, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, err
	}
	if len(fc.Categories) == 0 {
		return nil, fmt.Errorf("no categories defined")
	}

	seen := make(map[string]struct{}, len(fc.Categories))
	for i, c := range fc.Categories {
		if c.Folder == "" || c.Name == "" {
			return nil, fmt.Errorf("category %d needs folder and category", i)
		}
		if c.Name == models.CategoryAll {
			return nil, fmt.Errorf("category name %q is reserved", models.CategoryAll)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return fc.Categories, nil
}
