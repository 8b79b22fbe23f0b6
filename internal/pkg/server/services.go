package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/dmcfuji/studiosite/internal/pkg/cache"
	"github.com/dmcfuji/studiosite/internal/pkg/contact"
	"github.com/dmcfuji/studiosite/internal/pkg/env"
	"github.com/dmcfuji/studiosite/internal/pkg/gallery"
	"github.com/dmcfuji/studiosite/internal/pkg/imageproxy"
	"github.com/dmcfuji/studiosite/internal/pkg/mail"
	"github.com/dmcfuji/studiosite/internal/pkg/storage"
)

// gallerySnapshotRetention is how long Redis keeps a listing that is no longer refreshed
const gallerySnapshotRetention = 24 * time.Hour

// Services are the long-lived components shared by the HTTP server and the CLI
type Services struct {
	SiteURL string
	Storage *storage.Config
	Redis   *redis.Client
	Gallery *gallery.Service
	Monitor *gallery.Monitor
	Proxy   *imageproxy.Proxy
	Contact *contact.Service
}

// BuildServices wires every component from the environment. Call env.SetupEnvFile first.
func BuildServices() (*Services, error) {
	storageCfg, err := storage.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("storage config: %w", err)
	}

	redisClient := cache.SetupCache(cache.LoadConfig())
	redisUp := cache.Available(redisClient)

	lister, err := storage.NewS3Lister(storageCfg)
	if err != nil {
		return nil, err
	}
	locator := storage.NewLocator(storageCfg.BaseURL)
	storageClient := storage.NewClient(lister, locator, storageCfg.ListLimit)

	galleryCfg, err := gallery.LoadConfig(storageCfg.Bucket)
	if err != nil {
		return nil, err
	}
	var galleryCache gallery.Cache
	if galleryCfg.Policy == gallery.PolicyStaleWhileRevalidate && redisUp {
		galleryCache = gallery.NewRedisCache(redisClient, "gallery:listing:"+storageCfg.Bucket, gallerySnapshotRetention)
	}

	proxyTimeout := time.Duration(env.GetEnvInt("PROXY_TIMEOUT", 15)) * time.Second
	proxy := imageproxy.NewProxy(locator, &http.Client{Timeout: proxyTimeout}, proxyResultCache(redisClient, redisUp))

	mailCfg := mail.LoadConfig()
	if !mailCfg.Configured() {
		log.Warn("[Mail] SMTP_USERNAME/SMTP_PASSWORD not set, contact submissions will fail")
	}

	gallerySvc := gallery.NewService(storageClient, *galleryCfg, galleryCache)
	log.Infof("[Gallery] %d categories, refresh policy %s", len(galleryCfg.Categories), gallerySvc.Policy())
	refreshInterval := time.Duration(env.GetEnvInt("GALLERY_REFRESH_INTERVAL", 300)) * time.Second

	return &Services{
		SiteURL: strings.TrimRight(env.GetEnv("SITE_URL", "http://localhost:4000"), "/"),
		Storage: storageCfg,
		Redis:   redisClient,
		Gallery: gallerySvc,
		Monitor: gallery.NewMonitor(gallerySvc, refreshInterval),
		Proxy:   proxy,
		Contact: contact.NewService(mail.NewSMTPMailer(mailCfg), mailCfg),
	}, nil
}

// proxyResultCache returns nil when Redis is down so image requests skip the cache round trips.
func proxyResultCache(client *redis.Client, available bool) imageproxy.ResultCache {
	if client == nil || !available {
		log.Warn("[ImageProxy] Redis unavailable, proxied images are not cached")
		return nil
	}
	return imageproxy.NewRedisResultCache(client)
}

// Close waits for background work and releases connections
func (s *Services) Close() {
	s.Monitor.Stop()
	s.Gallery.Wait()
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Warnf("[Cache] close: %v", err)
		}
	}
}
