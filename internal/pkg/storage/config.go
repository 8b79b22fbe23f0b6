package storage

import (
	"errors"
	"strings"

	"github.com/dmcfuji/studiosite/internal/pkg/env"
)

// Config holds the object storage settings shared by the listing client and the image proxy
type Config struct {
	BaseURL         string // provider origin, e.g. https://<ref>.supabase.co
	Bucket          string
	S3Endpoint      string // S3-compatible API endpoint used for listing
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	ListLimit       int
}

// LoadConfig loads storage configuration from environment variables
func LoadConfig() (*Config, error) {
	baseURL := strings.TrimRight(env.GetEnv("STORAGE_URL", ""), "/")
	cfg := &Config{
		BaseURL:         baseURL,
		Bucket:          env.GetEnv("STORAGE_BUCKET", "DMC"),
		S3Endpoint:      env.GetEnv("STORAGE_S3_ENDPOINT", ""),
		Region:          env.GetEnv("STORAGE_S3_REGION", "ap-northeast-1"),
		AccessKeyID:     env.GetEnv("STORAGE_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("STORAGE_SECRET_ACCESS_KEY", ""),
		ListLimit:       env.GetEnvInt("STORAGE_LIST_LIMIT", 100),
	}
	if cfg.S3Endpoint == "" && baseURL != "" {
		cfg.S3Endpoint = baseURL + "/storage/v1/s3"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings every storage consumer depends on
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("STORAGE_URL is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return errors.New("STORAGE_URL must be an http(s) URL")
	}
	if c.Bucket == "" {
		return errors.New("STORAGE_BUCKET is required")
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return errors.New("STORAGE_ACCESS_KEY_ID and STORAGE_SECRET_ACCESS_KEY must be set together")
	}
	if c.ListLimit <= 0 {
		c.ListLimit = 100
	}
	return nil
}

// HasCredentials reports whether signed S3 requests are possible
func (c *Config) HasCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}
