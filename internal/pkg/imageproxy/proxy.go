package imageproxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dmcfuji/studiosite/internal/pkg/storage"
)

const (
	// CacheControl is sent on every successful response regardless of upstream headers
	CacheControl = "public, max-age=3600, s-maxage=3600, immutable"
	// CacheTTL matches the max-age above and bounds the local result cache
	CacheTTL = time.Hour
	// DefaultContentType is used when the provider omits Content-Type
	DefaultContentType = "image/jpeg"
	// MaxImageBytes caps how much of an upstream body is buffered
	MaxImageBytes = 25 << 20
)

var (
	// ErrBadPath means the request did not name a bucket and object key
	ErrBadPath = errors.New("bad request")
	// ErrNotAnImage means neither the render nor the raw object fetch succeeded
	ErrNotAnImage = errors.New("not an image")
)

const (
	SourceRender = "render"
	SourceObject = "object"
	SourceCache  = "cache"
)

// Result is an image ready to be written to the client
type Result struct {
	Body        []byte
	ContentType string
	ETag        string
	Source      string
}

// ResultCache keeps recently proxied images. Implementations must be safe for concurrent use.
type ResultCache interface {
	Get(ctx context.Context, key string) (*Result, bool)
	Set(ctx context.Context, key string, res *Result, ttl time.Duration)
}

// Proxy fetches images from the storage provider, preferring the render endpoint
type Proxy struct {
	locator *storage.Locator
	client  *http.Client
	cache   ResultCache
}

// NewProxy creates a proxy. cache may be nil.
func NewProxy(locator *storage.Locator, client *http.Client, cache ResultCache) *Proxy {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Proxy{locator: locator, client: client, cache: cache}
}

// ParsePath splits the wildcard part of /api/img/{bucket}/{key...} into bucket and key.
// Segments are percent-decoded; empty segments are dropped.
func ParsePath(raw string) (string, string, error) {
	var segments []string
	for _, s := range strings.Split(raw, "/") {
		decoded, err := url.PathUnescape(s)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrBadPath, err)
		}
		if decoded == "" {
			continue
		}
		if decoded == ".." || decoded == "." {
			return "", "", fmt.Errorf("%w: relative segment", ErrBadPath)
		}
		segments = append(segments, decoded)
	}
	if len(segments) < 2 {
		return "", "", ErrBadPath
	}
	return segments[0], strings.Join(segments[1:], "/"), nil
}

// Fetch returns the rendered image, or the raw object when rendering fails.
func (p *Proxy) Fetch(ctx context.Context, bucket, key string) (*Result, error) {
	cacheKey := bucket + "/" + key
	if p.cache != nil {
		if res, ok := p.cache.Get(ctx, cacheKey); ok {
			res.Source = SourceCache
			return res, nil
		}
	}

	res, err := p.fetch(ctx, p.locator.RenderURL(bucket, key), SourceRender)
	if err != nil {
		log.Debugf("[ImageProxy] render failed for %s, falling back to object: %v", cacheKey, err)
		res, err = p.fetch(ctx, p.locator.ObjectURL(bucket, key), SourceObject)
		if err != nil {
			log.Warnf("[ImageProxy] object fetch failed for %s: %v", cacheKey, err)
			return nil, ErrNotAnImage
		}
	}

	if p.cache != nil {
		p.cache.Set(ctx, cacheKey, res, CacheTTL)
	}
	return res, nil
}

func (p *Proxy) fetch(ctx context.Context, target, source string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("Cache-Control", "max-age="+strconv.Itoa(int(CacheTTL.Seconds())))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream body: %w", err)
	}
	if len(body) > MaxImageBytes {
		return nil, fmt.Errorf("upstream body exceeds %d bytes", MaxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = DefaultContentType
	}

	return &Result{
		Body:        body,
		ContentType: contentType,
		ETag:        ETag(body),
		Source:      source,
	}, nil
}

// ETag returns a strong entity tag for body
func ETag(body []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}
