package storage

import (
	"net/url"
	"strings"

	"github.com/dmcfuji/studiosite/internal/pkg/constants"
)

// Locator derives every URL for an object from the same (bucket, key) pair.
type Locator struct {
	BaseURL string
}

func NewLocator(baseURL string) *Locator {
	return &Locator{BaseURL: strings.TrimRight(baseURL, "/")}
}

// PublicURL is the direct, unproxied object URL.
func (l *Locator) PublicURL(bucket, key string) string {
	return l.ObjectURL(bucket, key)
}

// ObjectURL addresses the raw stored bytes.
func (l *Locator) ObjectURL(bucket, key string) string {
	return l.BaseURL + "/storage/v1/object/public/" + escapePath(bucket, key)
}

// RenderURL addresses the provider's on-the-fly image transformation endpoint.
func (l *Locator) RenderURL(bucket, key string) string {
	return l.BaseURL + "/storage/v1/render/image/public/" + escapePath(bucket, key)
}

// ProxyPath is the site-relative URL of the image proxy for an object.
func ProxyPath(bucket, key string) string {
	return constants.ImageProxyRoute + "/" + escapePath(bucket, key)
}

func escapePath(bucket, key string) string {
	segments := append([]string{bucket}, strings.Split(key, "/")...)
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
