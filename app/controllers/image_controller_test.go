package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/dmcfuji/studiosite/internal/pkg/imageproxy"
	"github.com/dmcfuji/studiosite/internal/pkg/storage"
)

func newImageApp(t *testing.T, renderStatus, objectStatus int) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := objectStatus
		if strings.HasPrefix(r.URL.Path, "/storage/v1/render/image/public/") {
			status = renderStatus
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	t.Cleanup(srv.Close)

	ic := NewImageController(imageproxy.NewProxy(storage.NewLocator(srv.URL), srv.Client(), nil))
	app := fiber.New()
	app.Get("/api/img/*", ic.HandleImageProxy)
	return app
}

func TestHandleImageProxy_BadPath(t *testing.T) {
	app := newImageApp(t, http.StatusOK, http.StatusOK)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/img/DMC", nil))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Bad Request", body)
}

func TestHandleImageProxy_NotAnImage(t *testing.T) {
	app := newImageApp(t, http.StatusNotFound, http.StatusNotFound)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/img/DMC/kimono/missing.jpg", nil))

	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
	assert.Equal(t, "Not an image", body)
}

func TestHandleImageProxy_ServesRenderedImage(t *testing.T) {
	app := newImageApp(t, http.StatusOK, http.StatusOK)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/img/DMC/kimono/a.jpg", nil))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "png-bytes", body)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, imageproxy.CacheControl, resp.Header.Get(fiber.HeaderCacheControl))
	assert.Equal(t, imageproxy.ETag([]byte("png-bytes")), resp.Header.Get(fiber.HeaderETag))
	assert.Equal(t, imageproxy.SourceRender, resp.Header.Get("X-Image-Source"))
}

func TestHandleImageProxy_FallsBackToObject(t *testing.T) {
	app := newImageApp(t, http.StatusBadRequest, http.StatusOK)

	resp, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/img/DMC/kimono/a.jpg", nil))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, imageproxy.SourceObject, resp.Header.Get("X-Image-Source"))
}

func TestHandleImageProxy_NotModified(t *testing.T) {
	app := newImageApp(t, http.StatusOK, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/img/DMC/kimono/a.jpg", nil)
	req.Header.Set(fiber.HeaderIfNoneMatch, imageproxy.ETag([]byte("png-bytes")))
	resp, body := doRequest(t, app, req)

	assert.Equal(t, fiber.StatusNotModified, resp.StatusCode)
	assert.Empty(t, body)
}
