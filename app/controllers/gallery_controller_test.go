package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmcfuji/studiosite/app/models"
	"github.com/dmcfuji/studiosite/internal/pkg/imageproxy"
	"github.com/dmcfuji/studiosite/internal/pkg/storage"
)

func newGalleryApp() *fiber.App {
	gc := NewGalleryController(newTestGallery(), nil)
	app := newViewApp()
	app.Get("/api/gallery", gc.HandleGalleryAPI)
	group := app.Group("/:locale", RequireLocale)
	group.Get("/gallery", gc.HandleGalleryPage)
	group.Get("/gallery/view/:index", gc.HandleLightboxPage)
	return app
}

type galleryResponse struct {
	Images []models.GalleryImage `json:"images"`
	Stale  bool                  `json:"stale"`
}

func TestHandleGalleryAPI(t *testing.T) {
	app := newGalleryApp()

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))

	var all galleryResponse
	require.NoError(t, json.Unmarshal([]byte(body), &all))
	assert.Len(t, all.Images, 10)
	assert.False(t, all.Stale)
	assert.Equal(t, "kimono", all.Images[0].Category)
	assert.Equal(t, "studio", all.Images[9].Category)

	_, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/gallery?category=studio", nil))
	var studio galleryResponse
	require.NoError(t, json.Unmarshal([]byte(body), &studio))
	assert.Len(t, studio.Images, 2)
}

func TestHandleGalleryPage_SecondPageOfCategory(t *testing.T) {
	app := newGalleryApp()

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/gallery?category=kimono&page=2", nil))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `data-active-category="kimono"`)
	assert.Equal(t, 2, strings.Count(body, `class="gallery-card"`))
	assert.Contains(t, body, `aria-current="page">2<`)
	assert.Contains(t, body, `/api/img/DMC/kimono/kimono-06.jpg`)
	assert.Contains(t, body, `data-direct="https://cdn.example.com/storage/v1/object/public/DMC/kimono/kimono-06.jpg"`)
	assert.Contains(t, body, `page-next is-disabled`)
}

func TestHandleGalleryPage_FirstPageSkeletonUntilReady(t *testing.T) {
	app := newGalleryApp()

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/ja/gallery", nil))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 6, strings.Count(body, `class="gallery-card"`))
	assert.Contains(t, body, `class="gallery-skeleton"`)
	assert.Contains(t, body, `gallery-grid is-hidden`)
	assert.Contains(t, body, `page-prev is-disabled`)
	assert.Contains(t, body, `fetchpriority="high"`)
}

func TestHandleGalleryPage_UnknownCategoryIsEmpty(t *testing.T) {
	app := newGalleryApp()

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/gallery?category=weddings", nil))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `class="gallery-empty"`)
	assert.Contains(t, body, "No images found")
	assert.NotContains(t, body, `class="gallery-card"`)
}

func TestHandleGalleryPage_OutOfRangePageStaysOnFirst(t *testing.T) {
	app := newGalleryApp()

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/gallery?page=9", nil))

	assert.Contains(t, body, `aria-current="page">1<`)
}

func TestHandleLightboxPage(t *testing.T) {
	app := newGalleryApp()

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/gallery/view/7?category=kimono", nil))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "8 / 8")
	assert.Contains(t, body, `class="scroll-locked"`)
	// wraps to the first image, close returns to the page holding image 7
	assert.Contains(t, body, `data-next="/en/gallery/view/0?category=kimono"`)
	assert.Contains(t, body, `data-close="/en/gallery?category=kimono&amp;page=2"`)
	assert.Contains(t, body, `property="og:image"`)
}

func TestHandleLightboxPage_NotFound(t *testing.T) {
	app := newGalleryApp()

	resp, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/gallery/view/2?category=studio", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/gallery/view/abc", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProxyImageCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("jpeg"))
	}))
	defer srv.Close()
	check := ProxyImageCheck(imageproxy.NewProxy(storage.NewLocator(srv.URL), srv.Client(), nil))

	assert.NoError(t, check(context.Background(), "/api/img/DMC/kimono/a.jpg"))
	assert.True(t, errors.Is(check(context.Background(), "/api/img/DMC/kimono/missing.jpg"), imageproxy.ErrNotAnImage))
	// direct URLs are not fetched server side
	assert.NoError(t, check(context.Background(), srv.URL+"/storage/v1/object/public/DMC/kimono/missing.jpg"))
}

func TestGalleryImages_RecordEarlyLoadErrors(t *testing.T) {
	app := newGalleryApp()
	recorder := `onerror="this.setAttribute('data-failed','')"`

	_, grid := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/gallery", nil))
	assert.Equal(t, 6, strings.Count(grid, recorder))

	_, lightbox := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/gallery/view/0", nil))
	assert.Equal(t, 1, strings.Count(lightbox, recorder))

	script, err := os.ReadFile("../../public/assets/js/gallery.js")
	require.NoError(t, err)
	// both the grid and the lightbox handle errors that fired before the script ran
	assert.Equal(t, 2, strings.Count(string(script), "if (failedEarly(img))"))
}
