package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPageApp() *fiber.App {
	pc := NewPageController("https://dmc.example.com/")
	pc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	app := newViewApp()
	app.Get("/", pc.HandleRoot)
	app.Get("/sitemap.xml", pc.HandleSitemap)
	app.Get("/robots.txt", pc.HandleRobots)
	group := app.Group("/:locale", RequireLocale)
	group.Get("/", pc.HandleHome)
	group.Get("/sitemap.xml", pc.HandleSitemap)
	group.Get("/service", pc.HandleService)
	group.Get("/service/:name", pc.HandleServiceDetail)
	return app
}

func TestHandleRoot_RedirectsToDefaultLocale(t *testing.T) {
	resp, _ := doRequest(t, newPageApp(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/ja", resp.Header.Get(fiber.HeaderLocation))
}

func TestRequireLocale_UnknownLocaleRedirects(t *testing.T) {
	resp, _ := doRequest(t, newPageApp(), httptest.NewRequest(http.MethodGet, "/fr/service?x=1", nil))

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/ja/service?x=1", resp.Header.Get(fiber.HeaderLocation))
}

func TestHandleHome_Locales(t *testing.T) {
	app := newPageApp()

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `lang="en"`)
	assert.Contains(t, body, `href="/ja"`)
	assert.Contains(t, body, `content="en_US"`)

	_, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/ja/service", nil))
	assert.Contains(t, body, "サービス")
	assert.Contains(t, body, `href="/en/service"`)
}

func TestHandleServiceDetail(t *testing.T) {
	app := newPageApp()

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/service/camu", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "CAMU")

	resp, _ = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/service/weddings", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleSitemap(t *testing.T) {
	app := newPageApp()

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "xml")
	assert.Equal(t, 2*len(sitemapRoutes), strings.Count(body, "<url>"))
	assert.Contains(t, body, "<loc>https://dmc.example.com/ja</loc>")
	assert.Contains(t, body, "<loc>https://dmc.example.com/en/gallery</loc>")
	assert.Contains(t, body, "<lastmod>2026-03-01T09:00:00Z</lastmod>")
	assert.Contains(t, body, "<priority>0.85</priority>")

	_, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/en/sitemap.xml", nil))
	assert.Equal(t, len(sitemapRoutes), strings.Count(body, "<url>"))
	assert.NotContains(t, body, "https://dmc.example.com/ja")
}

func TestHandleRobots(t *testing.T) {
	resp, body := doRequest(t, newPageApp(), httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "User-Agent: *\nAllow: /\n"))
	assert.Contains(t, body, "Sitemap: https://dmc.example.com/ja/sitemap.xml\n")
	assert.Contains(t, body, "Sitemap: https://dmc.example.com/en/sitemap.xml\n")
}
