package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/require"

	"github.com/dmcfuji/studiosite/app/models"
	"github.com/dmcfuji/studiosite/internal/pkg/gallery"
	"github.com/dmcfuji/studiosite/internal/pkg/storage"
)

// staticLister returns a fixed image list per category
type staticLister map[string][]models.GalleryImage

func (s staticLister) ListImages(_ context.Context, _, _, category string) []models.GalleryImage {
	return s[category]
}

func testImages(category, folder string, n int) []models.GalleryImage {
	locator := storage.NewLocator("https://cdn.example.com")
	images := make([]models.GalleryImage, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s-%02d.jpg", folder, i)
		key := folder + "/" + name
		images = append(images, models.NewGalleryImage(category, name, key, locator.PublicURL("DMC", key), storage.ProxyPath("DMC", key)))
	}
	return images
}

// newTestGallery lists 8 kimono and 2 studio images
func newTestGallery() *gallery.Service {
	lister := staticLister{
		"kimono": testImages("kimono", "kimono", 8),
		"studio": testImages("studio", "dmc", 2),
	}
	cfg := gallery.Config{Bucket: "DMC", Categories: models.DefaultCategories(), Policy: gallery.PolicyServerOnly}
	return gallery.NewService(lister, cfg, nil)
}

func newViewApp() *fiber.App {
	return fiber.New(fiber.Config{Views: html.New("../../views", ".html")})
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(body)
}
