package storage

import (
	"context"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/dmcfuji/studiosite/app/models"
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".avif": true,
}

// IsImageFile reports whether name is a visible file with a gallery image extension.
func IsImageFile(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return allowedExt[strings.ToLower(path.Ext(name))]
}

// Client turns folder listings into gallery images
type Client struct {
	lister  ObjectLister
	locator *Locator
	limit   int
}

func NewClient(lister ObjectLister, locator *Locator, limit int) *Client {
	if limit <= 0 {
		limit = 100
	}
	return &Client{lister: lister, locator: locator, limit: limit}
}

// ListImages lists the images under folder and stamps them with category. Listing failures are
// logged and produce an empty result so one broken folder never hides the others.
func (c *Client) ListImages(ctx context.Context, bucket, folder, category string) []models.GalleryImage {
	objects, err := c.lister.ListObjects(ctx, bucket, folder, c.limit)
	if err != nil {
		log.Errorf("[Storage] list error for %s/%s: %v", bucket, folder, err)
		return []models.GalleryImage{}
	}

	images := make([]models.GalleryImage, 0, len(objects))
	for _, obj := range objects {
		if !IsImageFile(obj.Name) {
			continue
		}
		key := strings.Trim(folder, "/") + "/" + obj.Name
		images = append(images, models.NewGalleryImage(
			category,
			obj.Name,
			key,
			c.locator.PublicURL(bucket, key),
			ProxyPath(bucket, key),
		))
	}
	return images
}
