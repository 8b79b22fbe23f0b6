package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dmcfuji/studiosite/internal/pkg/imageproxy"
)

// ImageController serves /api/img/{bucket}/{key...} through the image proxy
type ImageController struct {
	proxy *imageproxy.Proxy
}

func NewImageController(proxy *imageproxy.Proxy) *ImageController {
	return &ImageController{proxy: proxy}
}

// HandleImageProxy streams the rendered image, or the original object when rendering fails.
// Responses carry a fixed one hour public cache policy whatever the provider sent.
func (ic *ImageController) HandleImageProxy(c *fiber.Ctx) error {
	bucket, key, err := imageproxy.ParsePath(c.Params("*"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Bad Request")
	}

	res, err := ic.proxy.Fetch(c.UserContext(), bucket, key)
	if err != nil {
		if !errors.Is(err, imageproxy.ErrNotAnImage) {
			log.Errorf("[ImageProxy] %s/%s: %v", bucket, key, err)
		}
		return c.Status(fiber.StatusUnsupportedMediaType).SendString("Not an image")
	}

	c.Set(fiber.HeaderCacheControl, imageproxy.CacheControl)
	c.Set(fiber.HeaderETag, res.ETag)
	c.Set("X-Image-Source", res.Source)
	if c.Get(fiber.HeaderIfNoneMatch) == res.ETag {
		return c.SendStatus(fiber.StatusNotModified)
	}

	c.Set(fiber.HeaderContentType, res.ContentType)
	return c.Status(fiber.StatusOK).Send(res.Body)
}
