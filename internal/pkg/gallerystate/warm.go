package gallerystate

import (
	"context"
)

// ImageCheck loads src and reports whether it produced an image
type ImageCheck func(ctx context.Context, src string) error

// WarmEager loads the eager images of the current page concurrently, feeding the results into
// the controller, and returns once the readiness gate opens. Loads still running when the gate
// opens on timeout are not cancelled; their late callbacks land on a generation that may have
// moved on and are then ignored.
func WarmEager(ctx context.Context, c *Controller, check ImageCheck) (ReadyReason, error) {
	generation := c.Generation()
	target := c.EagerTarget()
	page := c.PageImages()

	for i := 0; i < target && i < len(page); i++ {
		img := page[i]
		go func() {
			for {
				if err := check(ctx, c.ImageSource(img)); err == nil {
					c.OnImageLoaded(generation, i)
					return
				}
				if !c.OnImageLoadError(generation, i, img.ID) {
					return
				}
			}
		}()
	}

	return c.AwaitReady(ctx)
}
