package gallerystate

import (
	"context"
	"sync"
	"time"

	"github.com/dmcfuji/studiosite/app/models"
)

// ImagesPerPage is the fixed page size of the gallery grid
const ImagesPerPage = 6

// PaginationState is the filter and page selection
type PaginationState struct {
	ActiveCategory string
	CurrentPage    int
	ImagesPerPage  int
}

// Options configures a Controller
type Options struct {
	EagerCount       int
	FallbackToDirect bool // retry a failed image with its direct URL before giving up
	RevealTimeout    time.Duration
	ScrollLock       ScrollLock
	Now              func() time.Time
}

// Controller owns the gallery view state: filter, page, load progress, failed images and the
// lightbox selection. All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	all      []models.GalleryImage
	state    PaginationState
	opts     Options
	progress *LoadProgress
	errored  map[string]bool
	direct   map[string]bool
	lightbox *Lightbox

	scrollRequests int
}

// NewController starts on the "all" filter, page 1
func NewController(images []models.GalleryImage, opts Options) *Controller {
	if opts.EagerCount <= 0 {
		opts.EagerCount = EagerCountForWidth(0)
	}
	if opts.RevealTimeout <= 0 {
		opts.RevealTimeout = FallbackRevealTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Controller{
		all:     images,
		state:   PaginationState{ActiveCategory: models.CategoryAll, CurrentPage: 1, ImagesPerPage: ImagesPerPage},
		opts:    opts,
		errored: map[string]bool{},
		direct:  map[string]bool{},
	}
	c.progress = NewLoadProgress(opts.EagerCount, len(c.pageImagesLocked()), opts.RevealTimeout, opts.Now())
	return c
}

// State returns a copy of the pagination state
func (c *Controller) State() PaginationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetActiveCategory switches the filter, returns to page 1, restarts load tracking, closes the
// lightbox and asks the view to scroll to the top.
func (c *Controller) SetActiveCategory(category string) {
	c.mu.Lock()
	c.state.ActiveCategory = category
	c.state.CurrentPage = 1
	c.resetProgressLocked()
	c.scrollRequests++
	lb := c.lightbox
	c.lightbox = nil
	c.mu.Unlock()

	if lb != nil {
		lb.Close()
	}
}

// SetPage moves to page p. Out-of-range requests leave the state untouched and return false.
func (c *Controller) SetPage(p int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p < 1 || p > c.totalPagesLocked() {
		return false
	}
	c.state.CurrentPage = p
	c.resetProgressLocked()
	c.scrollRequests++
	return true
}

// ReplaceImages swaps in a freshly fetched list. The page is kept when it still exists.
func (c *Controller) ReplaceImages(images []models.GalleryImage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.all = images
	if c.state.CurrentPage > max(c.totalPagesLocked(), 1) {
		c.state.CurrentPage = 1
	}
	c.resetProgressLocked()
}

// Generation identifies the current page/filter; image callbacks must echo it back.
func (c *Controller) Generation() uint64 {
	return c.progress.Generation()
}

// OnImageLoaded records a successful load of the image at indexOnPage.
func (c *Controller) OnImageLoaded(generation uint64, indexOnPage int) {
	c.progress.Settle(generation, indexOnPage)
}

// OnImageLoadError records a failed load. With direct fallback enabled the first failure
// switches the image to its direct URL and returns true so the caller retries; otherwise the
// image is marked errored (rendered as a text placeholder) and counts as settled.
func (c *Controller) OnImageLoadError(generation uint64, indexOnPage int, imageID string) bool {
	c.mu.Lock()
	if c.opts.FallbackToDirect && !c.direct[imageID] && !c.errored[imageID] {
		c.direct[imageID] = true
		c.mu.Unlock()
		return true
	}
	c.errored[imageID] = true
	c.mu.Unlock()

	c.progress.Settle(generation, indexOnPage)
	return false
}

// IsErrored reports whether an image should render as a placeholder
func (c *Controller) IsErrored(imageID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errored[imageID]
}

// ImageSource is the URL the grid should load for img.
func (c *Controller) ImageSource(img models.GalleryImage) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.direct[img.ID] {
		return img.PublicURL
	}
	return img.ProxiedURL
}

// IsEager reports whether indexOnPage loads with high priority
func (c *Controller) IsEager(indexOnPage int) bool {
	return c.progress.IsEager(indexOnPage)
}

// EagerTarget is min(eagerCount, len(PageImages()))
func (c *Controller) EagerTarget() int {
	return c.progress.Target()
}

// LoadedEager is the number of eager images settled on the current page
func (c *Controller) LoadedEager() int {
	return c.progress.Loaded()
}

// Ready evaluates the readiness gate at the current time
func (c *Controller) Ready() bool {
	return c.progress.Ready(c.opts.Now())
}

// AwaitReady waits for the readiness gate of the current page.
func (c *Controller) AwaitReady(ctx context.Context) (ReadyReason, error) {
	return c.progress.Await(ctx, c.opts.Now())
}

// FilteredImages returns the images matching the active category
func (c *Controller) FilteredImages() []models.GalleryImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filteredLocked()
}

// PageImages returns the slice of FilteredImages shown on the current page
func (c *Controller) PageImages() []models.GalleryImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageImagesLocked()
}

// StartIndex is the index in FilteredImages of the first image on the page
func (c *Controller) StartIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return (c.state.CurrentPage - 1) * c.state.ImagesPerPage
}

// TotalPages is ceil(len(FilteredImages) / ImagesPerPage)
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

// IsEmpty is true when the active filter matches nothing and the view shows "no images found"
func (c *Controller) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filteredLocked()) == 0
}

// SkeletonCount is the number of placeholder cards shown before the grid is ready
func (c *Controller) SkeletonCount() int {
	return ImagesPerPage
}

// ScrollRequests counts scroll-to-top requests issued by page or category changes
func (c *Controller) ScrollRequests() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrollRequests
}

// Select opens the lightbox on filteredIndex of the filtered list.
func (c *Controller) Select(filteredIndex int) (*Lightbox, error) {
	c.mu.Lock()
	images := c.filteredLocked()
	prev := c.lightbox
	c.lightbox = nil
	c.mu.Unlock()

	if prev != nil {
		prev.Close()
	}

	var lb *Lightbox
	lb, err := OpenLightbox(images, filteredIndex, c.opts.ScrollLock, func() {
		c.mu.Lock()
		if c.lightbox == lb {
			c.lightbox = nil
		}
		c.mu.Unlock()
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lightbox = lb
	c.mu.Unlock()
	return lb, nil
}

// Lightbox returns the open lightbox, or nil
func (c *Controller) Lightbox() *Lightbox {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lightbox
}

// CloseLightbox clears the selection
func (c *Controller) CloseLightbox() {
	c.mu.Lock()
	lb := c.lightbox
	c.lightbox = nil
	c.mu.Unlock()

	if lb != nil {
		lb.Close()
	}
}

// Teardown releases everything the view holds. Call it when the view goes away.
func (c *Controller) Teardown() {
	c.CloseLightbox()
}

func (c *Controller) filteredLocked() []models.GalleryImage {
	if c.state.ActiveCategory == models.CategoryAll {
		return c.all
	}
	filtered := make([]models.GalleryImage, 0, len(c.all))
	for _, img := range c.all {
		if img.Category == c.state.ActiveCategory {
			filtered = append(filtered, img)
		}
	}
	return filtered
}

func (c *Controller) pageImagesLocked() []models.GalleryImage {
	filtered := c.filteredLocked()
	start := (c.state.CurrentPage - 1) * c.state.ImagesPerPage
	if start >= len(filtered) {
		return nil
	}
	end := min(start+c.state.ImagesPerPage, len(filtered))
	return filtered[start:end]
}

func (c *Controller) totalPagesLocked() int {
	n := len(c.filteredLocked())
	return (n + c.state.ImagesPerPage - 1) / c.state.ImagesPerPage
}

func (c *Controller) resetProgressLocked() {
	c.progress.Reset(c.opts.EagerCount, len(c.pageImagesLocked()), c.opts.Now())
}
