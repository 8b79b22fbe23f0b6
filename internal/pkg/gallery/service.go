package gallery

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"

	"github.com/dmcfuji/studiosite/app/models"
)

// ImageLister lists one category folder. Failures are absorbed by the lister and surface as
// an empty slice.
type ImageLister interface {
	ListImages(ctx context.Context, bucket, folder, category string) []models.GalleryImage
}

// Listing is what callers get back from the service
type Listing struct {
	Images    []models.GalleryImage
	FetchedAt time.Time
	Stale     bool
}

// RefreshOnClient reports whether the rendered page should re-fetch the listing after load.
func (l Listing) RefreshOnClient() bool {
	return l.Stale || len(l.Images) == 0
}

// Service aggregates all category folders into one image list
type Service struct {
	lister ImageLister
	cfg    Config
	cache  Cache
	now    func() time.Time

	refreshing atomic.Bool
	wg         sync.WaitGroup
}

// NewService creates the aggregation service. cache may be nil, which forces server-only.
func NewService(lister ImageLister, cfg Config, cache Cache) *Service {
	if cache == nil {
		cfg.Policy = PolicyServerOnly
	}
	return &Service{lister: lister, cfg: cfg, cache: cache, now: time.Now}
}

// Categories returns the configured categories in display order
func (s *Service) Categories() []models.Category {
	return s.cfg.Categories
}

// Policy returns the effective refresh policy
func (s *Service) Policy() RefreshPolicy {
	return s.cfg.Policy
}

// GetAllGalleryImages returns every image of every configured category.
func (s *Service) GetAllGalleryImages(ctx context.Context) []models.GalleryImage {
	return s.Load(ctx).Images
}

// Load returns the listing according to the refresh policy.
func (s *Service) Load(ctx context.Context) Listing {
	if s.cfg.Policy != PolicyStaleWhileRevalidate {
		return Listing{Images: s.listAll(ctx), FetchedAt: s.now()}
	}

	snap, ok, err := s.cache.Load(ctx)
	if err != nil {
		log.Warnf("[Gallery] cache read failed, listing storage: %v", err)
	}
	if !ok {
		return s.refresh(ctx)
	}

	stale := s.now().Sub(snap.FetchedAt) > s.cfg.CacheTTL
	if stale {
		s.refreshInBackground()
	}
	return Listing{Images: snap.Images, FetchedAt: snap.FetchedAt, Stale: stale}
}

// Refresh lists storage now and replaces the cached snapshot.
func (s *Service) Refresh(ctx context.Context) Listing {
	return s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) Listing {
	listing := Listing{Images: s.listAll(ctx), FetchedAt: s.now()}
	if s.cache != nil {
		if err := s.cache.Store(ctx, Snapshot{Images: listing.Images, FetchedAt: listing.FetchedAt}); err != nil {
			log.Warnf("[Gallery] cache write failed: %v", err)
		}
	}
	return listing
}

// refreshInBackground starts at most one refresh at a time. The refresh is detached from the
// request so a client disconnect does not abort it.
func (s *Service) refreshInBackground() {
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.refreshing.Store(false)
		listing := s.refresh(context.Background())
		log.Infof("[Gallery] background refresh done (%d images)", len(listing.Images))
	}()
}

// Wait blocks until in-flight background refreshes finish
func (s *Service) Wait() {
	s.wg.Wait()
}

// listAll fans out one listing per category and concatenates results in category order.
// No de-duplication happens across categories.
func (s *Service) listAll(ctx context.Context) []models.GalleryImage {
	results := make([][]models.GalleryImage, len(s.cfg.Categories))

	var g errgroup.Group
	for i, c := range s.cfg.Categories {
		g.Go(func() error {
			results[i] = s.lister.ListImages(ctx, s.cfg.Bucket, c.Folder, c.Name)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]models.GalleryImage, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}
