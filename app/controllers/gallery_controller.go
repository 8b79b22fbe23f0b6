package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dmcfuji/studiosite/app/models"
	"github.com/dmcfuji/studiosite/internal/pkg/constants"
	"github.com/dmcfuji/studiosite/internal/pkg/gallery"
	"github.com/dmcfuji/studiosite/internal/pkg/gallerystate"
	"github.com/dmcfuji/studiosite/internal/pkg/imageproxy"
	"github.com/dmcfuji/studiosite/internal/pkg/viewmodel"
)

// GalleryController renders the gallery grid and lightbox pages and the listing API.
type GalleryController struct {
	gallery *gallery.Service
	check   gallerystate.ImageCheck // nil disables server side warming
}

func NewGalleryController(svc *gallery.Service, proxy *imageproxy.Proxy) *GalleryController {
	gc := &GalleryController{gallery: svc}
	if proxy != nil {
		gc.check = ProxyImageCheck(proxy)
	}
	return gc
}

// ProxyImageCheck loads proxied sources through the proxy, which also fills its result cache.
// Direct provider URLs are left to the browser.
func ProxyImageCheck(proxy *imageproxy.Proxy) gallerystate.ImageCheck {
	return func(ctx context.Context, src string) error {
		rest, ok := strings.CutPrefix(src, constants.ImageProxyRoute+"/")
		if !ok {
			return nil
		}
		bucket, key, err := imageproxy.ParsePath(rest)
		if err != nil {
			return err
		}
		_, err = proxy.Fetch(ctx, bucket, key)
		return err
	}
}

type categoryLink struct {
	ID     string
	Label  string
	URL    string
	Active bool
}

type galleryCard struct {
	Image   models.GalleryImage
	Src     string
	Direct  string
	Index   int // position in the filtered list, used by the lightbox
	Eager   bool
	Errored bool
	ViewURL string
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

func galleryURL(locale, category string, page int) string {
	v := url.Values{}
	if category != "" && category != models.CategoryAll {
		v.Set("category", category)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	u := "/" + locale + "/gallery"
	if enc := v.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

func viewURL(locale, category string, index int) string {
	u := fmt.Sprintf("/%s/gallery/view/%d", locale, index)
	if category != "" && category != models.CategoryAll {
		u += "?category=" + url.QueryEscape(category)
	}
	return u
}

func (gc *GalleryController) categoryLinks(locale, active string) []categoryLink {
	t := translations(locale)
	links := []categoryLink{{
		ID:     models.CategoryAll,
		Label:  t["filter_all"],
		URL:    galleryURL(locale, models.CategoryAll, 1),
		Active: active == models.CategoryAll,
	}}
	for _, cat := range gc.gallery.Categories() {
		links = append(links, categoryLink{
			ID:     cat.Name,
			Label:  cat.Label(locale),
			URL:    galleryURL(locale, cat.Name, 1),
			Active: active == cat.Name,
		})
	}
	return links
}

// HandleGalleryPage renders one page of the filtered grid. The eager images are loaded
// through the proxy before rendering, bounded by the fallback reveal timeout.
func (gc *GalleryController) HandleGalleryPage(c *fiber.Ctx) error {
	locale := currentLocale(c)
	q := gallerystate.ParseQuery(c.Query("category"), c.Query("page"), c.Query("vw"))
	listing := gc.gallery.Load(c.UserContext())

	ctrl := gallerystate.NewController(listing.Images, gallerystate.Options{
		EagerCount:       gallerystate.EagerCountForWidth(q.ViewportWidth),
		FallbackToDirect: true,
	})
	defer ctrl.Teardown()
	q.Apply(ctrl)

	ready := false
	if gc.check != nil && !ctrl.IsEmpty() {
		reason, err := gallerystate.WarmEager(c.UserContext(), ctrl, gc.check)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warnf("[Gallery] warming page %d of %q: %v", ctrl.State().CurrentPage, ctrl.State().ActiveCategory, err)
		}
		ready = reason == gallerystate.ReadyLoaded
	}

	state := ctrl.State()
	start := ctrl.StartIndex()
	page := ctrl.PageImages()
	cards := make([]galleryCard, 0, len(page))
	for i, img := range page {
		cards = append(cards, galleryCard{
			Image:   img,
			Src:     ctrl.ImageSource(img),
			Direct:  img.PublicURL,
			Index:   start + i,
			Eager:   ctrl.IsEager(i),
			Errored: ctrl.IsErrored(img.ID),
			ViewURL: viewURL(locale, state.ActiveCategory, start+i),
		})
	}

	total := ctrl.TotalPages()
	pages := make([]pageLink, 0, total)
	for p := 1; p <= total; p++ {
		pages = append(pages, pageLink{Number: p, URL: galleryURL(locale, state.ActiveCategory, p), Current: p == state.CurrentPage})
	}

	data := pageData(c, translations(locale)["gallery_title"])
	data["Categories"] = gc.categoryLinks(locale, state.ActiveCategory)
	data["Cards"] = cards
	data["Empty"] = ctrl.IsEmpty()
	data["Total"] = len(ctrl.FilteredImages())
	data["Ready"] = ready
	data["Skeletons"] = make([]struct{}, ctrl.SkeletonCount())
	data["EagerCount"] = ctrl.EagerTarget()
	data["RevealTimeoutMs"] = gallerystate.FallbackRevealTimeout.Milliseconds()
	data["Pages"] = pages
	data["HasPrev"] = state.CurrentPage > 1
	data["HasNext"] = state.CurrentPage < total
	data["PrevURL"] = galleryURL(locale, state.ActiveCategory, state.CurrentPage-1)
	data["NextURL"] = galleryURL(locale, state.ActiveCategory, state.CurrentPage+1)
	data["RefreshOnClient"] = listing.RefreshOnClient()
	data["ActiveCategory"] = state.ActiveCategory

	return c.Render("gallery", data, "layouts/main")
}

// HandleLightboxPage shows one image of the filtered list full screen. Navigation wraps
// around the filtered list; closing returns to the grid page holding the image.
func (gc *GalleryController) HandleLightboxPage(c *fiber.Ctx) error {
	locale := currentLocale(c)
	q := gallerystate.ParseQuery(c.Query("category"), "", "")

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return fiber.ErrNotFound
	}

	lock := &gallerystate.BodyScrollLock{}
	ctrl := gallerystate.NewController(gc.gallery.Load(c.UserContext()).Images, gallerystate.Options{ScrollLock: lock})
	defer ctrl.Teardown()
	q.Apply(ctrl)

	lb, err := ctrl.Select(index)
	if err != nil {
		if errors.Is(err, gallerystate.ErrNoImage) {
			return fiber.ErrNotFound
		}
		return err
	}

	category := ctrl.State().ActiveCategory
	n := lb.Len()
	data := pageData(c, translations(locale)["gallery_title"])
	data["Image"] = lb.Current()
	if og, ok := data["OG"].(*viewmodel.OpenGraph); ok {
		og.WithImage(lb.Current().PublicURL)
	}
	data["Counter"] = lb.Counter()
	data["ScrollLocked"] = lock.Locked()
	data["PrevURL"] = viewURL(locale, category, gallerystate.PreviousIndex(index, n))
	data["NextURL"] = viewURL(locale, category, gallerystate.NextIndex(index, n))
	data["CloseURL"] = galleryURL(locale, category, index/gallerystate.ImagesPerPage+1)

	return c.Render("lightbox", data, "layouts/main")
}

// HandleGalleryAPI returns the aggregated listing for client side refreshes.
func (gc *GalleryController) HandleGalleryAPI(c *fiber.Ctx) error {
	listing := gc.gallery.Load(c.UserContext())

	if category := c.Query("category"); category != "" && category != models.CategoryAll {
		filtered := make([]models.GalleryImage, 0, len(listing.Images))
		for _, img := range listing.Images {
			if img.Category == category {
				filtered = append(filtered, img)
			}
		}
		listing.Images = filtered
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(fiber.Map{
		"images":    listing.Images,
		"fetchedAt": listing.FetchedAt,
		"stale":     listing.Stale,
	})
}
