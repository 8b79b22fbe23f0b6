package controllers

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// PageController renders the static pages and the crawler files
type PageController struct {
	siteURL string
	now     func() time.Time
}

func NewPageController(siteURL string) *PageController {
	return &PageController{siteURL: strings.TrimRight(siteURL, "/"), now: time.Now}
}

type sitemapRoute struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

var sitemapRoutes = []sitemapRoute{
	{Path: "", ChangeFreq: "weekly", Priority: 1},
	{Path: "/service", ChangeFreq: "monthly", Priority: 0.9},
	{Path: "/service/camu", ChangeFreq: "monthly", Priority: 0.85},
	{Path: "/gallery", ChangeFreq: "weekly", Priority: 0.8},
	{Path: "/contact", ChangeFreq: "monthly", Priority: 0.8},
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// HandleRoot sends visitors to the default locale
func (pc *PageController) HandleRoot(c *fiber.Ctx) error {
	return c.Redirect("/"+DefaultLocale, fiber.StatusFound)
}

func (pc *PageController) HandleHome(c *fiber.Ctx) error {
	return c.Render("home", pageData(c, ""), "layouts/main")
}

func (pc *PageController) HandleService(c *fiber.Ctx) error {
	return c.Render("service", pageData(c, translations(currentLocale(c))["service_title"]), "layouts/main")
}

// HandleServiceDetail renders /service/camu and /service/chloe
func (pc *PageController) HandleServiceDetail(c *fiber.Ctx) error {
	name := c.Params("name")
	if name != "camu" && name != "chloe" {
		return fiber.ErrNotFound
	}
	t := translations(currentLocale(c))
	data := pageData(c, t["service_"+name])
	data["Service"] = name
	data["Heading"] = t["service_"+name]
	data["Lead"] = t["service_"+name+"_lead"]
	return c.Render("service_detail", data, "layouts/main")
}

// HandleSitemap lists every locale, or only the one in the path for /{locale}/sitemap.xml
func (pc *PageController) HandleSitemap(c *fiber.Ctx) error {
	locales := SupportedLocales
	if l := c.Params("locale"); l != "" {
		if !IsSupportedLocale(l) {
			return fiber.ErrNotFound
		}
		locales = []string{l}
	}

	body, err := pc.sitemap(locales)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(body)
}

func (pc *PageController) sitemap(locales []string) ([]byte, error) {
	lastMod := pc.now().UTC().Format(time.RFC3339)
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, locale := range locales {
		for _, r := range sitemapRoutes {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        pc.siteURL + "/" + locale + r.Path,
				LastMod:    lastMod,
				ChangeFreq: r.ChangeFreq,
				Priority:   fmt.Sprintf("%g", r.Priority),
			})
		}
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// HandleRobots allows everything and points crawlers at the per-locale sitemaps
func (pc *PageController) HandleRobots(c *fiber.Ctx) error {
	var b strings.Builder
	b.WriteString("User-Agent: *\nAllow: /\n\n")
	for _, locale := range SupportedLocales {
		fmt.Fprintf(&b, "Sitemap: %s/%s/sitemap.xml\n", pc.siteURL, locale)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(b.String())
}
