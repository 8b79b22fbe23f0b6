package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmcfuji/studiosite/app/controllers"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	pages := h.ctrls.Pages

	app.Get("/", pages.HandleRoot)
	app.Get("/sitemap.xml", pages.HandleSitemap)
	app.Get("/robots.txt", pages.HandleRobots)
}

func (h HttpRouter) registerLocaleRoutes(app *fiber.App) {
	pages := h.ctrls.Pages
	gallery := h.ctrls.Gallery
	contact := h.ctrls.Contact

	group := app.Group("/:locale", controllers.RequireLocale)
	group.Get("/", pages.HandleHome)
	group.Get("/sitemap.xml", pages.HandleSitemap)
	group.Get("/service", pages.HandleService)
	group.Get("/service/:name", pages.HandleServiceDetail)

	// Gallery
	group.Get("/gallery", gallery.HandleGalleryPage)
	group.Get("/gallery/view/:index", gallery.HandleLightboxPage)

	// Contact (no-script form shares the API limiter budget)
	group.Get("/contact", contact.HandleContactPage)
	group.Post("/contact", h.ctrls.contactLimiter, contact.HandleContactForm)
}
