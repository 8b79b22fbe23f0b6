package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmcfuji/studiosite/app/controllers"
	"github.com/dmcfuji/studiosite/internal/pkg/ratelimit"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Controllers bundles everything the routers mount
type Controllers struct {
	Pages   *controllers.PageController
	Gallery *controllers.GalleryController
	Images  *controllers.ImageController
	Contact *controllers.ContactController
	// LimiterStorage backs the contact rate limiter; nil counts in memory
	LimiterStorage fiber.Storage

	contactLimiter fiber.Handler
}

func InstallRouter(app *fiber.App, ctrls Controllers) {
	// one limiter instance so the API and the form post draw from the same budget
	ctrls.contactLimiter = ratelimit.Contact(ctrls.LimiterStorage)
	// API first so /api/* never falls through to the /:locale pages
	setup(app, NewApiRouter(ctrls), NewHttpRouter(ctrls))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
