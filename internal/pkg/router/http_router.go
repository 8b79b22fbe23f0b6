package router

import (
	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
	ctrls Controllers
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	h.registerPublicRoutes(app)
	h.registerLocaleRoutes(app)
}

func NewHttpRouter(ctrls Controllers) *HttpRouter {
	return &HttpRouter{ctrls: ctrls}
}
