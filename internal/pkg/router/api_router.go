package router

import (
	"github.com/gofiber/fiber/v2"

	apiv1 "github.com/dmcfuji/studiosite/internal/api/v1"
	"github.com/dmcfuji/studiosite/internal/pkg/constants"
)

type ApiRouter struct {
	ctrls Controllers
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute)

	apiServer := apiv1.NewAPIServer(h.ctrls.Gallery, h.ctrls.Images, h.ctrls.Contact)
	apiv1.RegisterHandlers(api, apiServer, h.ctrls.contactLimiter)
}

func NewApiRouter(ctrls Controllers) *ApiRouter {
	return &ApiRouter{ctrls: ctrls}
}
