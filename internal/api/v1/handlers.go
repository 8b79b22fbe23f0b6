package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmcfuji/studiosite/app/controllers"
)

// ServerInterface lists the public API operations
type ServerInterface interface {
	// (GET /gallery)
	GetGallery(c *fiber.Ctx) error
	// (GET /img/*)
	GetImage(c *fiber.Ctx) error
	// (POST /contact)
	PostContact(c *fiber.Ctx) error
	// (GET /contact)
	GetContact(c *fiber.Ctx) error
}

// APIServer implements the ServerInterface
type APIServer struct {
	gallery *controllers.GalleryController
	images  *controllers.ImageController
	contact *controllers.ContactController
}

// NewAPIServer creates a new API server instance
func NewAPIServer(g *controllers.GalleryController, i *controllers.ImageController, c *controllers.ContactController) *APIServer {
	return &APIServer{gallery: g, images: i, contact: c}
}

// GetGallery returns every image of every category
func (s *APIServer) GetGallery(c *fiber.Ctx) error {
	return s.gallery.HandleGalleryAPI(c)
}

// GetImage proxies one stored image
func (s *APIServer) GetImage(c *fiber.Ctx) error {
	return s.images.HandleImageProxy(c)
}

// PostContact accepts a contact submission
func (s *APIServer) PostContact(c *fiber.Ctx) error {
	return s.contact.HandleContactAPI(c)
}

func (s *APIServer) GetContact(c *fiber.Ctx) error {
	return s.contact.HandleContactMethodNotAllowed(c)
}

// RegisterHandlers mounts the operations on router. Extra handlers run before PostContact,
// which is where the router installs its rate limiter.
func RegisterHandlers(router fiber.Router, si ServerInterface, contactMiddleware ...fiber.Handler) {
	router.Get("/gallery", si.GetGallery)
	router.Get("/img/*", si.GetImage)
	router.Get("/contact", si.GetContact)
	router.Post("/contact", append(contactMiddleware, si.PostContact)...)
}
