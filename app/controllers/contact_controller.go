package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/dmcfuji/studiosite/app/models"
	"github.com/dmcfuji/studiosite/internal/pkg/contact"
)

// ContactController accepts contact submissions as JSON and as a plain form post
type ContactController struct {
	contact *contact.Service
}

func NewContactController(svc *contact.Service) *ContactController {
	return &ContactController{contact: svc}
}

// HandleContactAPI answers POST /api/contact
func (cc *ContactController) HandleContactAPI(c *fiber.Ctx) error {
	var sub models.ContactSubmission
	if err := c.BodyParser(&sub); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	id, err := cc.contact.Submit(c.UserContext(), sub)
	if err != nil {
		status, body := contactErrorResponse(err)
		return c.Status(status).JSON(body)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "Email sent successfully",
		"inquiryId": id,
	})
}

func contactErrorResponse(err error) (int, fiber.Map) {
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, fiber.Map{
			"success": false,
			"error":   "Validation failed",
			"details": verr.Details,
		}
	case errors.Is(err, contact.ErrNotConfigured):
		return fiber.StatusInternalServerError, fiber.Map{
			"success": false,
			"error":   "Server configuration error",
		}
	default:
		return fiber.StatusInternalServerError, fiber.Map{
			"success": false,
			"error":   "Failed to send email",
		}
	}
}

// HandleContactMethodNotAllowed answers GET /api/contact
func (cc *ContactController) HandleContactMethodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": "Method not allowed"})
}

// HandleContactPage renders the form with the outcome of a previous post, if any
func (cc *ContactController) HandleContactPage(c *fiber.Ctx) error {
	data := pageData(c, translations(currentLocale(c))["contact_title"])
	data["Flash"] = flash.Get(c)
	return c.Render("contact", data, "layouts/main")
}

// HandleContactForm is the no-script fallback: post, then redirect back with a flash message.
func (cc *ContactController) HandleContactForm(c *fiber.Ctx) error {
	locale := currentLocale(c)
	t := translations(locale)
	back := "/" + locale + "/contact"

	var sub models.ContactSubmission
	if err := c.BodyParser(&sub); err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": t["contact_invalid"]}).Redirect(back)
	}
	sub.Locale = locale

	if _, err := cc.contact.Submit(c.UserContext(), sub); err != nil {
		fm := fiber.Map{"type": "error", "message": t["contact_error"], "name": sub.Name, "email": sub.Email, "phone": sub.Phone, "service": sub.Service}
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			fm["message"] = t["contact_invalid"]
			fm["details"] = strings.Join(verr.Details, " / ")
		}
		return flash.WithError(c, fm).Redirect(back)
	}

	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": t["contact_success"]}).Redirect(back)
}
