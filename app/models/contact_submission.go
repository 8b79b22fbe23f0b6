package models

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const MaxContactMessageLength = 5000

var contactEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactSubmission is the JSON body accepted by the contact endpoint.
type ContactSubmission struct {
	Name    string `json:"name" form:"name" validate:"notblank"`
	Email   string `json:"email" form:"email" validate:"contactemail"`
	Phone   string `json:"phone" form:"phone"`
	Service string `json:"service" form:"service"`
	Message string `json:"message" form:"message" validate:"notblank,max=5000"`
	Locale  string `json:"locale" form:"locale"`
}

var contactValidate = newContactValidator()

func newContactValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return contactEmailPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate returns the list of human-readable validation failures, empty when valid.
func (s *ContactSubmission) Validate() []string {
	err := contactValidate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	var messages []string
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Name":
			messages = append(messages, "Name is required")
		case "Email":
			messages = append(messages, "Valid email is required")
		case "Message":
			if fe.Tag() == "max" {
				messages = append(messages, "Message is too long (max 5000 characters)")
			} else {
				messages = append(messages, "Message is required")
			}
		}
	}
	return messages
}

// IsJapanese reports whether replies should use the Japanese templates.
func (s *ContactSubmission) IsJapanese() bool {
	return s.Locale == "ja"
}
