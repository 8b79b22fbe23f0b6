package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmcfuji/studiosite/app/models"
	"github.com/dmcfuji/studiosite/internal/pkg/mail"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotConfigured = errors.New("contact mail is not configured")
)

// ValidationError carries the messages shown to the submitter
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Service turns a contact submission into an operator notification and an auto-reply.
type Service struct {
	mailer mail.Mailer
	cfg    mail.Config
	newID  func() string
}

func NewService(mailer mail.Mailer, cfg mail.Config) *Service {
	return &Service{mailer: mailer, cfg: cfg, newID: uuid.NewString}
}

// Submit validates the submission and sends both mails concurrently. It fails when either
// send fails; the returned inquiry ID is quoted in the operator mail.
func (s *Service) Submit(ctx context.Context, sub models.ContactSubmission) (string, error) {
	if details := sub.Validate(); len(details) > 0 {
		return "", &ValidationError{Details: details}
	}
	if s.mailer == nil || !s.cfg.Configured() {
		log.Error("[Contact] SMTP credentials missing, cannot send inquiry")
		return "", ErrNotConfigured
	}

	inq := mail.Inquiry{
		ID:       s.newID(),
		Name:     strings.TrimSpace(sub.Name),
		Email:    strings.TrimSpace(sub.Email),
		Phone:    strings.TrimSpace(sub.Phone),
		Service:  sub.Service,
		Message:  sub.Message,
		Japanese: sub.IsJapanese(),
	}

	notification, err := mail.Notification(s.cfg.ContactEmail, inq)
	if err != nil {
		return "", err
	}
	reply, err := mail.AutoReply(inq)
	if err != nil {
		return "", err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.mailer.Send(gctx, notification) })
	g.Go(func() error { return s.mailer.Send(gctx, reply) })
	if err := g.Wait(); err != nil {
		log.Errorf("[Contact] Inquiry %s failed: %v", inq.ID, err)
		return "", fmt.Errorf("send contact mail: %w", err)
	}

	log.Infof("[Contact] Inquiry %s sent (locale=%s service=%q)", inq.ID, inq.Lang(), inq.Service)
	return inq.ID, nil
}
