package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	gomail "github.com/wneessen/go-mail"

	"github.com/dmcfuji/studiosite/internal/pkg/env"
)

// Config holds the SMTP settings used for contact mail
type Config struct {
	Host         string
	Port         int
	Username     string
	Password     string
	ContactEmail string // operator inbox, defaults to Username
	Timeout      time.Duration
}

// LoadConfig reads SMTP_* and CONTACT_EMAIL from the environment.
func LoadConfig() Config {
	cfg := Config{
		Host:         env.GetEnv("SMTP_HOST", "smtp.gmail.com"),
		Port:         env.GetEnvInt("SMTP_PORT", 587),
		Username:     env.GetEnv("SMTP_USERNAME", ""),
		Password:     env.GetEnv("SMTP_PASSWORD", ""),
		ContactEmail: env.GetEnv("CONTACT_EMAIL", ""),
		Timeout:      time.Duration(env.GetEnvInt("SMTP_TIMEOUT", 15)) * time.Second,
	}
	if cfg.ContactEmail == "" {
		cfg.ContactEmail = cfg.Username
	}
	return cfg
}

// Configured reports whether credentials are present. Without them nothing can be sent.
func (c Config) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// Message is one outgoing mail with a plain text body and an HTML alternative
type Message struct {
	FromName string
	To       string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
}

// Mailer delivers messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var ErrNotConfigured = errors.New("smtp credentials are not configured")

// SMTPMailer sends through an authenticated STARTTLS submission port.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Sender is the envelope sender address
func (m *SMTPMailer) Sender() string {
	return m.cfg.Username
}

// Send builds the MIME message and delivers it on a fresh connection.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.cfg.Configured() {
		return ErrNotConfigured
	}

	gm, err := buildMsg(m.cfg.Username, msg)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTLSConfig(&tls.Config{ServerName: m.cfg.Host}),
		gomail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client (host=%s port=%d): %w", m.cfg.Host, m.cfg.Port, err)
	}

	if err := client.DialAndSendWithContext(ctx, gm); err != nil {
		// credentials stay out of the error
		return fmt.Errorf("send mail (host=%s port=%d user=%s): %w", m.cfg.Host, m.cfg.Port, m.cfg.Username, err)
	}

	log.Infof("[Mail] Sent %q to %s via %s:%d", msg.Subject, msg.To, m.cfg.Host, m.cfg.Port)
	return nil
}

func buildMsg(sender string, msg Message) (*gomail.Msg, error) {
	gm := gomail.NewMsg()

	if msg.FromName != "" {
		if err := gm.FromFormat(msg.FromName, sender); err != nil {
			return nil, fmt.Errorf("set sender: %w", err)
		}
	} else if err := gm.From(sender); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := gm.To(msg.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := gm.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("set reply-to: %w", err)
		}
	}
	gm.Subject(msg.Subject)
	gm.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		gm.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}
	return gm, nil
}
