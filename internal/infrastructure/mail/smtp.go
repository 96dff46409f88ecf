package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/placementpathway/portal-api/internal/core/ports"
)

const dialTimeout = 15 * time.Second

// SMTPConfig captures the settings for an authenticated SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements ports.Mailer on top of go-mail. A client is built per
// message so concurrent dispatcher workers never share a connection.
type SMTPMailer struct {
	cfg  SMTPConfig
	opts []gomail.Option
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp: host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp: from address is required")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(dialTimeout),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	// Validate the options once so misconfiguration fails at startup.
	if _, err := gomail.NewClient(cfg.Host, opts...); err != nil {
		return nil, fmt.Errorf("smtp: %w", err)
	}
	return &SMTPMailer{cfg: cfg, opts: opts}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, email ports.Email) error {
	msg, err := m.message(email)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(m.cfg.Host, m.opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email.To, err)
	}
	return nil
}

func (m *SMTPMailer) message(email ports.Email) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, email.HTML)
	return msg, nil
}
