package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/core/ports"
)

// LogMailer writes emails to the log instead of sending them. It is used when
// no SMTP relay is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, email ports.Email) error {
	m.log.Info().
		Str("to", email.To).
		Str("subject", email.Subject).
		Int("body_bytes", len(email.HTML)).
		Msg("email not sent: smtp disabled")
	return nil
}
