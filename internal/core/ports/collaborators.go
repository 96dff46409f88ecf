package ports

import (
	"context"
	"io"
	"time"
)

// AssetStore uploads a file to the asset host and returns its secure URL.
type AssetStore interface {
	Upload(ctx context.Context, fileName string, body io.Reader) (string, error)
}

// Email is an outbound transactional message.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a single email synchronously.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// Notifier queues an email for asynchronous delivery. It must not block the caller.
type Notifier interface {
	Notify(email Email)
}

// RateLimiter decides whether another request under key fits in the window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
