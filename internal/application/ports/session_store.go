package ports

import (
	"context"
	"time"
)

// SessionStore keeps the external checkout session identifier per session
// token, so later checkouts append to the same session, and holds the
// submitting guard that blocks re-entrant checkout attempts.
type SessionStore interface {
	GetSessionID(ctx context.Context, token string) (string, error)
	SetSessionID(ctx context.Context, token, sessionID string, expiration time.Duration) error

	AcquireCheckoutLock(ctx context.Context, token string, expiration time.Duration) (bool, error)
	ReleaseCheckoutLock(ctx context.Context, token string) error
}
