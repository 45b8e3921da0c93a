package checkout

import (
	"errors"
	"time"
)

// Session is the external platform's representation of an in-progress
// checkout: an opaque id plus the URL the client is redirected to. Created
// lazily on the first checkout attempt and appended to afterwards.
type Session struct {
	ID          string
	CheckoutURL string
	CreatedAt   time.Time
}

func NewSession(id, checkoutURL string) (*Session, error) {
	if id == "" {
		return nil, errors.New("session id cannot be empty")
	}
	if checkoutURL == "" {
		return nil, errors.New("session checkout url cannot be empty")
	}

	return &Session{
		ID:          id,
		CheckoutURL: checkoutURL,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// AttemptState is the checkout state machine. Failed returns to Idle (no
// automatic retry); Redirecting is terminal for the attempt.
type AttemptState string

const (
	StateIdle        AttemptState = "idle"
	StateSubmitting  AttemptState = "submitting"
	StateRedirecting AttemptState = "redirecting"
	StateFailed      AttemptState = "failed"
)

// LineInput is the platform's line-item format.
type LineInput struct {
	MerchandiseID string
	Quantity      int
}
