package ports

import (
	"context"

	"github.com/avetisov/storefront-service/internal/domain/checkout"
)

type CheckoutAttempt struct {
	ID           string
	SessionToken string
	SessionID    string
	State        checkout.AttemptState
	FailReason   string
	LineCount    int
}

// AttemptLog records every checkout attempt with its terminal state.
type AttemptLog interface {
	LogAttempt(ctx context.Context, attempt CheckoutAttempt) error
	CountAttempts(ctx context.Context, token string) (int, error)
}
