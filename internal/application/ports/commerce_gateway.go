package ports

import (
	"context"

	"github.com/avetisov/storefront-service/internal/domain/checkout"
)

// CommerceGateway is the outbound bridge to the external platform. Both
// calls return the session (id + checkout URL) or an error; validation
// failures surface as *errors.ValidationError.
type CommerceGateway interface {
	CreateCartSession(ctx context.Context, lines []checkout.LineInput) (*checkout.Session, error)
	AddLinesToSession(ctx context.Context, sessionID string, lines []checkout.LineInput) (*checkout.Session, error)
}
