package ports

import (
	"context"

	"github.com/avetisov/storefront-service/internal/domain/cart"
)

// CartStore persists one cart per session token. A token with no stored
// cart reads back as an empty cart, not an error.
type CartStore interface {
	GetCart(ctx context.Context, token string) (cart.Cart, error)
	SaveCart(ctx context.Context, token string, c cart.Cart) error
	DeleteCart(ctx context.Context, token string) error
}
