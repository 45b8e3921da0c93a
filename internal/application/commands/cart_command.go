package commands

import (
	"context"
	"fmt"

	"github.com/avetisov/storefront-service/internal/application/ports"
	"github.com/avetisov/storefront-service/internal/domain/cart"
	"github.com/avetisov/storefront-service/internal/domain/catalog"
	"github.com/avetisov/storefront-service/internal/domain/errors"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

type AddToCartCommand struct {
	SessionToken string
	VariantID    string
	Quantity     int
}

type ChangeQuantityCommand struct {
	SessionToken string
	VariantID    string
	Delta        int
}

type RemoveLineCommand struct {
	SessionToken string
	VariantID    string
}

type CartLineView struct {
	VariantID   string `json:"variant_id"`
	Title       string `json:"title"`
	VariantName string `json:"variant_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"image_url,omitempty"`
	LineTotal   string `json:"line_total"`
}

type CartSnapshot struct {
	Lines         []CartLineView `json:"lines"`
	TotalQuantity int            `json:"total_quantity"`
	Subtotal      string         `json:"subtotal"`
	Currency      string         `json:"currency"`
	FreeShipping  bool           `json:"free_shipping"`
}

// CartHandler serializes cart mutations for a session token. Line data is
// taken from the catalog, never from the client, so a malformed line shape
// cannot reach the store.
type CartHandler struct {
	product   *catalog.Product
	cartStore ports.CartStore
	tracker   ports.AnalyticsTracker
	log       *logger.Logger
}

func NewCartHandler(
	product *catalog.Product,
	cartStore ports.CartStore,
	tracker ports.AnalyticsTracker,
	log *logger.Logger,
) *CartHandler {
	return &CartHandler{
		product:   product,
		cartStore: cartStore,
		tracker:   tracker,
		log:       log,
	}
}

func (h *CartHandler) HandleAdd(ctx context.Context, cmd AddToCartCommand) (*CartSnapshot, error) {
	variant, ok := h.product.FindVariant(cmd.VariantID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrVariantNotFound, cmd.VariantID)
	}
	if !variant.InStock() {
		return nil, errors.ErrVariantOutOfStock
	}

	line, err := cart.NormalizeLine(cart.Line{
		VariantID:   variant.ID,
		Title:       h.product.Title,
		VariantName: variant.Name,
		UnitPrice:   variant.UnitPrice,
		Quantity:    cmd.Quantity,
		ImageURL:    h.product.PrimaryImage(),
	})
	if err != nil {
		return nil, err
	}

	current, err := h.cartStore.GetCart(ctx, cmd.SessionToken)
	if err != nil {
		h.log.Error("Failed to load cart", "error", err, "session_token", cmd.SessionToken)
		return nil, err
	}

	next := current.Add(line)
	if err := h.cartStore.SaveCart(ctx, cmd.SessionToken, next); err != nil {
		h.log.Error("Failed to save cart", "error", err, "session_token", cmd.SessionToken)
		return nil, err
	}

	h.tracker.Track(ctx, ports.AnalyticsEvent{
		Name:         ports.EventAddToCart,
		SessionToken: cmd.SessionToken,
		Fields: map[string]interface{}{
			"variant_id": variant.ID,
			"quantity":   line.Quantity,
			"value":      cart.FormatMinorUnits(line.UnitPrice * int64(line.Quantity)),
			"currency":   h.product.Currency,
		},
	})

	return h.snapshot(next), nil
}

func (h *CartHandler) HandleChangeQuantity(ctx context.Context, cmd ChangeQuantityCommand) (*CartSnapshot, error) {
	current, err := h.cartStore.GetCart(ctx, cmd.SessionToken)
	if err != nil {
		return nil, err
	}

	// Floor-at-one, then the separate prune pass; a line can only vanish
	// here if it was already invalid in the store.
	next := current.ChangeQuantity(cmd.VariantID, cmd.Delta).Prune()
	if err := h.cartStore.SaveCart(ctx, cmd.SessionToken, next); err != nil {
		return nil, err
	}

	return h.snapshot(next), nil
}

func (h *CartHandler) HandleRemove(ctx context.Context, cmd RemoveLineCommand) (*CartSnapshot, error) {
	current, err := h.cartStore.GetCart(ctx, cmd.SessionToken)
	if err != nil {
		return nil, err
	}

	next := current.Remove(cmd.VariantID)
	if err := h.cartStore.SaveCart(ctx, cmd.SessionToken, next); err != nil {
		return nil, err
	}

	return h.snapshot(next), nil
}

func (h *CartHandler) HandleGet(ctx context.Context, sessionToken string) (*CartSnapshot, error) {
	current, err := h.cartStore.GetCart(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	return h.snapshot(current), nil
}

func (h *CartHandler) snapshot(c cart.Cart) *CartSnapshot {
	lines := make([]CartLineView, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, CartLineView{
			VariantID:   l.VariantID,
			Title:       l.Title,
			VariantName: l.VariantName,
			UnitPrice:   cart.FormatMinorUnits(l.UnitPrice),
			Quantity:    l.Quantity,
			ImageURL:    l.ImageURL,
			LineTotal:   cart.FormatMinorUnits(l.UnitPrice * int64(l.Quantity)),
		})
	}

	return &CartSnapshot{
		Lines:         lines,
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      cart.FormatMinorUnits(c.Subtotal()),
		Currency:      h.product.Currency,
		FreeShipping:  c.QualifiesForFreeShipping(h.product.ShippingThreshold),
	}
}
