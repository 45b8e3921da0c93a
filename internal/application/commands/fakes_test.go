package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/avetisov/storefront-service/internal/application/ports"
	"github.com/avetisov/storefront-service/internal/domain/cart"
	"github.com/avetisov/storefront-service/internal/domain/catalog"
	"github.com/avetisov/storefront-service/internal/domain/checkout"
)

func testProduct() *catalog.Product {
	return &catalog.Product{
		ID:                "winter-garland",
		Title:             "Nordic Fir Garland",
		Brand:             "Tundra Home",
		Currency:          "USD",
		Media:             []string{"https://cdn.example.com/garland-hero.jpg"},
		Price:             2499,
		ShippingThreshold: 5000,
		Variants: []catalog.Variant{
			{ID: "v-6ft", MerchandiseID: "gid://shop/ProductVariant/601", Name: "6 ft", UnitPrice: 2499, Stock: 12},
			{ID: "v-9ft", MerchandiseID: "gid://shop/ProductVariant/901", Name: "9 ft", UnitPrice: 2999, Stock: 4},
			{ID: "v-unmapped", Name: "Sample Swatch", UnitPrice: 999, Stock: 3},
			{ID: "v-sold-out", MerchandiseID: "gid://shop/ProductVariant/991", Name: "12 ft", UnitPrice: 3499, Stock: 0},
		},
	}
}

type fakeCartStore struct {
	carts    map[string]cart.Cart
	getErr   error
	saveErr  error
	saves    int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]cart.Cart)}
}

func (s *fakeCartStore) GetCart(ctx context.Context, token string) (cart.Cart, error) {
	if s.getErr != nil {
		return cart.Cart{}, s.getErr
	}
	return s.carts[token], nil
}

func (s *fakeCartStore) SaveCart(ctx context.Context, token string, c cart.Cart) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.carts[token] = c
	return nil
}

func (s *fakeCartStore) DeleteCart(ctx context.Context, token string) error {
	delete(s.carts, token)
	return nil
}

type fakeSessionStore struct {
	sessions map[string]string
	locked   map[string]bool
	lockErr  error
	getErr   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[string]string),
		locked:   make(map[string]bool),
	}
}

func (s *fakeSessionStore) GetSessionID(ctx context.Context, token string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.sessions[token], nil
}

func (s *fakeSessionStore) SetSessionID(ctx context.Context, token, sessionID string, expiration time.Duration) error {
	s.sessions[token] = sessionID
	return nil
}

func (s *fakeSessionStore) AcquireCheckoutLock(ctx context.Context, token string, expiration time.Duration) (bool, error) {
	if s.lockErr != nil {
		return false, s.lockErr
	}
	if s.locked[token] {
		return false, nil
	}
	s.locked[token] = true
	return true, nil
}

func (s *fakeSessionStore) ReleaseCheckoutLock(ctx context.Context, token string) error {
	s.locked[token] = false
	return nil
}

type gatewayCall struct {
	sessionID string
	lines     []checkout.LineInput
}

type fakeGateway struct {
	createCalls []gatewayCall
	appendCalls []gatewayCall
	err         error
}

func (g *fakeGateway) CreateCartSession(ctx context.Context, lines []checkout.LineInput) (*checkout.Session, error) {
	g.createCalls = append(g.createCalls, gatewayCall{lines: lines})
	if g.err != nil {
		return nil, g.err
	}
	return &checkout.Session{
		ID:          fmt.Sprintf("sess-%d", len(g.createCalls)),
		CheckoutURL: "https://shop.example.com/checkouts/abc",
	}, nil
}

func (g *fakeGateway) AddLinesToSession(ctx context.Context, sessionID string, lines []checkout.LineInput) (*checkout.Session, error) {
	g.appendCalls = append(g.appendCalls, gatewayCall{sessionID: sessionID, lines: lines})
	if g.err != nil {
		return nil, g.err
	}
	return &checkout.Session{
		ID:          sessionID,
		CheckoutURL: "https://shop.example.com/checkouts/abc",
	}, nil
}

type fakeTracker struct {
	events []ports.AnalyticsEvent
}

func (t *fakeTracker) Track(ctx context.Context, event ports.AnalyticsEvent) {
	t.events = append(t.events, event)
}

type fakeAttemptLog struct {
	attempts []ports.CheckoutAttempt
}

func (l *fakeAttemptLog) LogAttempt(ctx context.Context, attempt ports.CheckoutAttempt) error {
	l.attempts = append(l.attempts, attempt)
	return nil
}

func (l *fakeAttemptLog) CountAttempts(ctx context.Context, token string) (int, error) {
	var n int
	for _, a := range l.attempts {
		if a.SessionToken == token {
			n++
		}
	}
	return n, nil
}
