package handlers

import (
	"context"

	"github.com/avetisov/storefront-service/internal/application/ports"
	"github.com/avetisov/storefront-service/internal/domain/cart"
	"github.com/avetisov/storefront-service/internal/domain/catalog"
	domainErrors "github.com/avetisov/storefront-service/internal/domain/errors"
)

func testProduct() *catalog.Product {
	return &catalog.Product{
		ID:                "winter-garland",
		Title:             "Nordic Fir Garland",
		Description:       "Hand-tied fir garland for the holiday season.",
		Brand:             "Tundra Home",
		Currency:          "USD",
		Media:             []string{"https://cdn.example.com/garland-hero.jpg"},
		Price:             2499,
		CompareAtPrice:    3499,
		RatingValue:       4.8,
		RatingCount:       132,
		ShippingThreshold: 5000,
		Variants: []catalog.Variant{
			{ID: "v-6ft", MerchandiseID: "gid://shop/ProductVariant/601", Name: "6 ft", UnitPrice: 2499, Stock: 12},
			{ID: "v-9ft", MerchandiseID: "gid://shop/ProductVariant/901", Name: "9 ft", UnitPrice: 2999, Stock: 4},
		},
	}
}

type fakeCatalogRepo struct {
	campaign *catalog.Campaign
	err      error
}

func (r *fakeCatalogRepo) GetProduct(ctx context.Context) (*catalog.Product, error) {
	return testProduct(), nil
}

func (r *fakeCatalogRepo) GetActiveCampaign(ctx context.Context) (*catalog.Campaign, error) {
	if r.campaign == nil {
		if r.err != nil {
			return nil, r.err
		}
		return nil, domainErrors.ErrCampaignNotFound
	}
	return r.campaign, nil
}

func (r *fakeCatalogRepo) CreateCampaign(ctx context.Context, campaign *catalog.Campaign) error {
	r.campaign = campaign
	return nil
}

func (r *fakeCatalogRepo) CloseExpiredCampaigns(ctx context.Context) (int, error) {
	return 0, nil
}

type memCartStore struct {
	carts map[string]cart.Cart
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string]cart.Cart)}
}

func (s *memCartStore) GetCart(ctx context.Context, token string) (cart.Cart, error) {
	return s.carts[token], nil
}

func (s *memCartStore) SaveCart(ctx context.Context, token string, c cart.Cart) error {
	s.carts[token] = c
	return nil
}

func (s *memCartStore) DeleteCart(ctx context.Context, token string) error {
	delete(s.carts, token)
	return nil
}

type noopTracker struct{}

func (noopTracker) Track(ctx context.Context, event ports.AnalyticsEvent) {}
