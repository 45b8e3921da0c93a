package ports

import (
	"context"

	"github.com/avetisov/storefront-service/internal/domain/catalog"
)

type CatalogRepository interface {
	GetProduct(ctx context.Context) (*catalog.Product, error)

	GetActiveCampaign(ctx context.Context) (*catalog.Campaign, error)
	CreateCampaign(ctx context.Context, campaign *catalog.Campaign) error
	CloseExpiredCampaigns(ctx context.Context) (int, error)
}
