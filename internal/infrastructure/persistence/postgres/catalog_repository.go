package postgres

import (
	"context"
	"database/sql"

	"github.com/avetisov/storefront-service/internal/domain/catalog"
	"github.com/avetisov/storefront-service/internal/domain/errors"
	"github.com/avetisov/storefront-service/internal/infrastructure/monitoring"
	"github.com/lib/pq"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(conn *Connection) *CatalogRepository {
	return &CatalogRepository{
		db: conn.GetDB(),
	}
}

// GetProduct returns the storefront's single product with its variants.
// Called once at startup; the result is held immutable in memory.
func (r *CatalogRepository) GetProduct(ctx context.Context) (*catalog.Product, error) {
	productQuery := `
		SELECT id, title, description, brand, media, price, compare_at_price,
		       currency, rating_value, rating_count, shipping_threshold
		FROM products
		ORDER BY created_at
		LIMIT 1
	`

	var p catalog.Product
	var media pq.StringArray
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "products", productQuery)
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Brand, &media,
		&p.Price, &p.CompareAtPrice, &p.Currency,
		&p.RatingValue, &p.RatingCount, &p.ShippingThreshold,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrProductNotFound
		}
		return nil, err
	}
	p.Media = media

	variantsQuery := `
		SELECT id, merchandise_id, name, unit_price, stock
		FROM variants
		WHERE product_id = $1
		ORDER BY position
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "variants", variantsQuery, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v catalog.Variant
		var merchandiseID sql.NullString
		if err := rows.Scan(&v.ID, &merchandiseID, &v.Name, &v.UnitPrice, &v.Stock); err != nil {
			return nil, err
		}
		v.MerchandiseID = merchandiseID.String
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *CatalogRepository) GetActiveCampaign(ctx context.Context) (*catalog.Campaign, error) {
	query := `
		SELECT id, product_id, starts_at, ends_at, active, created_at
		FROM campaigns
		WHERE active = TRUE AND starts_at <= NOW() AND ends_at > NOW()
		ORDER BY ends_at
		LIMIT 1
	`

	var c catalog.Campaign
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "campaigns", query)
	err := row.Scan(&c.ID, &c.ProductID, &c.StartsAt, &c.EndsAt, &c.Active, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrCampaignNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *CatalogRepository) CreateCampaign(ctx context.Context, campaign *catalog.Campaign) error {
	query := `
		INSERT INTO campaigns (id, product_id, starts_at, ends_at, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "campaigns", query,
		campaign.ID, campaign.ProductID, campaign.StartsAt, campaign.EndsAt,
		campaign.Active, campaign.CreatedAt,
	)
	return err
}

// CloseExpiredCampaigns flips active off for every campaign past its end;
// returns how many rows were closed.
func (r *CatalogRepository) CloseExpiredCampaigns(ctx context.Context) (int, error) {
	query := `
		UPDATE campaigns
		SET active = FALSE
		WHERE active = TRUE AND ends_at <= NOW()
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "campaigns", query)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
