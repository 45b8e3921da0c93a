package catalog

import (
	"errors"
	"time"
)

// Product is the single item this storefront sells. Loaded once at startup
// and treated as immutable reference data; price, stock and payment truth
// live on the external commerce platform.
type Product struct {
	ID                string
	Title             string
	Description       string
	Brand             string
	Media             []string
	Price             int64 // minor units
	CompareAtPrice    int64
	Currency          string
	RatingValue       float64
	RatingCount       int
	ShippingThreshold int64
	Variants          []Variant
}

// Variant is one purchasable configuration of the product. MerchandiseID is
// the external platform's identifier; without it the variant cannot be
// checked out.
type Variant struct {
	ID            string
	MerchandiseID string
	Name          string
	UnitPrice     int64
	Stock         int
}

func NewProduct(id, title, currency string) (*Product, error) {
	if id == "" {
		return nil, errors.New("product id cannot be empty")
	}
	if title == "" {
		return nil, errors.New("product title cannot be empty")
	}
	if currency == "" {
		return nil, errors.New("product currency cannot be empty")
	}

	return &Product{
		ID:       id,
		Title:    title,
		Currency: currency,
	}, nil
}

func (p *Product) FindVariant(variantID string) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

func (p *Product) PrimaryImage() string {
	if len(p.Media) == 0 {
		return ""
	}
	return p.Media[0]
}

func (p *Product) InStock() bool {
	for _, v := range p.Variants {
		if v.Stock > 0 {
			return true
		}
	}
	return false
}

func (v *Variant) InStock() bool {
	return v.Stock > 0
}

func (v *Variant) HasMerchandiseMapping() bool {
	return v.MerchandiseID != ""
}

// Campaign is the time window the countdown runs against. The storefront
// keeps selling what the platform allows; the campaign only drives the
// cutoff display and the scheduler.
type Campaign struct {
	ID        string
	ProductID string
	StartsAt  time.Time
	EndsAt    time.Time
	Active    bool
	CreatedAt time.Time
}

func NewCampaign(id, productID string, startsAt, endsAt time.Time) (*Campaign, error) {
	if id == "" {
		return nil, errors.New("campaign id cannot be empty")
	}
	if productID == "" {
		return nil, errors.New("campaign product id cannot be empty")
	}
	if !startsAt.Before(endsAt) {
		return nil, errors.New("campaign start must be before end")
	}

	return &Campaign{
		ID:        id,
		ProductID: productID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (c *Campaign) IsRunning(now time.Time) bool {
	return c.Active && now.After(c.StartsAt) && now.Before(c.EndsAt)
}

func (c *Campaign) IsExpired(now time.Time) bool {
	return !now.Before(c.EndsAt)
}
