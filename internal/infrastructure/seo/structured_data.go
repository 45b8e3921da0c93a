// Package seo builds the structured data the page emits for search-engine
// and link-preview consumption.
package seo

import (
	"fmt"

	"github.com/avetisov/storefront-service/internal/domain/cart"
	"github.com/avetisov/storefront-service/internal/domain/catalog"
)

const (
	availabilityInStock    = "https://schema.org/InStock"
	availabilityOutOfStock = "https://schema.org/OutOfStock"
)

// PageMetadata is the handful of preview tags the page head carries.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	CardType    string `json:"card_type"`
}

// BuildProductJSONLD renders the schema.org Product object embedded in the
// page as a script tag.
func BuildProductJSONLD(p *catalog.Product) map[string]interface{} {
	availability := availabilityOutOfStock
	if p.InStock() {
		availability = availabilityInStock
	}

	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        p.Title,
		"description": p.Description,
		"sku":         p.ID,
		"image":       p.Media,
		"offers": map[string]interface{}{
			"@type":         "Offer",
			"price":         cart.FormatMinorUnits(p.Price),
			"priceCurrency": p.Currency,
			"availability":  availability,
		},
	}

	if p.Brand != "" {
		data["brand"] = map[string]interface{}{
			"@type": "Brand",
			"name":  p.Brand,
		}
	}

	if p.RatingCount > 0 {
		data["aggregateRating"] = map[string]interface{}{
			"@type":       "AggregateRating",
			"ratingValue": fmt.Sprintf("%.1f", p.RatingValue),
			"reviewCount": p.RatingCount,
		}
	}

	return data
}

func BuildPageMetadata(p *catalog.Product) PageMetadata {
	return PageMetadata{
		Title:       p.Title,
		Description: p.Description,
		Image:       p.PrimaryImage(),
		CardType:    "summary_large_image",
	}
}
