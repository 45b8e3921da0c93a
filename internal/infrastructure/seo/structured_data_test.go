package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avetisov/storefront-service/internal/domain/catalog"
)

func sampleProduct() *catalog.Product {
	return &catalog.Product{
		ID:          "winter-garland",
		Title:       "Nordic Fir Garland",
		Description: "Hand-tied fir garland for the holiday season.",
		Brand:       "Tundra Home",
		Media:       []string{"https://cdn.example.com/hero.jpg", "https://cdn.example.com/alt.jpg"},
		Price:       2499,
		Currency:    "USD",
		RatingValue: 4.8,
		RatingCount: 132,
		Variants: []catalog.Variant{
			{ID: "v-6ft", UnitPrice: 2499, Stock: 3},
		},
	}
}

func TestBuildProductJSONLD(t *testing.T) {
	data := BuildProductJSONLD(sampleProduct())

	assert.Equal(t, "https://schema.org", data["@context"])
	assert.Equal(t, "Product", data["@type"])
	assert.Equal(t, "Nordic Fir Garland", data["name"])

	offers, ok := data["offers"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "24.99", offers["price"])
	assert.Equal(t, "USD", offers["priceCurrency"])
	assert.Equal(t, "https://schema.org/InStock", offers["availability"])

	rating, ok := data["aggregateRating"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "4.8", rating["ratingValue"])
	assert.Equal(t, 132, rating["reviewCount"])
}

func TestBuildProductJSONLDOutOfStock(t *testing.T) {
	p := sampleProduct()
	p.Variants[0].Stock = 0

	data := BuildProductJSONLD(p)
	offers := data["offers"].(map[string]interface{})
	assert.Equal(t, "https://schema.org/OutOfStock", offers["availability"])
}

func TestBuildProductJSONLDOmitsEmptySections(t *testing.T) {
	p := sampleProduct()
	p.Brand = ""
	p.RatingCount = 0

	data := BuildProductJSONLD(p)
	assert.NotContains(t, data, "brand")
	assert.NotContains(t, data, "aggregateRating")
}

func TestBuildPageMetadata(t *testing.T) {
	meta := BuildPageMetadata(sampleProduct())

	assert.Equal(t, "Nordic Fir Garland", meta.Title)
	assert.Equal(t, "https://cdn.example.com/hero.jpg", meta.Image)
	assert.Equal(t, "summary_large_image", meta.CardType)
}
