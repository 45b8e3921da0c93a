package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/avetisov/storefront-service/internal/domain/errors"
)

func line(variantID string, price int64, qty int) Line {
	return Line{
		VariantID:   variantID,
		Title:       "Nordic Fir Garland",
		VariantName: variantID,
		UnitPrice:   price,
		Quantity:    qty,
	}
}

func TestAddDistinctVariants(t *testing.T) {
	c := New()
	c = c.Add(line("v-6ft", 2499, 1))
	c = c.Add(line("v-9ft", 2999, 2))
	c = c.Add(line("v-12ft", 3499, 1))

	assert.Len(t, c.Lines, 3)
	for _, want := range []struct {
		id  string
		qty int
	}{
		{"v-6ft", 1}, {"v-9ft", 2}, {"v-12ft", 1},
	} {
		got, ok := c.Find(want.id)
		require.True(t, ok, "line %s missing", want.id)
		assert.Equal(t, want.qty, got.Quantity)
	}
}

func TestAddMergesByVariantID(t *testing.T) {
	c := New()
	c = c.Add(line("v-6ft", 2499, 1))
	c = c.Add(line("v-6ft", 2499, 2))

	require.Len(t, c.Lines, 1, "add must never create a duplicate line")
	assert.Equal(t, 3, c.Lines[0].Quantity)
}

func TestAddDoesNotMutatePriorSnapshot(t *testing.T) {
	before := New().Add(line("v-6ft", 2499, 1))
	after := before.Add(line("v-6ft", 2499, 5))

	assert.Equal(t, 1, before.Lines[0].Quantity)
	assert.Equal(t, 6, after.Lines[0].Quantity)
}

func TestChangeQuantityFloorsAtOne(t *testing.T) {
	c := New().Add(line("v-6ft", 2499, 2))

	c = c.ChangeQuantity("v-6ft", -99)
	got, ok := c.Find("v-6ft")
	require.True(t, ok)
	assert.Equal(t, 1, got.Quantity)

	c = c.ChangeQuantity("v-6ft", 3)
	got, _ = c.Find("v-6ft")
	assert.Equal(t, 4, got.Quantity)
}

func TestChangeQuantityAbsentVariantIsNoOp(t *testing.T) {
	c := New().Add(line("v-6ft", 2499, 2))
	next := c.ChangeQuantity("v-missing", 5)
	assert.Equal(t, c, next)
}

func TestRemove(t *testing.T) {
	c := New().
		Add(line("v-6ft", 2499, 2)).
		Add(line("v-9ft", 2999, 1))

	c = c.Remove("v-6ft")
	assert.Len(t, c.Lines, 1)
	_, ok := c.Find("v-6ft")
	assert.False(t, ok)

	// Removing an absent line is a silent no-op.
	c = c.Remove("v-6ft")
	assert.Len(t, c.Lines, 1)
}

func TestPruneDropsNonPositiveLines(t *testing.T) {
	c := Cart{Lines: []Line{
		line("v-6ft", 2499, 2),
		line("v-9ft", 2999, 0),
		line("v-12ft", 3499, -1),
	}}

	c = c.Prune()
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "v-6ft", c.Lines[0].VariantID)
}

func TestSubtotal(t *testing.T) {
	assert.Equal(t, int64(0), New().Subtotal())

	c := New().
		Add(line("v-6ft", 2499, 2)).
		Add(line("v-9ft", 2999, 1))
	assert.Equal(t, int64(7997), c.Subtotal())
	assert.Equal(t, "79.97", FormatMinorUnits(c.Subtotal()))
}

func TestQualifiesForFreeShipping(t *testing.T) {
	c := New().Add(line("v-6ft", 2499, 2))

	assert.False(t, c.QualifiesForFreeShipping(5000))
	assert.True(t, c.QualifiesForFreeShipping(4998))
	assert.True(t, c.QualifiesForFreeShipping(4000))
}

func TestNormalizeLine(t *testing.T) {
	_, err := NormalizeLine(Line{VariantID: "  ", UnitPrice: 100, Quantity: 1})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCartLine)

	_, err = NormalizeLine(Line{VariantID: "v-6ft", UnitPrice: -1, Quantity: 1})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCartLine)

	_, err = NormalizeLine(Line{VariantID: "v-6ft", UnitPrice: 100, Quantity: -2})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCartLine)

	got, err := NormalizeLine(Line{VariantID: "v-6ft", UnitPrice: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity, "zero quantity normalizes to one")
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "0.00", FormatMinorUnits(0))
	assert.Equal(t, "0.05", FormatMinorUnits(5))
	assert.Equal(t, "24.99", FormatMinorUnits(2499))
	assert.Equal(t, "-3.50", FormatMinorUnits(-350))
}
