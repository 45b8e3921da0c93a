package checkout

import (
	"fmt"

	"github.com/avetisov/storefront-service/internal/domain/cart"
	"github.com/avetisov/storefront-service/internal/domain/catalog"
	"github.com/avetisov/storefront-service/internal/domain/errors"
)

// TranslateLines maps local cart lines to the platform's line-item format
// via each variant's merchandise identifier. A missing mapping is a
// configuration error; callers must surface it before any network call.
func TranslateLines(c cart.Cart, product *catalog.Product) ([]LineInput, error) {
	if c.IsEmpty() {
		return nil, errors.ErrCartEmpty
	}

	inputs := make([]LineInput, 0, len(c.Lines))
	for _, line := range c.Lines {
		variant, ok := product.FindVariant(line.VariantID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", errors.ErrVariantNotFound, line.VariantID)
		}
		if !variant.HasMerchandiseMapping() {
			return nil, fmt.Errorf("%w: %s", errors.ErrVariantNotMapped, line.VariantID)
		}

		inputs = append(inputs, LineInput{
			MerchandiseID: variant.MerchandiseID,
			Quantity:      line.Quantity,
		})
	}

	return inputs, nil
}
