package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrVariantOutOfStock = errors.New("variant is out of stock")

	// ErrVariantNotMapped is the configuration error: a variant has no
	// merchandise identifier on the external platform, so no session can
	// ever include it. Raised before any network call is made.
	ErrVariantNotMapped = errors.New("variant has no merchandise mapping")

	ErrInvalidCartLine = errors.New("invalid cart line")
	ErrCartEmpty       = errors.New("cart is empty")

	ErrCampaignNotFound = errors.New("no active campaign")

	ErrCheckoutInProgress  = errors.New("checkout already in progress for this session")
	ErrPlatformUnavailable = errors.New("commerce platform request failed")
)

// ValidationError carries the field-level errors returned by the commerce
// platform for a session create/append call.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "platform rejected the request"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "platform rejected the request: " + strings.Join(parts, "; ")
}
