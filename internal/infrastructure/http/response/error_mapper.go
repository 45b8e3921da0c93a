package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/avetisov/storefront-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrProductNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Product not found",
	},
	domainErrors.ErrVariantNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Variant not found",
	},
	domainErrors.ErrVariantOutOfStock: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Variant is out of stock",
	},
	domainErrors.ErrVariantNotMapped: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Variant has no checkout mapping",
	},
	domainErrors.ErrInvalidCartLine: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Invalid cart line",
	},
	domainErrors.ErrCartEmpty: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Cart is empty",
	},
	domainErrors.ErrCampaignNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Campaign not found",
	},
	domainErrors.ErrCheckoutInProgress: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Checkout already in progress",
	},
	domainErrors.ErrPlatformUnavailable: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusServiceUnavailable,
		Message:    "Commerce platform unavailable",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		WriteValidationError(w, "Checkout rejected by commerce platform", validationErr.Fields)
		return
	}

	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
