package handlers

import (
	"errors"
	"net/http"

	"github.com/avetisov/storefront-service/internal/application/commands"
	domainErrors "github.com/avetisov/storefront-service/internal/domain/errors"
	"github.com/avetisov/storefront-service/internal/infrastructure/http/response"
	"github.com/avetisov/storefront-service/internal/infrastructure/monitoring"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

type CheckoutHandler struct {
	checkoutHandler *commands.CheckoutHandler
	log             *logger.Logger
}

func NewCheckoutHandler(checkoutHandler *commands.CheckoutHandler, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutHandler: checkoutHandler,
		log:             log,
	}
}

func (h *CheckoutHandler) HandleCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		token := r.Header.Get(SessionHeader)
		if token == "" {
			response.WriteValidationError(w, "Validation failed", map[string]string{
				"session": "missing " + SessionHeader + " header",
			})
			return
		}
		w.Header().Set(SessionHeader, token)

		monitoring.RecordCheckoutAttempt()

		resp, err := h.checkoutHandler.Handle(r.Context(), commands.CheckoutCommand{
			SessionToken: token,
		})
		if err != nil {
			h.log.Error("Checkout failed",
				"session_token", token,
				"error", err.Error(),
			)
			monitoring.RecordCheckoutFailure(failureReason(err))
			response.WriteDomainError(w, err)
			return
		}

		h.log.Info("Checkout redirecting",
			"session_token", token,
			"session_id", resp.SessionID,
			"appended", resp.Appended,
		)
		monitoring.RecordCheckoutSuccess(resp.Appended, resp.LineCount)
		response.WriteSuccess(w, resp)
	}
}

func failureReason(err error) string {
	var validationErr *domainErrors.ValidationError
	switch {
	case errors.Is(err, domainErrors.ErrVariantNotMapped):
		return "unmapped_variant"
	case errors.Is(err, domainErrors.ErrVariantNotFound):
		return "unknown_variant"
	case errors.Is(err, domainErrors.ErrCartEmpty):
		return "empty_cart"
	case errors.Is(err, domainErrors.ErrCheckoutInProgress):
		return "in_progress"
	case errors.Is(err, domainErrors.ErrPlatformUnavailable):
		return "platform_unavailable"
	case errors.As(err, &validationErr):
		return "platform_rejected"
	default:
		return "internal"
	}
}
