package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avetisov/storefront-service/internal/application/commands"
	"github.com/avetisov/storefront-service/internal/infrastructure/http/response"
	"github.com/avetisov/storefront-service/internal/infrastructure/monitoring"
	"github.com/avetisov/storefront-service/internal/pkg/generator"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

// SessionHeader carries the opaque token that scopes a cart. The server
// issues one on first contact and echoes it on every cart response so the
// client can persist it.
const SessionHeader = "X-Cart-Session"

type CartHandler struct {
	cartHandler *commands.CartHandler
	tokenGen    *generator.TokenGenerator
	log         *logger.Logger
}

func NewCartHandler(cartHandler *commands.CartHandler, tokenGen *generator.TokenGenerator, log *logger.Logger) *CartHandler {
	return &CartHandler{
		cartHandler: cartHandler,
		tokenGen:    tokenGen,
		log:         log,
	}
}

type AddLineRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type ChangeQuantityRequest struct {
	VariantID string `json:"variant_id"`
	Delta     int    `json:"delta"`
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(w, r)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Failed to issue session token", err.Error())
		return
	}

	snapshot, err := h.cartHandler.HandleGet(r.Context(), token)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, snapshot)
}

func (h *CartHandler) HandleAddLine(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(w, r)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Failed to issue session token", err.Error())
		return
	}

	var req AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	validationErrors := make(map[string]string)
	if req.VariantID == "" {
		validationErrors["variant_id"] = "variant_id is required"
	}
	if req.Quantity < 0 {
		validationErrors["quantity"] = "quantity cannot be negative"
	}
	if len(validationErrors) > 0 {
		response.WriteValidationError(w, "Validation failed", validationErrors)
		return
	}

	snapshot, err := h.cartHandler.HandleAdd(r.Context(), commands.AddToCartCommand{
		SessionToken: token,
		VariantID:    req.VariantID,
		Quantity:     req.Quantity,
	})
	if err != nil {
		h.log.Warn("Add to cart failed", "variant_id", req.VariantID, "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	monitoring.RecordCartOperation("add")
	response.WriteSuccess(w, snapshot)
}

func (h *CartHandler) HandleChangeQuantity(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionToken(w, r)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Failed to issue session token", err.Error())
		return
	}

	var req ChangeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	validationErrors := make(map[string]string)
	if req.VariantID == "" {
		validationErrors["variant_id"] = "variant_id is required"
	}
	if req.Delta == 0 {
		validationErrors["delta"] = "delta cannot be zero"
	}
	if len(validationErrors) > 0 {
		response.WriteValidationError(w, "Validation failed", validationErrors)
		return
	}

	snapshot, err := h.cartHandler.HandleChangeQuantity(r.Context(), commands.ChangeQuantityCommand{
		SessionToken: token,
		VariantID:    req.VariantID,
		Delta:        req.Delta,
	})
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	monitoring.RecordCartOperation("change_quantity")
	response.WriteSuccess(w, snapshot)
}

func (h *CartHandler) HandleRemoveLine(w http.ResponseWriter, r *http.Request, variantID string) {
	token, err := h.sessionToken(w, r)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Failed to issue session token", err.Error())
		return
	}

	if variantID == "" {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"variant_id": "variant_id is required",
		})
		return
	}

	snapshot, err := h.cartHandler.HandleRemove(r.Context(), commands.RemoveLineCommand{
		SessionToken: token,
		VariantID:    variantID,
	})
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	monitoring.RecordCartOperation("remove")
	response.WriteSuccess(w, snapshot)
}

// sessionToken reads the client's token or issues a fresh one, and always
// echoes the token back on the response.
func (h *CartHandler) sessionToken(w http.ResponseWriter, r *http.Request) (string, error) {
	token := r.Header.Get(SessionHeader)
	if token == "" {
		fresh, err := h.tokenGen.GenerateSessionToken()
		if err != nil {
			return "", err
		}
		token = fresh
	}

	w.Header().Set(SessionHeader, token)
	return token, nil
}
