package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avetisov/storefront-service/internal/application/ports"
	"github.com/avetisov/storefront-service/internal/domain/catalog"
	domainErrors "github.com/avetisov/storefront-service/internal/domain/errors"
	"github.com/avetisov/storefront-service/internal/infrastructure/http/response"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

type AdminHandler struct {
	product     *catalog.Product
	catalogRepo ports.CatalogRepository
	log         *logger.Logger
}

func NewAdminHandler(product *catalog.Product, catalogRepo ports.CatalogRepository, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		product:     product,
		catalogRepo: catalogRepo,
		log:         log,
	}
}

type CreateCampaignRequest struct {
	StartsAt string `json:"starts_at,omitempty"`
	EndsAt   string `json:"ends_at"`
}

type CreateCampaignResponse struct {
	ID       string `json:"id"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

func (h *AdminHandler) HandleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	var req CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	validationErrors := make(map[string]string)

	var startsAt, endsAt time.Time
	var err error

	if req.StartsAt != "" {
		startsAt, err = time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			validationErrors["starts_at"] = "Invalid starts_at time format (use RFC3339)"
		}
	} else {
		startsAt = time.Now().UTC()
	}

	if req.EndsAt == "" {
		validationErrors["ends_at"] = "ends_at is required"
	} else {
		endsAt, err = time.Parse(time.RFC3339, req.EndsAt)
		if err != nil {
			validationErrors["ends_at"] = "Invalid ends_at time format (use RFC3339)"
		}
	}

	if !startsAt.IsZero() && !endsAt.IsZero() && !startsAt.Before(endsAt) {
		validationErrors["starts_at"] = "starts_at must be before ends_at"
	}

	if len(validationErrors) > 0 {
		response.WriteValidationError(w, "Validation failed", validationErrors)
		return
	}

	active, err := h.catalogRepo.GetActiveCampaign(ctx)
	if err != nil && !errors.Is(err, domainErrors.ErrCampaignNotFound) {
		h.log.Error("Failed to check active campaign", "error", err.Error())
		response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Failed to check active campaign", err.Error())
		return
	}
	if active != nil {
		response.WriteError(w, http.StatusConflict, response.StatusConflict, "Cannot create campaign", "A campaign is currently active. Wait until it ends before creating a new one.")
		return
	}

	campaign, err := catalog.NewCampaign(uuid.New().String(), h.product.ID, startsAt, endsAt)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid campaign", err.Error())
		return
	}

	if err := h.catalogRepo.CreateCampaign(ctx, campaign); err != nil {
		h.log.Error("Failed to create campaign", "error", err.Error())
		response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Failed to create campaign", err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, CreateCampaignResponse{
		ID:       campaign.ID,
		StartsAt: campaign.StartsAt.Format(time.RFC3339),
		EndsAt:   campaign.EndsAt.Format(time.RFC3339),
	})
}
