package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/avetisov/storefront-service/internal/application/ports"
	"github.com/avetisov/storefront-service/internal/domain/cart"
	"github.com/avetisov/storefront-service/internal/domain/catalog"
	domainErrors "github.com/avetisov/storefront-service/internal/domain/errors"
	"github.com/avetisov/storefront-service/internal/infrastructure/http/response"
	"github.com/avetisov/storefront-service/internal/infrastructure/seo"
	"github.com/avetisov/storefront-service/internal/pkg/clock"
	"github.com/avetisov/storefront-service/internal/pkg/countdown"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

// ProductHandler serves the single storefront page payload: product data,
// the campaign countdown, structured data and preview metadata in one
// response.
type ProductHandler struct {
	product     *catalog.Product
	catalogRepo ports.CatalogRepository
	clk         clock.Clock
	log         *logger.Logger
}

func NewProductHandler(
	product *catalog.Product,
	catalogRepo ports.CatalogRepository,
	clk clock.Clock,
	log *logger.Logger,
) *ProductHandler {
	return &ProductHandler{
		product:     product,
		catalogRepo: catalogRepo,
		clk:         clk,
		log:         log,
	}
}

type VariantView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Available bool   `json:"available"`
}

type ProductView struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Brand             string        `json:"brand,omitempty"`
	Media             []string      `json:"media"`
	Price             string        `json:"price"`
	CompareAtPrice    string        `json:"compare_at_price,omitempty"`
	Currency          string        `json:"currency"`
	RatingValue       float64       `json:"rating_value,omitempty"`
	RatingCount       int           `json:"rating_count,omitempty"`
	ShippingThreshold string        `json:"free_shipping_threshold"`
	Variants          []VariantView `json:"variants"`
}

type CountdownView struct {
	CutoffAt         string `json:"cutoff_at"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	Display          string `json:"display"`
	Expired          bool   `json:"expired"`
}

type ProductPageResponse struct {
	Product        ProductView            `json:"product"`
	Countdown      *CountdownView         `json:"countdown,omitempty"`
	StructuredData map[string]interface{} `json:"structured_data"`
	Metadata       seo.PageMetadata       `json:"metadata"`
}

func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	variants := make([]VariantView, 0, len(h.product.Variants))
	for _, v := range h.product.Variants {
		variants = append(variants, VariantView{
			ID:        v.ID,
			Name:      v.Name,
			Price:     cart.FormatMinorUnits(v.UnitPrice),
			Available: v.InStock(),
		})
	}

	view := ProductView{
		ID:                h.product.ID,
		Title:             h.product.Title,
		Description:       h.product.Description,
		Brand:             h.product.Brand,
		Media:             h.product.Media,
		Price:             cart.FormatMinorUnits(h.product.Price),
		Currency:          h.product.Currency,
		RatingValue:       h.product.RatingValue,
		RatingCount:       h.product.RatingCount,
		ShippingThreshold: cart.FormatMinorUnits(h.product.ShippingThreshold),
		Variants:          variants,
	}
	if h.product.CompareAtPrice > 0 {
		view.CompareAtPrice = cart.FormatMinorUnits(h.product.CompareAtPrice)
	}

	resp := ProductPageResponse{
		Product:        view,
		Countdown:      h.buildCountdown(r),
		StructuredData: seo.BuildProductJSONLD(h.product),
		Metadata:       seo.BuildPageMetadata(h.product),
	}

	response.WriteSuccess(w, resp)
}

// The page renders without a countdown when no campaign is running; a
// missing campaign is not an error for this endpoint.
func (h *ProductHandler) buildCountdown(r *http.Request) *CountdownView {
	campaign, err := h.catalogRepo.GetActiveCampaign(r.Context())
	if err != nil {
		if !errors.Is(err, domainErrors.ErrCampaignNotFound) {
			h.log.Error("Failed to load active campaign", "error", err.Error())
		}
		return nil
	}

	timer := countdown.NewTimer(campaign.EndsAt, h.clk)
	remaining := timer.Remaining()

	return &CountdownView{
		CutoffAt:         campaign.EndsAt.UTC().Format(time.RFC3339),
		RemainingSeconds: int64(remaining.Seconds()),
		Display:          countdown.Format(remaining),
		Expired:          timer.Expired(),
	}
}
