package commands

import (
	"context"
	"time"

	"github.com/avetisov/storefront-service/internal/application/ports"
	"github.com/avetisov/storefront-service/internal/domain/cart"
	"github.com/avetisov/storefront-service/internal/domain/catalog"
	"github.com/avetisov/storefront-service/internal/domain/checkout"
	"github.com/avetisov/storefront-service/internal/domain/errors"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

type CheckoutCommand struct {
	SessionToken string
}

type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
	State       string `json:"state"`
	Appended    bool   `json:"appended"`
	LineCount   int    `json:"line_count"`
}

// CheckoutHandler is the session bridge: it translates the local cart into
// the platform's line-item format and either creates a session or appends
// to the one already recorded for this token. The state machine is
// Idle -> Submitting -> {Redirecting | Failed}; Submitting is enforced by a
// store-side lock so a re-entrant attempt cannot create a second session.
type CheckoutHandler struct {
	product      *catalog.Product
	cartStore    ports.CartStore
	sessionStore ports.SessionStore
	attemptLog   ports.AttemptLog
	gateway      ports.CommerceGateway
	tracker      ports.AnalyticsTracker
	log          *logger.Logger
	lockTTL      time.Duration
	sessionTTL   time.Duration
}

func NewCheckoutHandler(
	product *catalog.Product,
	cartStore ports.CartStore,
	sessionStore ports.SessionStore,
	attemptLog ports.AttemptLog,
	gateway ports.CommerceGateway,
	tracker ports.AnalyticsTracker,
	log *logger.Logger,
	lockTTL time.Duration,
	sessionTTL time.Duration,
) *CheckoutHandler {
	return &CheckoutHandler{
		product:      product,
		cartStore:    cartStore,
		sessionStore: sessionStore,
		attemptLog:   attemptLog,
		gateway:      gateway,
		tracker:      tracker,
		log:          log,
		lockTTL:      lockTTL,
		sessionTTL:   sessionTTL,
	}
}

func (h *CheckoutHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*CheckoutResponse, error) {
	log := h.log.WithSessionToken(cmd.SessionToken)

	currentCart, err := h.cartStore.GetCart(ctx, cmd.SessionToken)
	if err != nil {
		log.Error("Failed to load cart", "error", err)
		return nil, err
	}

	// Configuration errors surface here, before the lock and before any
	// network traffic.
	lines, err := checkout.TranslateLines(currentCart, h.product)
	if err != nil {
		h.recordAttempt(ctx, cmd.SessionToken, "", checkout.StateFailed, err, currentCart)
		return nil, err
	}

	locked, err := h.sessionStore.AcquireCheckoutLock(ctx, cmd.SessionToken, h.lockTTL)
	if err != nil {
		log.Error("Failed to acquire checkout lock", "error", err)
		return nil, err
	}
	if !locked {
		return nil, errors.ErrCheckoutInProgress
	}
	defer func() {
		if err := h.sessionStore.ReleaseCheckoutLock(ctx, cmd.SessionToken); err != nil {
			log.Error("Failed to release checkout lock", "error", err)
		}
	}()

	sessionID, err := h.sessionStore.GetSessionID(ctx, cmd.SessionToken)
	if err != nil {
		log.Error("Failed to read checkout session id", "error", err)
		return nil, err
	}

	var session *checkout.Session
	created := sessionID == ""
	if created {
		session, err = h.gateway.CreateCartSession(ctx, lines)
	} else {
		session, err = h.gateway.AddLinesToSession(ctx, sessionID, lines)
	}
	if err != nil {
		// Cart state stays exactly as it was; recovery is user-initiated.
		log.Error("Checkout session call failed", "error", err, "session_id", sessionID)
		h.recordAttempt(ctx, cmd.SessionToken, sessionID, checkout.StateFailed, err, currentCart)
		return nil, err
	}

	if created {
		if err := h.sessionStore.SetSessionID(ctx, cmd.SessionToken, session.ID, h.sessionTTL); err != nil {
			// The session exists remotely; losing the id only means the
			// next attempt creates a fresh one.
			log.Warn("Failed to persist checkout session id", "error", err, "session_id", session.ID)
		}
	}

	h.recordAttempt(ctx, cmd.SessionToken, session.ID, checkout.StateRedirecting, nil, currentCart)

	h.tracker.Track(ctx, ports.AnalyticsEvent{
		Name:         ports.EventBeginCheckout,
		SessionToken: cmd.SessionToken,
		Fields: map[string]interface{}{
			"session_id": session.ID,
			"value":      cart.FormatMinorUnits(currentCart.Subtotal()),
			"currency":   h.product.Currency,
			"items":      currentCart.TotalQuantity(),
		},
	})

	log.Info("Checkout session ready",
		"session_id", session.ID,
		"appended", !created,
		"line_count", len(lines),
	)

	return &CheckoutResponse{
		SessionID:   session.ID,
		RedirectURL: session.CheckoutURL,
		State:       string(checkout.StateRedirecting),
		Appended:    !created,
		LineCount:   len(lines),
	}, nil
}

func (h *CheckoutHandler) recordAttempt(ctx context.Context, token, sessionID string, state checkout.AttemptState, cause error, c cart.Cart) {
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}

	err := h.attemptLog.LogAttempt(ctx, ports.CheckoutAttempt{
		SessionToken: token,
		SessionID:    sessionID,
		State:        state,
		FailReason:   reason,
		LineCount:    len(c.Lines),
	})
	if err != nil {
		h.log.Error("Failed to log checkout attempt", "error", err, "session_token", token)
	}
}
