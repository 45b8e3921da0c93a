// Package analytics ships page events to an external collector. Tracking is
// best effort: a missing collector or a failed delivery never affects the
// request that produced the event.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avetisov/storefront-service/internal/application/ports"
	"github.com/avetisov/storefront-service/internal/config"
	"github.com/avetisov/storefront-service/internal/infrastructure/monitoring"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

const deliveryTimeout = 2 * time.Second

type HTTPTracker struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	log        *logger.Logger
}

func NewHTTPTracker(cfg config.AnalyticsConfig, log *logger.Logger) *HTTPTracker {
	return &HTTPTracker{
		httpClient: &http.Client{Timeout: deliveryTimeout},
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		log:        log,
	}
}

type eventPayload struct {
	EventID      string                 `json:"event_id"`
	Name         string                 `json:"name"`
	SessionToken string                 `json:"session_token,omitempty"`
	Timestamp    string                 `json:"timestamp"`
	Fields       map[string]interface{} `json:"fields,omitempty"`
}

func (t *HTTPTracker) Track(ctx context.Context, event ports.AnalyticsEvent) {
	if t.endpoint == "" {
		monitoring.RecordAnalyticsDropped("not_configured")
		return
	}

	payload := eventPayload{
		EventID:      uuid.New().String(),
		Name:         event.Name,
		SessionToken: event.SessionToken,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Fields:       event.Fields,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		monitoring.RecordAnalyticsDropped("encode_error")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		monitoring.RecordAnalyticsDropped("request_error")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.log.Warn("Analytics delivery failed", "event", event.Name, "error", err.Error())
		monitoring.RecordAnalyticsDropped("delivery_error")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		t.log.Warn("Analytics collector rejected event", "event", event.Name, "status", resp.StatusCode)
		monitoring.RecordAnalyticsDropped("collector_rejected")
		return
	}

	monitoring.RecordAnalyticsEvent(event.Name)
}
