package ports

import "context"

const (
	EventAddToCart     = "add_to_cart"
	EventBeginCheckout = "begin_checkout"
)

type AnalyticsEvent struct {
	Name         string
	SessionToken string
	Fields       map[string]interface{}
}

// AnalyticsTracker mirrors the page's optional tracking pixels: Track never
// returns an error and must be inert when no collector is configured.
type AnalyticsTracker interface {
	Track(ctx context.Context, event AnalyticsEvent)
}
