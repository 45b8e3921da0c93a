package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/avetisov/storefront-service/internal/infrastructure/http/middleware"
	"github.com/avetisov/storefront-service/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	monitoring.RegisterMetricsEndpoint(mux)

	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/product", s.productHandler.HandleGetProduct)
	mux.HandleFunc("/cart", s.handleCartRoot)
	mux.HandleFunc("/cart/lines", s.handleCartLines)
	mux.HandleFunc("/cart/lines/", s.handleCartLineRoutes)
	mux.HandleFunc("/checkout", s.checkoutHandler.HandleCheckout())
	mux.HandleFunc("/admin/campaigns", s.adminHandler.HandleCreateCampaign)

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) handleCartRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.cartHandler.HandleGetCart(w, r)
}

func (s *Server) handleCartLines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.cartHandler.HandleAddLine(w, r)
}

func (s *Server) handleCartLineRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/cart/lines/")
	parts := strings.Split(path, "/")

	if len(parts) == 1 && parts[0] == "quantity" {
		if r.Method == http.MethodPost {
			s.cartHandler.HandleChangeQuantity(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if len(parts) == 1 && parts[0] != "" {
		if r.Method == http.MethodDelete {
			s.cartHandler.HandleRemoveLine(w, r, parts[0])
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	http.NotFound(w, r)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Cart-Session")
		w.Header().Set("Access-Control-Expose-Headers", "X-Cart-Session")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 90*time.Second, "Request timeout")
}
