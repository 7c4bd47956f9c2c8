package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"randevu/internal/catalog"
	"randevu/internal/config"
	"randevu/internal/domain"
	"randevu/internal/models"
	"randevu/internal/service"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Server is the JSON API the website frontend talks to: availability,
// appointment submission, the service catalog, and the operator's OAuth
// connect flow.
type Server struct {
	cfg          config.ServerConfig
	availability *service.AvailabilityService
	booking      *service.BookingService
	auth         domain.Authorizer
	catalog      *catalog.Catalog
	logger       *zerolog.Logger
	server       *http.Server
	limiter      *clientLimiter
}

func NewServer(
	cfg config.ServerConfig,
	availability *service.AvailabilityService,
	booking *service.BookingService,
	auth domain.Authorizer,
	cat *catalog.Catalog,
	logger *zerolog.Logger,
) *Server {
	s := &Server{
		cfg:          cfg,
		availability: availability,
		booking:      booking,
		auth:         auth,
		catalog:      cat,
		logger:       logger,
		limiter:      newClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/availability", s.handleAvailability)
	mux.HandleFunc("/api/v1/appointments", s.handleAppointments)
	mux.HandleFunc("/api/v1/services", s.handleServices)
	mux.HandleFunc("/api/v1/auth/google", s.handleAuthRedirect)
	mux.HandleFunc("/api/v1/auth/google/callback", s.handleAuthCallback)
	mux.HandleFunc("/api/v1/admin/status", s.handleAdminStatus)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})

	handler := c.Handler(s.loggingMiddleware(s.limiter.wrap(mux)))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// adminURL is where the OAuth callback redirects the operator.
func (s *Server) adminURL() string {
	if s.cfg.AdminURL != "" {
		return s.cfg.AdminURL
	}
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/admin"
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message, "code": code})
}

// writeServiceError maps the error taxonomy onto HTTP statuses: validation
// 400, slot conflict 409, calendar not connected 503, anything else 500
// without leaking upstream detail.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Code, verr.Message)
	case errors.Is(err, models.ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_taken", "Seçilen saat dolu.")
	case errors.Is(err, models.ErrCalendarNotConnected):
		writeError(w, http.StatusServiceUnavailable, "calendar_not_connected",
			"Google Takvim bağlı değil. /admin üzerinden bağlayın.")
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "server_error", "Sunucu hatası.")
	}
}
