package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"randevu/internal/catalog"
	"randevu/internal/metrics"
	"randevu/internal/models"

	"github.com/google/uuid"
)

type availabilityRequest struct {
	ServiceKey  string   `json:"serviceKey,omitempty"`
	ServiceKeys []string `json:"serviceKeys,omitempty"`
	DateISO     string   `json:"dateISO"`
}

type appointmentRequest struct {
	ServiceKey  string   `json:"serviceKey,omitempty"`
	ServiceKeys []string `json:"serviceKeys,omitempty"`
	DateISO     string   `json:"dateISO"`
	TimeHHMM    string   `json:"timeHHMM"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
}

// serviceKeys accepts both the multi-select field and the older
// single-service field the frontend still sends.
func serviceKeys(single string, multi []string) []string {
	if len(multi) > 0 {
		return multi
	}
	if single != "" {
		return []string{single}
	}
	return nil
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var body availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	slots, err := s.availability.Slots(r.Context(), serviceKeys(body.ServiceKey, body.ServiceKeys), body.DateISO)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	metrics.AddSlotsOffered(len(slots))
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (s *Server) handleAppointments(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("appointments")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var body appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	req := models.AppointmentRequest{
		ServiceKeys: serviceKeys(body.ServiceKey, body.ServiceKeys),
		DateISO:     body.DateISO,
		TimeHHMM:    body.TimeHHMM,
		Name:        body.Name,
		Phone:       body.Phone,
	}

	eventID, err := s.booking.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSlotTaken):
			metrics.IncBooking("conflict")
		case errors.Is(err, models.ErrCalendarNotConnected):
			metrics.IncBooking("not_connected")
		default:
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				metrics.IncBooking("rejected")
			} else {
				metrics.IncBooking("error")
			}
		}
		s.writeServiceError(w, r, err)
		return
	}

	metrics.IncBooking("created")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "eventId": eventID})
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("services")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	services := s.catalog.List()
	out := make([]map[string]any, 0, len(services))
	for _, svc := range services {
		out = append(out, map[string]any{
			"key":         svc.Key,
			"title":       svc.Title,
			"description": svc.Description,
			"durationMin": svc.DurationMin,
			"price":       catalog.FormatPrice(svc),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"services": out})
}

const stateCookie = "oauth_state"

func (s *Server) handleAuthRedirect(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("auth")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/api/v1/auth",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, s.auth.AuthURL(state), http.StatusFound)
}

func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("auth_callback")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	redirect := func(connected bool, errCode string) {
		target := s.adminURL()
		if connected {
			target += "?connected=1"
		} else {
			target += "?connected=0&error=" + url.QueryEscape(errCode)
		}
		http.Redirect(w, r, target, http.StatusFound)
	}

	query := r.URL.Query()
	if errParam := query.Get("error"); errParam != "" {
		redirect(false, errParam)
		return
	}

	code := query.Get("code")
	if code == "" {
		redirect(false, "missing_code")
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		redirect(false, "state_mismatch")
		return
	}

	if err := s.auth.Exchange(r.Context(), code); err != nil {
		s.logger.Error().Err(err).Msg("oauth callback exchange failed")
		redirect(false, "token_exchange_failed")
		return
	}

	redirect(true, "")
}

func (s *Server) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_status")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"connected": s.auth.Connected(r.Context())})
}
