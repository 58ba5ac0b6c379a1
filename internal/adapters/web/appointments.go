package web

import (
	"net/http"
	"strconv"
	"time"

	"bizdesk/internal/app"

	"github.com/go-chi/chi/v5"
)

type appointmentRequest struct {
	Title    string    `json:"title"`
	WithWhom string    `json:"with_whom"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Location string    `json:"location"`
	Notes    string    `json:"notes"`
}

type suggestRequest struct {
	Preferences string `json:"preferences"`
}

// apiListAppointments handles GET /api/businesses/{code}/appointments.
func (h *Handler) apiListAppointments(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	result, err := h.svc.ListAppointments(r.Context(), code)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// apiCreateAppointment handles POST /api/businesses/{code}/appointments.
func (h *Handler) apiCreateAppointment(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	var req appointmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateAppointment(r.Context(), app.CreateAppointmentRequest{
		BusinessCode: code,
		Title:        req.Title,
		WithWhom:     req.WithWhom,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Location:     req.Location,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, r, err.Error(), "VALIDATION_ERROR", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}

// apiCancelAppointment handles POST /api/businesses/{code}/appointments/{id}/cancel.
func (h *Handler) apiCancelAppointment(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid appointment id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.CancelAppointment(r.Context(), code, id); err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

// apiSuggestAppointment handles POST /api/businesses/{code}/appointments/suggest.
func (h *Handler) apiSuggestAppointment(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	var req suggestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.SuggestAppointment(r.Context(), code, req.Preferences)
	if err != nil {
		writeError(w, r, err.Error(), "AI_ERROR", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}
