package web

import (
	"net/http"
	"strconv"

	"bizdesk/internal/app"

	"github.com/go-chi/chi/v5"
)

type employeeRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	JobTitle       string `json:"job_title"`
	StartDate      string `json:"start_date"` // YYYY-MM-DD
	EmploymentType string `json:"employment_type"`
}

// apiListEmployees handles GET /api/businesses/{code}/employees.
func (h *Handler) apiListEmployees(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	result, err := h.svc.ListEmployees(r.Context(), code)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// apiCreateEmployee handles POST /api/businesses/{code}/employees.
func (h *Handler) apiCreateEmployee(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	var req employeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateEmployee(r.Context(), app.CreateEmployeeRequest{
		BusinessCode:   code,
		Name:           req.Name,
		Email:          req.Email,
		JobTitle:       req.JobTitle,
		StartDate:      req.StartDate,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		writeError(w, r, err.Error(), "VALIDATION_ERROR", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}

// apiUpdateEmployee handles PUT /api/businesses/{code}/employees/{id}.
func (h *Handler) apiUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid employee id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req employeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateEmployee(r.Context(), code, id, app.CreateEmployeeRequest{
		BusinessCode:   code,
		Name:           req.Name,
		Email:          req.Email,
		JobTitle:       req.JobTitle,
		StartDate:      req.StartDate,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		writeError(w, r, err.Error(), "VALIDATION_ERROR", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}

// apiDeactivateEmployee handles POST /api/businesses/{code}/employees/{id}/deactivate.
func (h *Handler) apiDeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid employee id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeactivateEmployee(r.Context(), code, id); err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
