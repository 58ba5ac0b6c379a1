package web

import (
	"net/http"

	"bizdesk/internal/app"

	"github.com/shopspring/decimal"
)

type transactionRequest struct {
	Kind        string          `json:"kind"` // "revenue" or "expense"
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	EntryDate   string          `json:"entry_date"` // YYYY-MM-DD
}

// apiDashboard handles GET /api/businesses/{code}/dashboard.
func (h *Handler) apiDashboard(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	result, err := h.svc.GetDashboard(r.Context(), code)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// apiListTransactions handles GET /api/businesses/{code}/transactions?from=...&to=...
func (h *Handler) apiListTransactions(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	result, err := h.svc.ListTransactions(r.Context(), code,
		r.URL.Query().Get("from"),
		r.URL.Query().Get("to"),
	)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// apiRecordTransaction handles POST /api/businesses/{code}/transactions.
func (h *Handler) apiRecordTransaction(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	var req transactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.RecordTransaction(r.Context(), app.RecordTransactionRequest{
		BusinessCode: code,
		Kind:         req.Kind,
		Category:     req.Category,
		Description:  req.Description,
		Amount:       req.Amount,
		EntryDate:    req.EntryDate,
	})
	if err != nil {
		writeError(w, r, err.Error(), "VALIDATION_ERROR", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}
