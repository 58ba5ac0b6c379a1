package web

import (
	"net/http"

	"bizdesk/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type invoiceRequest struct {
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	IssueDate     string          `json:"issue_date"` // YYYY-MM-DD
	DueDate       string          `json:"due_date"`
}

type invoiceStatusRequest struct {
	Status string `json:"status"`
}

// apiListInvoices handles GET /api/businesses/{code}/invoices?status=Sent.
func (h *Handler) apiListInvoices(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	result, err := h.svc.ListInvoices(r.Context(), code, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// apiGetInvoice handles GET /api/businesses/{code}/invoices/{number}.
func (h *Handler) apiGetInvoice(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	result, err := h.svc.GetInvoice(r.Context(), code, chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, result)
}

// apiCreateInvoice handles POST /api/businesses/{code}/invoices.
func (h *Handler) apiCreateInvoice(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	var req invoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateInvoice(r.Context(), app.CreateInvoiceRequest{
		BusinessCode:  code,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Amount:        req.Amount,
		Currency:      req.Currency,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
	})
	if err != nil {
		writeError(w, r, err.Error(), "VALIDATION_ERROR", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}

// apiSetInvoiceStatus handles POST /api/businesses/{code}/invoices/{number}/status.
func (h *Handler) apiSetInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	var req invoiceStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.SetInvoiceStatus(r.Context(), code, chi.URLParam(r, "number"), req.Status)
	if err != nil {
		writeError(w, r, err.Error(), "VALIDATION_ERROR", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}

// apiSendInvoiceEmail handles POST /api/businesses/{code}/invoices/{number}/email.
func (h *Handler) apiSendInvoiceEmail(w http.ResponseWriter, r *http.Request) {
	code := businessCode(r)
	if !h.requireBusinessAccess(w, r, code) {
		return
	}
	result, err := h.svc.SendInvoiceEmail(r.Context(), code, chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, r, err.Error(), "EMAIL_ERROR", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}
