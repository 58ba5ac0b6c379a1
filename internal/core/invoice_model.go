package core

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the closed set of invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "Draft"
	InvoiceStatusSent    InvoiceStatus = "Sent"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
)

// InvoiceStatuses lists all valid statuses in lifecycle order.
var InvoiceStatuses = []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue}

// ValidInvoiceStatus reports whether s matches one of the closed statuses,
// ignoring case. The canonical form is returned on a match.
func ValidInvoiceStatus(s string) (InvoiceStatus, bool) {
	for _, status := range InvoiceStatuses {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, true
		}
	}
	return "", false
}

// Invoice is a customer invoice header. Amounts are exact decimals.
// InvoiceNumber (INV-YYYY-NNNN) is assigned at creation from a gapless
// per-business, per-year sequence.
type Invoice struct {
	ID            int             `json:"id"`
	BusinessID    int             `json:"business_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail *string         `json:"customer_email,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        InvoiceStatus   `json:"status"`
	IssueDate     string          `json:"issue_date"` // YYYY-MM-DD
	DueDate       *string         `json:"due_date,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceInput holds the fields for creating a new invoice.
type InvoiceInput struct {
	CustomerName  string
	CustomerEmail string
	Amount        decimal.Decimal
	Currency      string // empty means "use business currency"
	IssueDate     string // YYYY-MM-DD; empty means today
	DueDate       string // optional
}

// InvoiceService provides invoice master data and status operations.
type InvoiceService interface {
	// CreateInvoice creates a Draft invoice and assigns its invoice number.
	CreateInvoice(ctx context.Context, businessID int, input InvoiceInput) (*Invoice, error)

	// GetInvoices returns invoices for a business, optionally filtered by status.
	GetInvoices(ctx context.Context, businessID int, status *InvoiceStatus) ([]Invoice, error)

	// GetInvoiceByNumber returns an invoice by its number, scoped to the business.
	GetInvoiceByNumber(ctx context.Context, businessID int, invoiceNumber string) (*Invoice, error)

	// SetStatus transitions an invoice to the given status. Moving to Paid
	// stamps paid_at; any other transition clears it.
	SetStatus(ctx context.Context, businessID int, invoiceNumber string, status InvoiceStatus) (*Invoice, error)
}
