package app

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest is the input for creating or updating an employee.
type CreateEmployeeRequest struct {
	BusinessCode   string
	Name           string
	Email          string
	JobTitle       string
	StartDate      string // YYYY-MM-DD
	EmploymentType string
}

// EmployeeDraftInput carries an approved AI draft into ApplyEmployeeDraft.
type EmployeeDraftInput struct {
	Name           string
	Email          string
	JobTitle       string
	StartDate      string
	EmploymentType string
}

// CreateInvoiceRequest is the input for creating a new invoice.
type CreateInvoiceRequest struct {
	BusinessCode  string
	CustomerName  string
	CustomerEmail string
	Amount        decimal.Decimal
	Currency      string // empty means "use business currency"
	IssueDate     string // YYYY-MM-DD; empty means today
	DueDate       string
}

// CreateAppointmentRequest is the input for scheduling an appointment.
type CreateAppointmentRequest struct {
	BusinessCode string
	Title        string
	WithWhom     string
	StartsAt     time.Time
	EndsAt       time.Time
	Location     string
	Notes        string
}

// RecordTransactionRequest is the input for recording a revenue/expense entry.
type RecordTransactionRequest struct {
	BusinessCode string
	Kind         string // "revenue" or "expense"
	Category     string
	Description  string
	Amount       decimal.Decimal
	EntryDate    string // YYYY-MM-DD; empty means today
}
