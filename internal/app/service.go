package app

import (
	"context"

	"bizdesk/internal/core"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI, Web)
// call. It decouples presentation from business logic. Implementations must
// contain no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// AssistantQuery routes a free-text query: classify, run the matching
	// interpretation flow, and return a tagged result. Drafts and status
	// changes are proposals only — nothing is persisted until the caller
	// applies them explicitly.
	AssistantQuery(ctx context.Context, text, businessCode string) (*AssistantResult, error)

	// ExtractEmployeeDraft runs the employee-extraction flow directly on text.
	ExtractEmployeeDraft(ctx context.Context, text, businessCode string) (*EmployeeDraftResult, error)

	// ApplyEmployeeDraft persists a successful draft as a new employee record.
	// Must only be called after explicit user approval.
	ApplyEmployeeDraft(ctx context.Context, businessCode string, draft EmployeeDraftInput) (*EmployeeResult, error)

	// SuggestAppointment proposes a slot for the stated preferences, taking
	// the business's upcoming appointments into account.
	SuggestAppointment(ctx context.Context, businessCode, preferences string) (*AppointmentSuggestionResult, error)

	// SendInvoiceEmail simulates emailing an invoice to its customer and
	// returns the composed receipt. No real mail is sent.
	SendInvoiceEmail(ctx context.Context, businessCode, invoiceNumber string) (*EmailReceiptResult, error)

	// ListEmployees returns all active employees for a business.
	ListEmployees(ctx context.Context, businessCode string) (*EmployeeListResult, error)

	// CreateEmployee creates a new employee record.
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResult, error)

	// UpdateEmployee overwrites an employee's mutable fields.
	UpdateEmployee(ctx context.Context, businessCode string, employeeID int, req CreateEmployeeRequest) (*EmployeeResult, error)

	// DeactivateEmployee marks an employee inactive.
	DeactivateEmployee(ctx context.Context, businessCode string, employeeID int) error

	// ListInvoices returns invoices, optionally filtered by status.
	ListInvoices(ctx context.Context, businessCode, status string) (*InvoiceListResult, error)

	// GetInvoice returns a single invoice by its number.
	GetInvoice(ctx context.Context, businessCode, invoiceNumber string) (*InvoiceResult, error)

	// CreateInvoice creates a new Draft invoice with an assigned number.
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResult, error)

	// SetInvoiceStatus transitions an invoice to one of the closed statuses.
	SetInvoiceStatus(ctx context.Context, businessCode, invoiceNumber, status string) (*InvoiceResult, error)

	// ListAppointments returns upcoming scheduled appointments.
	ListAppointments(ctx context.Context, businessCode string) (*AppointmentListResult, error)

	// CreateAppointment schedules a new appointment.
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResult, error)

	// CancelAppointment marks an appointment cancelled.
	CancelAppointment(ctx context.Context, businessCode string, appointmentID int) error

	// RecordTransaction records a revenue or expense entry.
	RecordTransaction(ctx context.Context, req RecordTransactionRequest) (*TransactionResult, error)

	// ListTransactions returns entries within the optional date range.
	ListTransactions(ctx context.Context, businessCode, fromDate, toDate string) (*TransactionListResult, error)

	// GetDashboard returns the dashboard snapshot for a business.
	GetDashboard(ctx context.Context, businessCode string) (*DashboardResult, error)

	// LoadDefaultBusiness loads the active business. Uses BUSINESS_CODE env
	// var if set; otherwise expects exactly one business in the database.
	LoadDefaultBusiness(ctx context.Context) (*core.Business, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error)

	// GetUser returns user profile by ID.
	GetUser(ctx context.Context, userID int) (*UserResult, error)
}
