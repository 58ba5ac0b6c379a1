package app

import "bizdesk/internal/core"

// AssistantResultKind tags what the router produced for a query.
type AssistantResultKind string

const (
	// AssistantKindEmployeeDraft carries an extracted employee draft awaiting
	// explicit user confirmation.
	AssistantKindEmployeeDraft AssistantResultKind = "employee_draft"

	// AssistantKindInvoice carries a fetched invoice ("view details").
	AssistantKindInvoice AssistantResultKind = "invoice"

	// AssistantKindInvoiceStatus carries a proposed status change awaiting
	// explicit user confirmation.
	AssistantKindInvoiceStatus AssistantResultKind = "invoice_status"

	// AssistantKindMessage carries guidance or a failure explanation; there is
	// nothing to confirm or display beyond the message.
	AssistantKindMessage AssistantResultKind = "message"
)

// AssistantResult is the tagged outcome of AssistantQuery.
type AssistantResult struct {
	Kind          AssistantResultKind
	TaskType      core.TaskType
	OriginalQuery string
	Message       string

	Draft   *core.EmployeeDraft // AssistantKindEmployeeDraft
	Intent  *core.InvoiceIntent // AssistantKindInvoiceStatus
	Invoice *core.Invoice       // AssistantKindInvoice
}

// EmployeeDraftResult is returned by ExtractEmployeeDraft.
type EmployeeDraftResult struct {
	Draft *core.EmployeeDraft
}

// EmployeeResult is returned by employee create/update operations.
type EmployeeResult struct {
	Employee *core.Employee
}

// EmployeeListResult is returned by ListEmployees.
type EmployeeListResult struct {
	Employees    []core.Employee
	BusinessCode string
}

// InvoiceResult is returned by single-invoice operations.
type InvoiceResult struct {
	Invoice *core.Invoice
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices     []core.Invoice
	BusinessCode string
}

// AppointmentResult is returned by CreateAppointment.
type AppointmentResult struct {
	Appointment *core.Appointment
}

// AppointmentListResult is returned by ListAppointments.
type AppointmentListResult struct {
	Appointments []core.Appointment
	BusinessCode string
}

// AppointmentSuggestionResult is returned by SuggestAppointment.
type AppointmentSuggestionResult struct {
	Suggestion *core.AppointmentSuggestion
}

// EmailReceiptResult is returned by SendInvoiceEmail.
type EmailReceiptResult struct {
	Receipt *core.EmailReceipt
}

// TransactionResult is returned by RecordTransaction.
type TransactionResult struct {
	Transaction *core.Transaction
}

// TransactionListResult is returned by ListTransactions.
type TransactionListResult struct {
	Transactions []core.Transaction
	BusinessCode string
}

// DashboardResult is returned by GetDashboard.
type DashboardResult struct {
	Report *core.DashboardReport
}

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID       int    `json:"user_id"`
	BusinessID   int    `json:"business_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	BusinessCode string `json:"business_code"`
}

// UserResult is returned by GetUser.
type UserResult struct {
	Username     string
	Role         string
	BusinessCode string
}
