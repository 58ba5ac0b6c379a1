package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"bizdesk/internal/ai"
	"bizdesk/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type appService struct {
	pool         *pgxpool.Pool
	employees    core.EmployeeService
	invoices     core.InvoiceService
	appointments core.AppointmentService
	transactions core.TransactionService
	reporting    core.ReportingService
	users        core.UserService
	assistant    *ai.Assistant
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	pool *pgxpool.Pool,
	employees core.EmployeeService,
	invoices core.InvoiceService,
	appointments core.AppointmentService,
	transactions core.TransactionService,
	reporting core.ReportingService,
	users core.UserService,
	assistant *ai.Assistant,
) ApplicationService {
	return &appService{
		pool:         pool,
		employees:    employees,
		invoices:     invoices,
		appointments: appointments,
		transactions: transactions,
		reporting:    reporting,
		users:        users,
		assistant:    assistant,
	}
}

// AssistantQuery routes a free-text query through the classifier and the
// matching interpretation flow. Results that would mutate records come back
// as proposals; nothing is persisted here.
func (s *appService) AssistantQuery(ctx context.Context, text, businessCode string) (*AssistantResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}

	classification, err := s.assistant.ClassifyTask(ctx, text)
	if err != nil {
		return nil, err
	}

	switch core.TaskType(classification.TaskType) {

	case core.TaskTypeEmployee:
		draft, err := s.assistant.ExtractEmployee(ctx, text, time.Now())
		if err != nil {
			return nil, err
		}
		if !draft.Success {
			return &AssistantResult{
				Kind:          AssistantKindMessage,
				TaskType:      core.TaskTypeEmployee,
				OriginalQuery: classification.OriginalQuery,
				Message:       draft.Message,
			}, nil
		}
		return &AssistantResult{
			Kind:          AssistantKindEmployeeDraft,
			TaskType:      core.TaskTypeEmployee,
			OriginalQuery: classification.OriginalQuery,
			Message:       draft.Message,
			Draft:         draft,
		}, nil

	case core.TaskTypeInvoice:
		intent, err := s.assistant.InterpretInvoiceIntent(ctx, text)
		if err != nil {
			return nil, err
		}
		return s.resolveInvoiceIntent(ctx, businessID, classification.OriginalQuery, intent)

	default:
		return &AssistantResult{
			Kind:          AssistantKindMessage,
			TaskType:      core.TaskTypeUnrecognized,
			OriginalQuery: classification.OriginalQuery,
			Message:       classification.Message,
		}, nil
	}
}

// resolveInvoiceIntent turns a repaired invoice intent into an assistant
// result, fetching the invoice for "view details" and verifying it exists
// before proposing a status change.
func (s *appService) resolveInvoiceIntent(ctx context.Context, businessID int, originalQuery string, intent *core.InvoiceIntent) (*AssistantResult, error) {
	switch core.InvoiceIntentKind(intent.Intent) {

	case core.InvoiceIntentView:
		invoice, err := s.invoices.GetInvoiceByNumber(ctx, businessID, intent.InvoiceNumber)
		if err != nil {
			return &AssistantResult{
				Kind:          AssistantKindMessage,
				TaskType:      core.TaskTypeInvoice,
				OriginalQuery: originalQuery,
				Message:       fmt.Sprintf("Invoice %s was not found.", intent.InvoiceNumber),
			}, nil
		}
		return &AssistantResult{
			Kind:          AssistantKindInvoice,
			TaskType:      core.TaskTypeInvoice,
			OriginalQuery: originalQuery,
			Invoice:       invoice,
		}, nil

	case core.InvoiceIntentUpdateStatus:
		if _, err := s.invoices.GetInvoiceByNumber(ctx, businessID, intent.InvoiceNumber); err != nil {
			return &AssistantResult{
				Kind:          AssistantKindMessage,
				TaskType:      core.TaskTypeInvoice,
				OriginalQuery: originalQuery,
				Message:       fmt.Sprintf("Invoice %s was not found.", intent.InvoiceNumber),
			}, nil
		}
		return &AssistantResult{
			Kind:          AssistantKindInvoiceStatus,
			TaskType:      core.TaskTypeInvoice,
			OriginalQuery: originalQuery,
			Message:       fmt.Sprintf("Set invoice %s to %s?", intent.InvoiceNumber, intent.NewStatus),
			Intent:        intent,
		}, nil

	default:
		return &AssistantResult{
			Kind:          AssistantKindMessage,
			TaskType:      core.TaskTypeInvoice,
			OriginalQuery: originalQuery,
			Message:       intent.Message,
		}, nil
	}
}

// ExtractEmployeeDraft runs the employee-extraction flow directly on text.
func (s *appService) ExtractEmployeeDraft(ctx context.Context, text, businessCode string) (*EmployeeDraftResult, error) {
	if _, err := s.resolveBusinessID(ctx, businessCode); err != nil {
		return nil, err
	}
	draft, err := s.assistant.ExtractEmployee(ctx, text, time.Now())
	if err != nil {
		return nil, err
	}
	return &EmployeeDraftResult{Draft: draft}, nil
}

// ApplyEmployeeDraft persists an approved draft as a new employee record.
func (s *appService) ApplyEmployeeDraft(ctx context.Context, businessCode string, draft EmployeeDraftInput) (*EmployeeResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	employee, err := s.employees.CreateEmployee(ctx, businessID, core.EmployeeInput{
		Name:           draft.Name,
		Email:          draft.Email,
		JobTitle:       draft.JobTitle,
		StartDate:      draft.StartDate,
		EmploymentType: draft.EmploymentType,
	})
	if err != nil {
		return nil, err
	}
	return &EmployeeResult{Employee: employee}, nil
}

// SuggestAppointment proposes a slot, feeding the flow the business's
// upcoming bookings as context.
func (s *appService) SuggestAppointment(ctx context.Context, businessCode, preferences string) (*AppointmentSuggestionResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.appointments.GetUpcoming(ctx, businessID, time.Now(), 20)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming appointments: %w", err)
	}
	suggestion, err := s.assistant.SuggestAppointment(ctx, preferences, formatBookedSlots(upcoming))
	if err != nil {
		return nil, err
	}
	return &AppointmentSuggestionResult{Suggestion: suggestion}, nil
}

// SendInvoiceEmail simulates emailing an invoice to its customer.
func (s *appService) SendInvoiceEmail(ctx context.Context, businessCode, invoiceNumber string) (*EmailReceiptResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoices.GetInvoiceByNumber(ctx, businessID, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice.CustomerEmail == nil || *invoice.CustomerEmail == "" {
		return nil, fmt.Errorf("invoice %s has no customer email on file", invoiceNumber)
	}
	receipt, err := s.assistant.ConfirmInvoiceEmail(ctx, *invoice.CustomerEmail, invoice.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	return &EmailReceiptResult{Receipt: receipt}, nil
}

// ListEmployees returns all active employees for a business.
func (s *appService) ListEmployees(ctx context.Context, businessCode string) (*EmployeeListResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	employees, err := s.employees.GetEmployees(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return &EmployeeListResult{Employees: employees, BusinessCode: businessCode}, nil
}

// CreateEmployee creates a new employee record.
func (s *appService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResult, error) {
	businessID, err := s.resolveBusinessID(ctx, req.BusinessCode)
	if err != nil {
		return nil, err
	}
	employee, err := s.employees.CreateEmployee(ctx, businessID, core.EmployeeInput{
		Name:           req.Name,
		Email:          req.Email,
		JobTitle:       req.JobTitle,
		StartDate:      req.StartDate,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		return nil, err
	}
	return &EmployeeResult{Employee: employee}, nil
}

// UpdateEmployee overwrites an employee's mutable fields.
func (s *appService) UpdateEmployee(ctx context.Context, businessCode string, employeeID int, req CreateEmployeeRequest) (*EmployeeResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	employee, err := s.employees.UpdateEmployee(ctx, businessID, employeeID, core.EmployeeInput{
		Name:           req.Name,
		Email:          req.Email,
		JobTitle:       req.JobTitle,
		StartDate:      req.StartDate,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		return nil, err
	}
	return &EmployeeResult{Employee: employee}, nil
}

// DeactivateEmployee marks an employee inactive.
func (s *appService) DeactivateEmployee(ctx context.Context, businessCode string, employeeID int) error {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return err
	}
	return s.employees.DeactivateEmployee(ctx, businessID, employeeID)
}

// ListInvoices returns invoices, optionally filtered by status.
func (s *appService) ListInvoices(ctx context.Context, businessCode, status string) (*InvoiceListResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	var filter *core.InvoiceStatus
	if status != "" {
		canonical, ok := core.ValidInvoiceStatus(status)
		if !ok {
			return nil, fmt.Errorf("invalid invoice status %q", status)
		}
		filter = &canonical
	}
	invoices, err := s.invoices.GetInvoices(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices, BusinessCode: businessCode}, nil
}

// GetInvoice returns a single invoice by its number.
func (s *appService) GetInvoice(ctx context.Context, businessCode, invoiceNumber string) (*InvoiceResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoices.GetInvoiceByNumber(ctx, businessID, invoiceNumber)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: invoice}, nil
}

// CreateInvoice creates a new Draft invoice with an assigned number.
func (s *appService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResult, error) {
	businessID, err := s.resolveBusinessID(ctx, req.BusinessCode)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoices.CreateInvoice(ctx, businessID, core.InvoiceInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Amount:        req.Amount,
		Currency:      req.Currency,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
	})
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: invoice}, nil
}

// SetInvoiceStatus transitions an invoice to one of the closed statuses.
func (s *appService) SetInvoiceStatus(ctx context.Context, businessCode, invoiceNumber, status string) (*InvoiceResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	canonical, ok := core.ValidInvoiceStatus(status)
	if !ok {
		return nil, fmt.Errorf("invalid invoice status %q; allowed: Draft, Sent, Paid, Overdue", status)
	}
	invoice, err := s.invoices.SetStatus(ctx, businessID, invoiceNumber, canonical)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: invoice}, nil
}

// ListAppointments returns upcoming scheduled appointments.
func (s *appService) ListAppointments(ctx context.Context, businessCode string) (*AppointmentListResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointments.GetUpcoming(ctx, businessID, time.Now(), 50)
	if err != nil {
		return nil, err
	}
	return &AppointmentListResult{Appointments: appointments, BusinessCode: businessCode}, nil
}

// CreateAppointment schedules a new appointment.
func (s *appService) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResult, error) {
	businessID, err := s.resolveBusinessID(ctx, req.BusinessCode)
	if err != nil {
		return nil, err
	}
	appointment, err := s.appointments.CreateAppointment(ctx, businessID, core.AppointmentInput{
		Title:    req.Title,
		WithWhom: req.WithWhom,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &AppointmentResult{Appointment: appointment}, nil
}

// CancelAppointment marks an appointment cancelled.
func (s *appService) CancelAppointment(ctx context.Context, businessCode string, appointmentID int) error {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return err
	}
	return s.appointments.CancelAppointment(ctx, businessID, appointmentID)
}

// RecordTransaction records a revenue or expense entry.
func (s *appService) RecordTransaction(ctx context.Context, req RecordTransactionRequest) (*TransactionResult, error) {
	businessID, err := s.resolveBusinessID(ctx, req.BusinessCode)
	if err != nil {
		return nil, err
	}
	transaction, err := s.transactions.RecordTransaction(ctx, businessID, core.TransactionInput{
		Kind:        core.TransactionKind(req.Kind),
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		EntryDate:   req.EntryDate,
	})
	if err != nil {
		return nil, err
	}
	return &TransactionResult{Transaction: transaction}, nil
}

// ListTransactions returns entries within the optional date range.
func (s *appService) ListTransactions(ctx context.Context, businessCode, fromDate, toDate string) (*TransactionListResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactions.GetTransactions(ctx, businessID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return &TransactionListResult{Transactions: transactions, BusinessCode: businessCode}, nil
}

// GetDashboard returns the dashboard snapshot for a business.
func (s *appService) GetDashboard(ctx context.Context, businessCode string) (*DashboardResult, error) {
	businessID, err := s.resolveBusinessID(ctx, businessCode)
	if err != nil {
		return nil, err
	}
	report, err := s.reporting.GetDashboard(ctx, businessID, time.Now())
	if err != nil {
		return nil, err
	}
	return &DashboardResult{Report: report}, nil
}

// LoadDefaultBusiness loads the active business, using BUSINESS_CODE env var if set.
func (s *appService) LoadDefaultBusiness(ctx context.Context) (*core.Business, error) {
	if code := os.Getenv("BUSINESS_CODE"); code != "" {
		return s.fetchBusiness(ctx, code)
	}

	var count int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM businesses").Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count businesses: %w", err)
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple businesses found; set BUSINESS_CODE env var (e.g. BUSINESS_CODE=ACME)")
	}

	b := &core.Business{}
	if err := s.pool.QueryRow(ctx,
		"SELECT id, business_code, name, currency FROM businesses LIMIT 1",
	).Scan(&b.ID, &b.BusinessCode, &b.Name, &b.Currency); err != nil {
		return nil, fmt.Errorf("no default business found, have migrations run?: %w", err)
	}
	return b, nil
}

// AuthenticateUser verifies credentials and returns a session on success.
func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("authentication failed: invalid password")
	}

	var businessCode string
	if err := s.pool.QueryRow(ctx,
		"SELECT business_code FROM businesses WHERE id = $1", user.BusinessID,
	).Scan(&businessCode); err != nil {
		return nil, fmt.Errorf("business id=%d not found: %w", user.BusinessID, err)
	}

	return &UserSession{
		UserID:       user.ID,
		BusinessID:   user.BusinessID,
		Username:     user.Username,
		Role:         user.Role,
		BusinessCode: businessCode,
	}, nil
}

// GetUser returns user profile by ID.
func (s *appService) GetUser(ctx context.Context, userID int) (*UserResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var businessCode string
	if err := s.pool.QueryRow(ctx,
		"SELECT business_code FROM businesses WHERE id = $1", user.BusinessID,
	).Scan(&businessCode); err != nil {
		return nil, fmt.Errorf("business id=%d not found: %w", user.BusinessID, err)
	}
	return &UserResult{
		Username:     user.Username,
		Role:         user.Role,
		BusinessCode: businessCode,
	}, nil
}

// ── private helpers ───────────────────────────────────────────────────────────

// resolveBusinessID looks up the integer primary key for a business code.
func (s *appService) resolveBusinessID(ctx context.Context, businessCode string) (int, error) {
	var id int
	if err := s.pool.QueryRow(ctx,
		"SELECT id FROM businesses WHERE business_code = $1", businessCode,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("business %s not found: %w", businessCode, err)
	}
	return id, nil
}

// fetchBusiness retrieves a business record by code.
func (s *appService) fetchBusiness(ctx context.Context, businessCode string) (*core.Business, error) {
	b := &core.Business{}
	if err := s.pool.QueryRow(ctx,
		"SELECT id, business_code, name, currency FROM businesses WHERE business_code = $1", businessCode,
	).Scan(&b.ID, &b.BusinessCode, &b.Name, &b.Currency); err != nil {
		return nil, fmt.Errorf("business %s not found: %w", businessCode, err)
	}
	return b, nil
}

// formatBookedSlots renders upcoming appointments as a bulleted list for the
// scheduling prompt.
func formatBookedSlots(appointments []core.Appointment) string {
	var lines []string
	for _, a := range appointments {
		lines = append(lines, fmt.Sprintf("- %s to %s: %s with %s",
			a.StartsAt.Format("Mon 2006-01-02 15:04"),
			a.EndsAt.Format("15:04"),
			a.Title, a.WithWhom))
	}
	return strings.Join(lines, "\n")
}
