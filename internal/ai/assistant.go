package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bizdesk/internal/core"
)

// Assistant runs the five interpretation flows. Each flow makes exactly one
// oracle call and reports every user-relevant failure as data on the returned
// value, never as a Go error; the error return is reserved for programmer
// faults and for the two flows that have no failure-shaped result
// (appointment suggestion, email confirmation).
type Assistant struct {
	oracle CompletionOracle
}

// NewAssistant constructs an Assistant on top of the given oracle.
func NewAssistant(oracle CompletionOracle) *Assistant {
	return &Assistant{oracle: oracle}
}

// ClassifyTask buckets a free-text query into one of the closed task
// categories. OriginalQuery on the result always equals text exactly.
func (a *Assistant) ClassifyTask(ctx context.Context, text string) (*core.TaskClassification, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return &core.TaskClassification{
			TaskType: string(core.TaskTypeUnrecognized),
			Message:  "Query text is required. Please type a request.",
		}, nil
	}

	var c core.TaskClassification
	err := a.oracle.Complete(ctx, SchemaSpec{
		Name:        "task_classification",
		Description: "Routing decision for a small-business assistant query",
	}, classifierPrompt(text), &c)
	if err != nil {
		return &core.TaskClassification{
			TaskType:      string(core.TaskTypeUnrecognized),
			OriginalQuery: text,
			Message:       core.MsgModelNoOutput,
		}, nil
	}

	c.Normalize(text)
	return &c, nil
}

// ExtractEmployee turns free text into an employee-creation draft. today is
// the reference date for resolving relative phrases like "next Monday".
func (a *Assistant) ExtractEmployee(ctx context.Context, text string, today time.Time) (*core.EmployeeDraft, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return &core.EmployeeDraft{Message: "Request text is required. Please describe the employee to add."}, nil
	}

	var d core.EmployeeDraft
	err := a.oracle.Complete(ctx, SchemaSpec{
		Name:        "employee_draft",
		Description: "Structured employee-creation request extracted from free text",
	}, employeePrompt(text, today), &d)
	if err != nil {
		return &core.EmployeeDraft{Message: core.MsgModelNoOutput}, nil
	}

	d.Normalize()
	d.Repair()
	return &d, nil
}

// InterpretInvoiceIntent turns free text into an invoice action request.
func (a *Assistant) InterpretInvoiceIntent(ctx context.Context, text string) (*core.InvoiceIntent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return &core.InvoiceIntent{
			Intent:  string(core.InvoiceIntentUnrecognized),
			Message: "Request text is required. Please describe the invoice action.",
		}, nil
	}

	var i core.InvoiceIntent
	err := a.oracle.Complete(ctx, SchemaSpec{
		Name:        "invoice_intent",
		Description: "Structured invoice action extracted from free text",
	}, invoicePrompt(text), &i)
	if err != nil {
		return &core.InvoiceIntent{
			Intent:  string(core.InvoiceIntentUnrecognized),
			Message: core.MsgModelNoOutput,
		}, nil
	}

	i.Normalize()
	i.Repair()
	return &i, nil
}

// SuggestAppointment proposes a slot for the stated preferences, avoiding the
// preformatted list of booked slots. This flow has no deterministic fallback:
// an oracle failure or incomplete suggestion is a hard error.
func (a *Assistant) SuggestAppointment(ctx context.Context, preferences, bookedSlots string) (*core.AppointmentSuggestion, error) {
	preferences = strings.TrimSpace(preferences)
	if preferences == "" {
		return nil, fmt.Errorf("appointment preferences are required")
	}

	var s core.AppointmentSuggestion
	err := a.oracle.Complete(ctx, SchemaSpec{
		Name:        "appointment_suggestion",
		Description: "A proposed appointment slot with reasoning",
	}, appointmentPrompt(preferences, bookedSlots), &s)
	if err != nil {
		return nil, fmt.Errorf("no appointment suggestion available: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("no appointment suggestion available: %w", err)
	}
	return &s, nil
}

// ConfirmInvoiceEmail composes the receipt for a simulated invoice email.
// Omitted fields get the documented defaults: sent=true and a synthesized
// message naming the recipient and invoice number.
func (a *Assistant) ConfirmInvoiceEmail(ctx context.Context, recipient, invoiceNumber string) (*core.EmailReceipt, error) {
	recipient = strings.TrimSpace(recipient)
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if recipient == "" {
		return nil, fmt.Errorf("recipient email is required")
	}
	if invoiceNumber == "" {
		return nil, fmt.Errorf("invoice number is required")
	}

	var r core.EmailReceipt
	err := a.oracle.Complete(ctx, SchemaSpec{
		Name:        "email_receipt",
		Description: "Confirmation receipt for a simulated invoice email",
	}, emailPrompt(recipient, invoiceNumber), &r)
	if err != nil {
		// The send is simulated, so the receipt can be synthesized entirely.
		r = core.EmailReceipt{}
	}

	r.Normalize(recipient, invoiceNumber)
	return &r, nil
}
