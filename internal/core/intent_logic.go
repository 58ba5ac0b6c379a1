package core

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Central list of synthesized defaults and corrective messages. Every silent
// default the interpretation layer applies when the model omits a field is
// defined here so tests can enumerate them.
const (
	// MsgGuidance is supplied when the classifier marks a query unrecognized
	// without explaining what the assistant can do.
	MsgGuidance = `I can help with employee tasks (e.g. "add employee John Smith, starts next Monday") and invoice tasks (e.g. "mark INV-2024-0042 as Paid"). Please rephrase your request.`

	// MsgModelNoOutput is returned when the model produced no usable output.
	MsgModelNoOutput = "The model did not return an output. Please rephrase your request."

	// MsgEmployeeNameRequired downgrades an employee draft without a name.
	MsgEmployeeNameRequired = "Employee name is required. Please include the employee's name and try again."

	// MsgInvoiceNumberRequired downgrades an invoice intent without a number.
	MsgInvoiceNumberRequired = "Please provide the invoice number (e.g. INV-2024-0042)."

	// MsgInvoiceStatusRequired downgrades a status update without a valid status.
	MsgInvoiceStatusRequired = "Please provide a valid invoice status. Allowed statuses: Draft, Sent, Paid, Overdue."
)

// DefaultEmailMessage is the receipt text synthesized when the model omits one.
func DefaultEmailMessage(recipient, invoiceNumber string) string {
	return fmt.Sprintf("A confirmation email for invoice %s has been sent to %s.", invoiceNumber, recipient)
}

// Normalize cleans up the classifier output and enforces the closed category
// set. originalQuery is the caller's exact input text; the model's echo is
// discarded unconditionally.
func (c *TaskClassification) Normalize(originalQuery string) {
	c.TaskType = strings.ToLower(strings.TrimSpace(c.TaskType))
	c.Message = strings.TrimSpace(c.Message)
	c.OriginalQuery = originalQuery

	switch TaskType(c.TaskType) {
	case TaskTypeEmployee, TaskTypeInvoice:
		// recognized; guidance message is not needed
	default:
		c.TaskType = string(TaskTypeUnrecognized)
		if c.Message == "" {
			c.Message = MsgGuidance
		}
	}
}

// Normalize trims all fields of an employee draft.
func (d *EmployeeDraft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.JobTitle = strings.TrimSpace(d.JobTitle)
	d.StartDate = strings.TrimSpace(d.StartDate)
	d.EmploymentType = strings.TrimSpace(d.EmploymentType)
	d.Message = strings.TrimSpace(d.Message)
}

// Repair applies the one-step downgrade/repair rules for employee extraction:
// a draft without a name is never successful, and malformed optional fields
// are cleared with a note instead of failing the whole draft.
func (d *EmployeeDraft) Repair() {
	if d.Name == "" {
		d.Success = false
		d.Message = MsgEmployeeNameRequired
		return
	}

	var notes []string

	if d.Email != "" {
		if _, err := mail.ParseAddress(d.Email); err != nil {
			notes = append(notes, fmt.Sprintf("ignored invalid email %q", d.Email))
			d.Email = ""
		}
	}

	if d.StartDate != "" {
		if _, err := time.Parse("2006-01-02", d.StartDate); err != nil {
			notes = append(notes, fmt.Sprintf("ignored invalid start date %q", d.StartDate))
			d.StartDate = ""
		}
	}

	if d.EmploymentType != "" {
		if et, ok := ValidEmploymentType(d.EmploymentType); ok {
			d.EmploymentType = string(et)
		} else {
			notes = append(notes, fmt.Sprintf("ignored unknown employment type %q", d.EmploymentType))
			d.EmploymentType = ""
		}
	}

	if len(notes) > 0 {
		note := strings.Join(notes, "; ")
		if d.Message == "" {
			d.Message = note
		} else {
			d.Message = d.Message + " (" + note + ")"
		}
	}
}

// Normalize trims an invoice intent and canonicalizes the status casing.
func (i *InvoiceIntent) Normalize() {
	i.Intent = strings.ToLower(strings.TrimSpace(i.Intent))
	i.InvoiceNumber = strings.ToUpper(strings.TrimSpace(i.InvoiceNumber))
	i.Message = strings.TrimSpace(i.Message)

	i.NewStatus = strings.TrimSpace(i.NewStatus)
	if status, ok := ValidInvoiceStatus(i.NewStatus); ok {
		i.NewStatus = string(status)
	}
}

// Repair applies the invoice-intent downgrade rules:
//   - an intent outside the closed set becomes "unrecognized"
//   - "view details" / "update status" without an invoice number is
//     downgraded, asking for the number
//   - "update status" without a status from the closed set is downgraded,
//     listing the allowed values; the extracted invoice number is retained
func (i *InvoiceIntent) Repair() {
	switch InvoiceIntentKind(i.Intent) {
	case InvoiceIntentView, InvoiceIntentUpdateStatus:
	default:
		i.Intent = string(InvoiceIntentUnrecognized)
		i.NewStatus = ""
		if i.Message == "" {
			i.Message = MsgGuidance
		}
		return
	}

	if i.InvoiceNumber == "" {
		i.Intent = string(InvoiceIntentUnrecognized)
		i.NewStatus = ""
		i.Message = MsgInvoiceNumberRequired
		return
	}

	if InvoiceIntentKind(i.Intent) == InvoiceIntentUpdateStatus {
		if _, ok := ValidInvoiceStatus(i.NewStatus); !ok {
			i.Intent = string(InvoiceIntentUnrecognized)
			i.NewStatus = ""
			i.Message = MsgInvoiceStatusRequired
		}
	}
}

// Validate rejects an appointment suggestion with missing fields. There is no
// repair for this task — an incomplete suggestion is a hard failure.
func (s *AppointmentSuggestion) Validate() error {
	if strings.TrimSpace(s.SuggestedSlot) == "" {
		return errors.New("appointment suggestion has no suggested slot")
	}
	if strings.TrimSpace(s.Reasoning) == "" {
		return errors.New("appointment suggestion has no reasoning")
	}
	return nil
}

// Normalize fills in the simulation defaults for an email receipt: a missing
// sent flag becomes true, a missing message is synthesized from the recipient
// and invoice number.
func (r *EmailReceipt) Normalize(recipient, invoiceNumber string) {
	if r.Sent == nil {
		sent := true
		r.Sent = &sent
	}
	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" {
		r.Message = DefaultEmailMessage(recipient, invoiceNumber)
	}
}
