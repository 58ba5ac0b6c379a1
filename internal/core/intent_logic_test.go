package core_test

import (
	"strings"
	"testing"

	"bizdesk/internal/core"
)

func TestTaskClassification_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		taskType     string
		message      string
		wantTaskType string
		wantMessage  string
	}{
		{
			name:         "employee task kept",
			taskType:     "employee task",
			wantTaskType: "employee task",
			wantMessage:  "",
		},
		{
			name:         "invoice task with odd casing and whitespace",
			taskType:     "  Invoice Task ",
			wantTaskType: "invoice task",
			wantMessage:  "",
		},
		{
			name:         "unrecognized gets guidance message",
			taskType:     "unrecognized",
			wantTaskType: "unrecognized",
			wantMessage:  core.MsgGuidance,
		},
		{
			name:         "out-of-set category becomes unrecognized",
			taskType:     "payroll task",
			wantTaskType: "unrecognized",
			wantMessage:  core.MsgGuidance,
		},
		{
			name:         "model-provided message survives for unrecognized",
			taskType:     "unrecognized",
			message:      "I only handle employees and invoices.",
			wantTaskType: "unrecognized",
			wantMessage:  "I only handle employees and invoices.",
		},
		{
			name:         "empty category becomes unrecognized",
			taskType:     "",
			wantTaskType: "unrecognized",
			wantMessage:  core.MsgGuidance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := core.TaskClassification{
				TaskType:      tt.taskType,
				OriginalQuery: "a paraphrased echo from the model",
				Message:       tt.message,
			}
			c.Normalize("the user's exact words")

			if c.TaskType != tt.wantTaskType {
				t.Errorf("TaskType = %q, want %q", c.TaskType, tt.wantTaskType)
			}
			if c.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", c.Message, tt.wantMessage)
			}
			if c.OriginalQuery != "the user's exact words" {
				t.Errorf("OriginalQuery = %q, want the caller's input verbatim", c.OriginalQuery)
			}
		})
	}
}

func TestEmployeeDraft_Repair_NameRequired(t *testing.T) {
	d := core.EmployeeDraft{
		Success:   true,
		Name:      "   ",
		JobTitle:  "Developer",
		StartDate: "2026-09-01",
	}
	d.Normalize()
	d.Repair()

	if d.Success {
		t.Error("expected Success=false for a draft without a name")
	}
	if d.Message != core.MsgEmployeeNameRequired {
		t.Errorf("Message = %q, want %q", d.Message, core.MsgEmployeeNameRequired)
	}
}

func TestEmployeeDraft_Repair_OptionalFields(t *testing.T) {
	tests := []struct {
		name      string
		draft     core.EmployeeDraft
		wantEmail string
		wantDate  string
		wantType  string
		wantNote  string
	}{
		{
			name: "well-formed draft untouched",
			draft: core.EmployeeDraft{
				Success: true, Name: "John Smith",
				Email: "john@example.com", StartDate: "2026-09-01", EmploymentType: "Full-time",
			},
			wantEmail: "john@example.com",
			wantDate:  "2026-09-01",
			wantType:  "Full-time",
		},
		{
			name: "invalid email cleared with note",
			draft: core.EmployeeDraft{
				Success: true, Name: "John Smith", Email: "not-an-email",
			},
			wantNote: "ignored invalid email",
		},
		{
			name: "invalid date cleared with note",
			draft: core.EmployeeDraft{
				Success: true, Name: "John Smith", StartDate: "next Monday",
			},
			wantNote: "ignored invalid start date",
		},
		{
			name: "unknown employment type cleared with note",
			draft: core.EmployeeDraft{
				Success: true, Name: "John Smith", EmploymentType: "Freelance",
			},
			wantNote: "ignored unknown employment type",
		},
		{
			name: "employment type casing canonicalized",
			draft: core.EmployeeDraft{
				Success: true, Name: "John Smith", EmploymentType: "full-TIME",
			},
			wantType: "Full-time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.draft
			d.Normalize()
			d.Repair()

			if !d.Success {
				t.Fatal("draft with a name must stay successful")
			}
			if d.Email != tt.wantEmail {
				t.Errorf("Email = %q, want %q", d.Email, tt.wantEmail)
			}
			if d.StartDate != tt.wantDate {
				t.Errorf("StartDate = %q, want %q", d.StartDate, tt.wantDate)
			}
			if d.EmploymentType != tt.wantType {
				t.Errorf("EmploymentType = %q, want %q", d.EmploymentType, tt.wantType)
			}
			if tt.wantNote != "" && !strings.Contains(d.Message, tt.wantNote) {
				t.Errorf("Message = %q, want it to mention %q", d.Message, tt.wantNote)
			}
		})
	}
}

func TestEmployeeDraft_Repair_Idempotent(t *testing.T) {
	d := core.EmployeeDraft{
		Success: true, Name: "John Smith",
		Email: "bad-email", EmploymentType: "full-time",
	}
	d.Normalize()
	d.Repair()

	first := d
	d.Normalize()
	d.Repair()

	if d != first {
		t.Errorf("second repair changed the draft: %+v vs %+v", d, first)
	}
}

func TestInvoiceIntent_Repair(t *testing.T) {
	tests := []struct {
		name       string
		intent     core.InvoiceIntent
		wantIntent string
		wantNumber string
		wantStatus string
		wantMsg    string
	}{
		{
			name:       "view details kept, number uppercased",
			intent:     core.InvoiceIntent{Intent: "view details", InvoiceNumber: "inv-2026-0001"},
			wantIntent: "view details",
			wantNumber: "INV-2026-0001",
		},
		{
			name:       "update status with canonicalized status",
			intent:     core.InvoiceIntent{Intent: "Update Status", InvoiceNumber: "INV-2026-0001", NewStatus: "paid"},
			wantIntent: "update status",
			wantNumber: "INV-2026-0001",
			wantStatus: "Paid",
		},
		{
			name:       "out-of-set intent downgraded with guidance",
			intent:     core.InvoiceIntent{Intent: "delete invoice", InvoiceNumber: "INV-2026-0001"},
			wantIntent: "unrecognized",
			wantNumber: "INV-2026-0001",
			wantMsg:    core.MsgGuidance,
		},
		{
			name:       "view details without number asks for it",
			intent:     core.InvoiceIntent{Intent: "view details"},
			wantIntent: "unrecognized",
			wantMsg:    core.MsgInvoiceNumberRequired,
		},
		{
			name:       "update status with unknown status lists allowed values",
			intent:     core.InvoiceIntent{Intent: "update status", InvoiceNumber: "INV-2026-0001", NewStatus: "Cancelled"},
			wantIntent: "unrecognized",
			wantNumber: "INV-2026-0001",
			wantMsg:    core.MsgInvoiceStatusRequired,
		},
		{
			name:       "update status without status lists allowed values",
			intent:     core.InvoiceIntent{Intent: "update status", InvoiceNumber: "INV-2026-0001"},
			wantIntent: "unrecognized",
			wantNumber: "INV-2026-0001",
			wantMsg:    core.MsgInvoiceStatusRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := tt.intent
			i.Normalize()
			i.Repair()

			if i.Intent != tt.wantIntent {
				t.Errorf("Intent = %q, want %q", i.Intent, tt.wantIntent)
			}
			if i.InvoiceNumber != tt.wantNumber {
				t.Errorf("InvoiceNumber = %q, want %q", i.InvoiceNumber, tt.wantNumber)
			}
			if i.NewStatus != tt.wantStatus {
				t.Errorf("NewStatus = %q, want %q", i.NewStatus, tt.wantStatus)
			}
			if tt.wantMsg != "" && i.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", i.Message, tt.wantMsg)
			}
		})
	}
}

func TestInvoiceIntent_StatusMessageNamesAllStatuses(t *testing.T) {
	// The downgrade message must enumerate the closed status set so the user
	// can self-correct without another round trip.
	for _, status := range core.InvoiceStatuses {
		if !strings.Contains(core.MsgInvoiceStatusRequired, string(status)) {
			t.Errorf("MsgInvoiceStatusRequired does not mention %q: %s", status, core.MsgInvoiceStatusRequired)
		}
	}
}

func TestAppointmentSuggestion_Validate(t *testing.T) {
	tests := []struct {
		name       string
		suggestion core.AppointmentSuggestion
		wantErr    bool
	}{
		{
			name:       "complete suggestion",
			suggestion: core.AppointmentSuggestion{SuggestedSlot: "Tuesday 2026-09-01 10:00", Reasoning: "Morning preferred; no conflicts."},
		},
		{
			name:       "missing slot",
			suggestion: core.AppointmentSuggestion{Reasoning: "Morning preferred."},
			wantErr:    true,
		},
		{
			name:       "missing reasoning",
			suggestion: core.AppointmentSuggestion{SuggestedSlot: "Tuesday 10:00"},
			wantErr:    true,
		},
		{
			name:       "whitespace only",
			suggestion: core.AppointmentSuggestion{SuggestedSlot: "  ", Reasoning: "\t"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.suggestion.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmailReceipt_Normalize_Defaults(t *testing.T) {
	t.Run("empty receipt gets both defaults", func(t *testing.T) {
		r := core.EmailReceipt{}
		r.Normalize("billing@northwind.example", "INV-2026-0001")

		if r.Sent == nil || !*r.Sent {
			t.Error("expected Sent to default to true")
		}
		want := core.DefaultEmailMessage("billing@northwind.example", "INV-2026-0001")
		if r.Message != want {
			t.Errorf("Message = %q, want %q", r.Message, want)
		}
		if !strings.Contains(r.Message, "INV-2026-0001") || !strings.Contains(r.Message, "billing@northwind.example") {
			t.Errorf("default message must name the invoice and recipient: %s", r.Message)
		}
	})

	t.Run("explicit sent=false preserved", func(t *testing.T) {
		sent := false
		r := core.EmailReceipt{Sent: &sent, Message: "Could not compose the email."}
		r.Normalize("x@example.com", "INV-2026-0002")

		if *r.Sent {
			t.Error("explicit Sent=false must not be overwritten")
		}
		if r.Message != "Could not compose the email." {
			t.Errorf("model-provided message overwritten: %q", r.Message)
		}
	})
}

func TestValidInvoiceStatus(t *testing.T) {
	tests := []struct {
		in    string
		want  core.InvoiceStatus
		valid bool
	}{
		{"Paid", core.InvoiceStatusPaid, true},
		{"paid", core.InvoiceStatusPaid, true},
		{" OVERDUE ", core.InvoiceStatusOverdue, true},
		{"draft", core.InvoiceStatusDraft, true},
		{"sent", core.InvoiceStatusSent, true},
		{"Cancelled", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := core.ValidInvoiceStatus(tt.in)
		if ok != tt.valid || got != tt.want {
			t.Errorf("ValidInvoiceStatus(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}
