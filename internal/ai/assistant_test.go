package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"bizdesk/internal/core"
)

// stubOracle satisfies CompletionOracle with a canned response per call.
type stubOracle struct {
	calls    int
	lastSpec SchemaSpec
	prompt   string
	respond  func(out any) error
}

func (s *stubOracle) Complete(ctx context.Context, spec SchemaSpec, prompt string, out any) error {
	s.calls++
	s.lastSpec = spec
	s.prompt = prompt
	return s.respond(out)
}

// respondJSON fills the output struct the way the real oracle does.
func respondJSON(payload string) func(out any) error {
	return func(out any) error {
		return json.Unmarshal([]byte(payload), out)
	}
}

func respondErr(err error) func(out any) error {
	return func(any) error { return err }
}

func TestClassifyTask_NormalizesModelOutput(t *testing.T) {
	oracle := &stubOracle{respond: respondJSON(`{
		"task_type": " Employee Task ",
		"original_query": "a paraphrase the model made up",
		"message": ""
	}`)}
	a := NewAssistant(oracle)

	c, err := a.ClassifyTask(context.Background(), "Add John Smith as a developer")
	if err != nil {
		t.Fatalf("ClassifyTask: %v", err)
	}

	if c.TaskType != string(core.TaskTypeEmployee) {
		t.Errorf("TaskType = %q, want %q", c.TaskType, core.TaskTypeEmployee)
	}
	if c.OriginalQuery != "Add John Smith as a developer" {
		t.Errorf("OriginalQuery = %q, want the caller's input verbatim", c.OriginalQuery)
	}
	if oracle.calls != 1 {
		t.Errorf("oracle calls = %d, want exactly 1", oracle.calls)
	}
}

func TestClassifyTask_OracleFailureIsData(t *testing.T) {
	oracle := &stubOracle{respond: respondErr(errors.New("rate limited"))}
	a := NewAssistant(oracle)

	c, err := a.ClassifyTask(context.Background(), "hello?")
	if err != nil {
		t.Fatalf("oracle failure must not surface as an error, got: %v", err)
	}
	if c.TaskType != string(core.TaskTypeUnrecognized) {
		t.Errorf("TaskType = %q, want unrecognized", c.TaskType)
	}
	if c.OriginalQuery != "hello?" {
		t.Errorf("OriginalQuery = %q, want the input even on failure", c.OriginalQuery)
	}
	if c.Message != core.MsgModelNoOutput {
		t.Errorf("Message = %q, want %q", c.Message, core.MsgModelNoOutput)
	}
}

func TestClassifyTask_EmptyInputSkipsOracle(t *testing.T) {
	oracle := &stubOracle{respond: respondErr(errors.New("should not be called"))}
	a := NewAssistant(oracle)

	c, err := a.ClassifyTask(context.Background(), "   ")
	if err != nil {
		t.Fatalf("ClassifyTask: %v", err)
	}
	if oracle.calls != 0 {
		t.Errorf("oracle calls = %d, want 0 for empty input", oracle.calls)
	}
	if c.TaskType != string(core.TaskTypeUnrecognized) {
		t.Errorf("TaskType = %q, want unrecognized", c.TaskType)
	}
	if c.Message == "" {
		t.Error("expected a message explaining that query text is required")
	}
}

func TestExtractEmployee_PromptCarriesToday(t *testing.T) {
	oracle := &stubOracle{respond: respondJSON(`{
		"success": true, "name": "John Smith", "email": "", "job_title": "Developer",
		"start_date": "2026-08-31", "employment_type": "Full-time", "message": ""
	}`)}
	a := NewAssistant(oracle)

	today := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	d, err := a.ExtractEmployee(context.Background(), "Add John Smith starting next Monday", today)
	if err != nil {
		t.Fatalf("ExtractEmployee: %v", err)
	}
	if !d.Success || d.Name != "John Smith" {
		t.Errorf("unexpected draft: %+v", d)
	}
	if !strings.Contains(oracle.prompt, "2026-08-27") {
		t.Errorf("prompt must carry the reference date, got: %s", oracle.prompt)
	}
}

func TestExtractEmployee_MissingNameDowngraded(t *testing.T) {
	// The model claims success without a name; the repair rules override it.
	oracle := &stubOracle{respond: respondJSON(`{
		"success": true, "name": "", "email": "", "job_title": "Developer",
		"start_date": "", "employment_type": "", "message": "extracted a developer"
	}`)}
	a := NewAssistant(oracle)

	d, err := a.ExtractEmployee(context.Background(), "hire a developer", time.Now())
	if err != nil {
		t.Fatalf("ExtractEmployee: %v", err)
	}
	if d.Success {
		t.Error("draft without a name must not be successful")
	}
	if d.Message != core.MsgEmployeeNameRequired {
		t.Errorf("Message = %q, want %q", d.Message, core.MsgEmployeeNameRequired)
	}
}

func TestExtractEmployee_OracleFailureIsData(t *testing.T) {
	oracle := &stubOracle{respond: respondErr(errors.New("timeout"))}
	a := NewAssistant(oracle)

	d, err := a.ExtractEmployee(context.Background(), "add John", time.Now())
	if err != nil {
		t.Fatalf("oracle failure must not surface as an error, got: %v", err)
	}
	if d.Success {
		t.Error("expected Success=false on oracle failure")
	}
	if d.Message != core.MsgModelNoOutput {
		t.Errorf("Message = %q, want %q", d.Message, core.MsgModelNoOutput)
	}
}

func TestInterpretInvoiceIntent_StatusDowngrade(t *testing.T) {
	oracle := &stubOracle{respond: respondJSON(`{
		"intent": "update status", "invoice_number": "inv-2026-0042",
		"new_status": "Cancelled", "message": ""
	}`)}
	a := NewAssistant(oracle)

	i, err := a.InterpretInvoiceIntent(context.Background(), "cancel INV-2026-0042")
	if err != nil {
		t.Fatalf("InterpretInvoiceIntent: %v", err)
	}
	if i.Intent != string(core.InvoiceIntentUnrecognized) {
		t.Errorf("Intent = %q, want unrecognized after status downgrade", i.Intent)
	}
	if i.InvoiceNumber != "INV-2026-0042" {
		t.Errorf("InvoiceNumber = %q, want it retained and uppercased", i.InvoiceNumber)
	}
	if i.Message != core.MsgInvoiceStatusRequired {
		t.Errorf("Message = %q, want %q", i.Message, core.MsgInvoiceStatusRequired)
	}
}

func TestInterpretInvoiceIntent_ViewDetails(t *testing.T) {
	oracle := &stubOracle{respond: respondJSON(`{
		"intent": "view details", "invoice_number": "INV-2026-0001",
		"new_status": "", "message": ""
	}`)}
	a := NewAssistant(oracle)

	i, err := a.InterpretInvoiceIntent(context.Background(), "show me INV-2026-0001")
	if err != nil {
		t.Fatalf("InterpretInvoiceIntent: %v", err)
	}
	if i.Intent != string(core.InvoiceIntentView) || i.InvoiceNumber != "INV-2026-0001" {
		t.Errorf("unexpected intent: %+v", i)
	}
}

func TestSuggestAppointment_HardFailures(t *testing.T) {
	t.Run("empty preferences", func(t *testing.T) {
		a := NewAssistant(&stubOracle{respond: respondErr(errors.New("unused"))})
		if _, err := a.SuggestAppointment(context.Background(), "  ", ""); err == nil {
			t.Error("expected error for empty preferences")
		}
	})

	t.Run("oracle failure", func(t *testing.T) {
		a := NewAssistant(&stubOracle{respond: respondErr(errors.New("timeout"))})
		if _, err := a.SuggestAppointment(context.Background(), "mornings", ""); err == nil {
			t.Error("expected hard error when the oracle fails; this flow has no fallback")
		}
	})

	t.Run("incomplete suggestion", func(t *testing.T) {
		a := NewAssistant(&stubOracle{respond: respondJSON(`{"suggested_slot": "", "reasoning": "x"}`)})
		if _, err := a.SuggestAppointment(context.Background(), "mornings", ""); err == nil {
			t.Error("expected error for a suggestion without a slot")
		}
	})
}

func TestSuggestAppointment_PromptCarriesBookedSlots(t *testing.T) {
	oracle := &stubOracle{respond: respondJSON(`{
		"suggested_slot": "Tuesday 2026-09-01 10:00",
		"reasoning": "Morning preferred and Tuesday is free."
	}`)}
	a := NewAssistant(oracle)

	booked := "- Mon 2026-08-31 09:00 to 10:00: Standup with Team"
	s, err := a.SuggestAppointment(context.Background(), "a morning slot next week", booked)
	if err != nil {
		t.Fatalf("SuggestAppointment: %v", err)
	}
	if s.SuggestedSlot == "" || s.Reasoning == "" {
		t.Errorf("unexpected suggestion: %+v", s)
	}
	if !strings.Contains(oracle.prompt, booked) {
		t.Errorf("prompt must carry the booked slots, got: %s", oracle.prompt)
	}
}

func TestConfirmInvoiceEmail_SynthesizesReceiptOnFailure(t *testing.T) {
	// The send is simulated, so even a dead oracle produces a full receipt.
	oracle := &stubOracle{respond: respondErr(errors.New("model offline"))}
	a := NewAssistant(oracle)

	r, err := a.ConfirmInvoiceEmail(context.Background(), "billing@northwind.example", "INV-2026-0001")
	if err != nil {
		t.Fatalf("ConfirmInvoiceEmail: %v", err)
	}
	if r.Sent == nil || !*r.Sent {
		t.Error("expected Sent=true on the synthesized receipt")
	}
	want := core.DefaultEmailMessage("billing@northwind.example", "INV-2026-0001")
	if r.Message != want {
		t.Errorf("Message = %q, want %q", r.Message, want)
	}
}

func TestConfirmInvoiceEmail_InputValidation(t *testing.T) {
	a := NewAssistant(&stubOracle{respond: respondErr(errors.New("unused"))})

	if _, err := a.ConfirmInvoiceEmail(context.Background(), "", "INV-2026-0001"); err == nil {
		t.Error("expected error for empty recipient")
	}
	if _, err := a.ConfirmInvoiceEmail(context.Background(), "x@example.com", ""); err == nil {
		t.Error("expected error for empty invoice number")
	}
}
