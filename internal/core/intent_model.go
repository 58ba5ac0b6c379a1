package core

// TaskType is the closed set of assistant task categories.
type TaskType string

const (
	TaskTypeEmployee     TaskType = "employee task"
	TaskTypeInvoice      TaskType = "invoice task"
	TaskTypeUnrecognized TaskType = "unrecognized"
)

// InvoiceIntentKind is the closed set of recognized invoice actions.
type InvoiceIntentKind string

const (
	InvoiceIntentView         InvoiceIntentKind = "view details"
	InvoiceIntentUpdateStatus InvoiceIntentKind = "update status"
	InvoiceIntentUnrecognized InvoiceIntentKind = "unrecognized"
)

// TaskClassification is the AI-produced routing decision for a free-text query.
// OriginalQuery is always overwritten with the caller's exact input after the
// model call — the model's echo is never trusted.
type TaskClassification struct {
	TaskType      string `json:"task_type" jsonschema_description:"Exactly one of 'employee task', 'invoice task' or 'unrecognized'. Pick the single best category for the query."`
	OriginalQuery string `json:"original_query" jsonschema_description:"The user's query, repeated verbatim."`
	Message       string `json:"message" jsonschema_description:"When task_type is 'unrecognized': a short sentence telling the user what kinds of requests are supported. Empty otherwise."`
}

// EmployeeDraft is the AI-extracted employee-creation request.
// Name is the only mandatory field; the optional fields are empty strings when
// the user did not mention them.
type EmployeeDraft struct {
	Success        bool   `json:"success" jsonschema_description:"True if an employee name could be extracted from the text, false otherwise."`
	Name           string `json:"name" jsonschema_description:"The employee's full name, exactly as given. Empty if no name was mentioned."`
	Email          string `json:"email" jsonschema_description:"The employee's email address if mentioned, otherwise empty."`
	JobTitle       string `json:"job_title" jsonschema_description:"The employee's job title if mentioned, otherwise empty."`
	StartDate      string `json:"start_date" jsonschema_description:"The start date in YYYY-MM-DD format. Resolve relative phrases like 'next Monday' against the current date given in the prompt. Empty if no date was mentioned."`
	EmploymentType string `json:"employment_type" jsonschema_description:"One of 'Full-time', 'Part-time' or 'Contract' if mentioned, otherwise empty."`
	Message        string `json:"message" jsonschema_description:"A short human-readable note about the extraction, e.g. what is still missing."`
}

// InvoiceIntent is the AI-extracted invoice action request.
type InvoiceIntent struct {
	Intent        string `json:"intent" jsonschema_description:"Exactly one of 'view details', 'update status' or 'unrecognized'."`
	InvoiceNumber string `json:"invoice_number" jsonschema_description:"The invoice number mentioned in the text (e.g. 'INV-2024-0042'), otherwise empty."`
	NewStatus     string `json:"new_status" jsonschema_description:"For 'update status': one of 'Draft', 'Sent', 'Paid' or 'Overdue'. Empty otherwise, or when the requested status is not one of these."`
	Message       string `json:"message" jsonschema_description:"A short human-readable note, e.g. asking for missing information."`
}

// AppointmentSuggestion is the AI-proposed meeting slot.
// There is no deterministic fallback for this task: both fields must be
// present or the flow fails outright.
type AppointmentSuggestion struct {
	SuggestedSlot string `json:"suggested_slot" jsonschema_description:"The proposed appointment slot in plain language, including day, date and time."`
	Reasoning     string `json:"reasoning" jsonschema_description:"Why this slot was chosen, referencing the stated preferences and existing bookings."`
}

// EmailReceipt is the AI-composed confirmation for an invoice email.
// This flow is an explicit simulation — no mail is actually sent, so Sent
// defaults to true when the model omits it.
type EmailReceipt struct {
	Sent    *bool  `json:"sent" jsonschema_description:"Whether the confirmation email was sent. Always true in this simulation."`
	Message string `json:"message" jsonschema_description:"A one-sentence confirmation naming the recipient and the invoice number."`
}
