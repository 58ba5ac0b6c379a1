package ai

import (
	"fmt"
	"time"
)

// classifierExamples is the fixed few-shot block steering the router. Each
// example maps a query to exactly one category from the closed set.
const classifierExamples = `Examples:
- "Add a new employee named Sarah Chen, she starts on the 1st of March" -> employee task
- "Hire John as a part-time bookkeeper from next Monday" -> employee task
- "Show me invoice INV-2024-0042" -> invoice task
- "Mark INV-2024-0017 as Paid" -> invoice task
- "What's the weather like today?" -> unrecognized
- "Sing me a song" -> unrecognized`

// classifierPrompt renders the routing prompt for a free-text query.
func classifierPrompt(text string) string {
	return fmt.Sprintf(`You are the routing layer of a small-business management assistant.
Classify the user's query into exactly one category:
- "employee task": adding or changing employee (HR) records
- "invoice task": viewing an invoice or changing its status
- "unrecognized": anything else

Rules:
1. Pick exactly one category. If the query plausibly fits more than one, use your judgment to pick the single best fit.
2. Repeat the user's query verbatim in original_query.
3. Only when the category is "unrecognized", fill message with one short sentence telling the user what you can help with. Otherwise leave message empty.

%s

Query: %s`, classifierExamples, text)
}

// employeePrompt renders the employee-extraction prompt. today is passed in
// explicitly so relative dates ("next Monday") resolve deterministically.
func employeePrompt(text string, today time.Time) string {
	return fmt.Sprintf(`You are an HR assistant for a small business.
Extract a structured employee record from the request below.

Rules:
1. name is the only mandatory field. If no name is mentioned, set success to false and leave name empty.
2. email, job_title, start_date and employment_type are optional — leave them empty unless the text mentions them.
3. start_date must be YYYY-MM-DD. Today is %s. Resolve relative dates like "next Monday" against today.
4. employment_type must be exactly one of: Full-time, Part-time, Contract.
5. Never invent values that are not in the text.

Request: %s`, today.Format("Monday, 2006-01-02"), text)
}

// invoicePrompt renders the invoice-intent extraction prompt.
func invoicePrompt(text string) string {
	return fmt.Sprintf(`You are an invoicing assistant for a small business.
Determine what the user wants to do with an invoice.

Rules:
1. intent must be exactly one of: "view details", "update status", "unrecognized".
2. Extract the invoice number (e.g. INV-2024-0042) into invoice_number if one is mentioned.
3. For "update status", new_status must be exactly one of: Draft, Sent, Paid, Overdue.
   If the user asks for any other status, leave new_status empty.
4. If required information is missing, still pick the closest intent and leave the missing field empty.

Request: %s`, text)
}

// appointmentPrompt renders the slot-suggestion prompt. bookedSlots is a
// preformatted list of existing appointments the suggestion must avoid.
func appointmentPrompt(preferences, bookedSlots string) string {
	if bookedSlots == "" {
		bookedSlots = "(none)"
	}
	return fmt.Sprintf(`You are a scheduling assistant for a small business.
Suggest one concrete appointment slot matching the stated preferences,
avoiding the already-booked slots. Include day, date and time in
suggested_slot, and explain the choice in reasoning.

Preferences: %s

Already booked:
%s`, preferences, bookedSlots)
}

// emailPrompt renders the invoice-email confirmation prompt. The send itself
// is simulated; the model only composes the receipt.
func emailPrompt(recipient, invoiceNumber string) string {
	return fmt.Sprintf(`You are an assistant confirming that an invoice email was sent.
Compose a one-sentence confirmation message naming the recipient and the
invoice number, and set sent to true.

Recipient: %s
Invoice number: %s`, recipient, invoiceNumber)
}
