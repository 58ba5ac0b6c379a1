package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"bizdesk/internal/app"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	business, err := svc.LoadDefaultBusiness(ctx)
	if err != nil {
		log.Fatalf("Failed to load business: %v", err)
	}

	switch args[0] {
	case "ask", "a":
		if len(args) < 2 {
			log.Fatal("Usage: app ask \"<request>\"")
		}
		result, err := svc.AssistantQuery(ctx, args[1], business.BusinessCode)
		if err != nil {
			log.Fatalf("Assistant error: %v", err)
		}
		printResult(result)

	case "extract", "x":
		if len(args) < 2 {
			log.Fatal("Usage: app extract \"<employee description>\"")
		}
		result, err := svc.ExtractEmployeeDraft(ctx, args[1], business.BusinessCode)
		if err != nil {
			log.Fatalf("Assistant error: %v", err)
		}
		printJSON(result.Draft)

	case "employees", "emp":
		result, err := svc.ListEmployees(ctx, business.BusinessCode)
		if err != nil {
			log.Fatalf("Failed to list employees: %v", err)
		}
		printJSON(result.Employees)

	case "invoices", "inv":
		status := ""
		if len(args) >= 2 {
			status = args[1]
		}
		result, err := svc.ListInvoices(ctx, business.BusinessCode, status)
		if err != nil {
			log.Fatalf("Failed to list invoices: %v", err)
		}
		printJSON(result.Invoices)

	case "email":
		if len(args) < 2 {
			log.Fatal("Usage: app email <invoice-number>")
		}
		result, err := svc.SendInvoiceEmail(ctx, business.BusinessCode, strings.ToUpper(args[1]))
		if err != nil {
			log.Fatalf("Email failed: %v", err)
		}
		fmt.Println(result.Receipt.Message)

	case "suggest":
		if len(args) < 2 {
			log.Fatal("Usage: app suggest \"<preferences>\"")
		}
		result, err := svc.SuggestAppointment(ctx, business.BusinessCode, args[1])
		if err != nil {
			log.Fatalf("Suggestion failed: %v", err)
		}
		fmt.Printf("Suggested slot: %s\nReasoning:      %s\n",
			result.Suggestion.SuggestedSlot, result.Suggestion.Reasoning)

	case "dashboard", "dash":
		result, err := svc.GetDashboard(ctx, business.BusinessCode)
		if err != nil {
			log.Fatalf("Failed to build dashboard: %v", err)
		}
		printJSON(result.Report)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: ask, extract, employees, invoices, email, suggest, dashboard", args[0])
	}
}

// printResult renders an assistant result for one-shot use. Proposals are
// printed but never applied: applying requires the interactive REPL or web UI.
func printResult(result *app.AssistantResult) {
	switch result.Kind {
	case app.AssistantKindMessage:
		fmt.Println(result.Message)
	case app.AssistantKindInvoice:
		printJSON(result.Invoice)
	case app.AssistantKindEmployeeDraft:
		fmt.Fprintln(os.Stderr, "Proposed employee (not applied; confirm via REPL or web UI):")
		printJSON(result.Draft)
	case app.AssistantKindInvoiceStatus:
		fmt.Fprintln(os.Stderr, "Proposed status change (not applied; confirm via REPL or web UI):")
		printJSON(result.Intent)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
