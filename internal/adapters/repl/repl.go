package repl

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"

	"bizdesk/internal/app"
)

// Run starts the interactive REPL loop.
// It reads commands from reader, dispatches slash commands deterministically,
// and routes natural language input through the assistant.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) {
	business, err := svc.LoadDefaultBusiness(ctx)
	if err != nil {
		log.Fatalf("Failed to load business: %v", err)
	}

	fmt.Println("BizDesk Assistant")
	fmt.Printf("Business: %s — %s (%s)\n", business.BusinessCode, business.Name, business.Currency)
	fmt.Println("Describe what you need in plain language, or use /help for commands.")
	fmt.Println(strings.Repeat("-", 70))

	errExit := fmt.Errorf("exit")

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "employees", "emp":
			result, err := svc.ListEmployees(ctx, business.BusinessCode)
			if err != nil {
				return err
			}
			printEmployees(result)

		case "invoices", "inv":
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			result, err := svc.ListInvoices(ctx, business.BusinessCode, status)
			if err != nil {
				return err
			}
			printInvoices(result)

		case "invoice":
			if len(args) < 1 {
				fmt.Println("Usage: /invoice <invoice-number>")
				return nil
			}
			result, err := svc.GetInvoice(ctx, business.BusinessCode, strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			printInvoiceDetail(result.Invoice)

		case "status":
			if len(args) < 2 {
				fmt.Println("Usage: /status <invoice-number> <Draft|Sent|Paid|Overdue>")
				return nil
			}
			result, err := svc.SetInvoiceStatus(ctx, business.BusinessCode, strings.ToUpper(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Invoice %s is now %s.\n", result.Invoice.InvoiceNumber, result.Invoice.Status)

		case "email":
			if len(args) < 1 {
				fmt.Println("Usage: /email <invoice-number>")
				return nil
			}
			result, err := svc.SendInvoiceEmail(ctx, business.BusinessCode, strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(result.Receipt.Message)

		case "appointments", "appt":
			result, err := svc.ListAppointments(ctx, business.BusinessCode)
			if err != nil {
				return err
			}
			printAppointments(result)

		case "suggest":
			if len(args) < 1 {
				fmt.Println("Usage: /suggest <preferences...>")
				fmt.Println("  Example: /suggest a morning slot early next week")
				return nil
			}
			result, err := svc.SuggestAppointment(ctx, business.BusinessCode, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("\nSuggested slot: %s\n", result.Suggestion.SuggestedSlot)
			fmt.Printf("Reasoning:      %s\n", result.Suggestion.Reasoning)

		case "dashboard", "dash":
			result, err := svc.GetDashboard(ctx, business.BusinessCode)
			if err != nil {
				return err
			}
			printDashboard(result, business.Currency)

		case "help", "h":
			printHelp()

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Printf("Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Print("\n> ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		// Slash prefix → deterministic command dispatcher, no AI invoked.
		if strings.HasPrefix(input, "/") {
			if err := dispatchSlash(input); err != nil {
				if err == errExit {
					fmt.Println("Goodbye!")
					break
				}
				fmt.Printf("Error: %v\n", err)
			}
			continue
		}

		// No slash prefix → route to the assistant.
		fmt.Println("[AI] Processing...")
		result, err := svc.AssistantQuery(ctx, input, business.BusinessCode)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		switch result.Kind {

		case app.AssistantKindMessage:
			fmt.Printf("\n[AI]: %s\n", result.Message)

		case app.AssistantKindInvoice:
			printInvoiceDetail(result.Invoice)

		case app.AssistantKindEmployeeDraft:
			printEmployeeDraft(result.Draft)
			fmt.Print("\nAdd this employee? (y/n): ")
			if readYes(reader) {
				applied, err := svc.ApplyEmployeeDraft(ctx, business.BusinessCode, app.EmployeeDraftInput{
					Name:           result.Draft.Name,
					Email:          result.Draft.Email,
					JobTitle:       result.Draft.JobTitle,
					StartDate:      result.Draft.StartDate,
					EmploymentType: result.Draft.EmploymentType,
				})
				if err != nil {
					fmt.Printf("Employee creation FAILED: %v\n", err)
				} else {
					fmt.Printf("Employee %s added (id %d).\n", applied.Employee.Name, applied.Employee.ID)
				}
			} else {
				fmt.Println("Cancelled.")
			}

		case app.AssistantKindInvoiceStatus:
			fmt.Printf("\n%s (y/n): ", result.Message)
			if readYes(reader) {
				updated, err := svc.SetInvoiceStatus(ctx, business.BusinessCode,
					result.Intent.InvoiceNumber, result.Intent.NewStatus)
				if err != nil {
					fmt.Printf("Status update FAILED: %v\n", err)
				} else {
					fmt.Printf("Invoice %s is now %s.\n", updated.Invoice.InvoiceNumber, updated.Invoice.Status)
				}
			} else {
				fmt.Println("Cancelled.")
			}
		}
	}
}

// readYes reads a line and reports whether the user typed y/yes.
func readYes(reader *bufio.Reader) bool {
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(strings.ToLower(choice))
	return choice == "y" || choice == "yes"
}
