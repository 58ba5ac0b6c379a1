// verify-assistant smoke-tests the live OpenAI-backed assistant without a
// database: classification, employee extraction, and invoice interpretation.
//
// Usage: OPENAI_API_KEY=... go run ./cmd/verify-assistant
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"bizdesk/internal/ai"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}

	assistant := ai.NewAssistant(ai.NewOpenAIOracle(apiKey))
	ctx := context.Background()

	query := "Add John Smith as a full-time developer starting next Monday, email john@example.com"

	fmt.Printf("CLASSIFYING: %s\n", query)
	classification, err := assistant.ClassifyTask(ctx, query)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Printf("  task_type: %s\n", classification.TaskType)
	fmt.Printf("  message:   %s\n", classification.Message)

	fmt.Println("\nEXTRACTING EMPLOYEE:")
	draft, err := assistant.ExtractEmployee(ctx, query, time.Now())
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Printf("  success:    %v\n", draft.Success)
	fmt.Printf("  name:       %s\n", draft.Name)
	fmt.Printf("  email:      %s\n", draft.Email)
	fmt.Printf("  job_title:  %s\n", draft.JobTitle)
	fmt.Printf("  start_date: %s\n", draft.StartDate)
	fmt.Printf("  type:       %s\n", draft.EmploymentType)

	invoiceQuery := "Mark invoice INV-2026-0001 as paid"
	fmt.Printf("\nINTERPRETING INVOICE REQUEST: %s\n", invoiceQuery)
	intent, err := assistant.InterpretInvoiceIntent(ctx, invoiceQuery)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Printf("  intent:         %s\n", intent.Intent)
	fmt.Printf("  invoice_number: %s\n", intent.InvoiceNumber)
	fmt.Printf("  new_status:     %s\n", intent.NewStatus)
	if intent.Message != "" {
		fmt.Printf("  message:        %s\n", intent.Message)
	}
}
