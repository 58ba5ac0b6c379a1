package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"bizdesk/internal/adapters/cli"
	"bizdesk/internal/adapters/repl"
	"bizdesk/internal/ai"
	"bizdesk/internal/app"
	"bizdesk/internal/core"
	"bizdesk/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	employeeService := core.NewEmployeeService(pool)
	invoiceService := core.NewInvoiceService(pool)
	appointmentService := core.NewAppointmentService(pool)
	transactionService := core.NewTransactionService(pool)
	reportingService := core.NewReportingService(pool)
	userService := core.NewUserService(pool)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set")
	}
	assistant := ai.NewAssistant(ai.NewOpenAIOracle(apiKey))

	svc := app.NewAppService(pool, employeeService, invoiceService, appointmentService,
		transactionService, reportingService, userService, assistant)

	// Subcommand present → one-shot CLI; otherwise interactive REPL.
	if len(os.Args) > 1 {
		cli.Run(ctx, svc, os.Args[1:])
		return
	}
	repl.Run(ctx, svc, bufio.NewReader(os.Stdin))
}
