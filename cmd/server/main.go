package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "bizdesk/internal/adapters/web"
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
		log.Fatalf("database: %v", err)
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

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
