// verify-db checks that the schema is present and reports row counts for the
// core tables. Useful as a smoke test after running migrations and seeds.
//
// Usage: go run ./cmd/verify-db
package main

import (
	"context"
	"fmt"
	"log"

	"bizdesk/internal/db"

	"github.com/joho/godotenv"
)

var tables = []string{
	"businesses",
	"users",
	"employees",
	"invoices",
	"invoice_sequences",
	"appointments",
	"transactions",
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	ok := true
	for _, table := range tables {
		var count int
		err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
		if err != nil {
			fmt.Printf("  %-20s MISSING (%v)\n", table, err)
			ok = false
			continue
		}
		fmt.Printf("  %-20s %6d rows\n", table, count)
	}

	if !ok {
		log.Fatal("Schema incomplete. Run ./cmd/migrate first.")
	}

	var code, name string
	if err := pool.QueryRow(ctx,
		"SELECT business_code, name FROM businesses LIMIT 1",
	).Scan(&code, &name); err != nil {
		log.Fatal("No business found. Run ./cmd/restore-seed to create the demo business.")
	}
	fmt.Printf("\nDefault business: %s (%s)\n", code, name)
}
