// restore-seed is a one-shot tool to restore the demo seed data.
// Run it after migrations when the business or demo records have been wiped.
//
// Usage: go run ./cmd/restore-seed
package main

import (
	"context"
	"log"
	"os"

	"bizdesk/internal/db"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Restoring business...")
	_, err = tx.Exec(ctx, `
		INSERT INTO businesses (business_code, name, currency)
		VALUES ('ACME', 'Acme Studio', 'USD')
		ON CONFLICT (business_code) DO UPDATE
		  SET name = EXCLUDED.name,
		      currency = EXCLUDED.currency;
	`)
	if err != nil {
		log.Fatalf("Failed to restore business: %v", err)
	}

	log.Println("Restoring admin user...")
	_, err = tx.Exec(ctx, `
		INSERT INTO users (business_id, username, email, password_hash, role, is_active)
		SELECT b.id, 'admin', 'admin@acme.example', $1, 'owner', true
		FROM businesses b
		WHERE b.business_code = 'ACME'
		ON CONFLICT (username) DO UPDATE
		  SET password_hash = EXCLUDED.password_hash,
		      is_active = true;
	`, string(hash))
	if err != nil {
		log.Fatalf("Failed to restore admin user: %v", err)
	}

	log.Println("Restoring demo employees...")
	_, err = tx.Exec(ctx, `
		INSERT INTO employees (business_id, name, email, job_title, start_date, employment_type)
		SELECT b.id, e.name, e.email, e.job_title, e.start_date::date, e.employment_type
		FROM businesses b
		CROSS JOIN (VALUES
		    ('Maria Lopez', 'maria@acme.example', 'Designer',  '2024-03-01', 'Full-time'),
		    ('Dev Patel',   'dev@acme.example',   'Developer', '2024-06-15', 'Contract')
		) AS e(name, email, job_title, start_date, employment_type)
		WHERE b.business_code = 'ACME'
		  AND NOT EXISTS (
		    SELECT 1 FROM employees x WHERE x.business_id = b.id AND x.name = e.name
		  );
	`)
	if err != nil {
		log.Fatalf("Failed to restore employees: %v", err)
	}

	log.Println("Restoring demo invoices...")
	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (business_id, invoice_number, customer_name, customer_email, amount, currency, status, issue_date)
		SELECT b.id, i.number, i.customer, i.email, i.amount::numeric, 'USD', i.status, i.issued::date
		FROM businesses b
		CROSS JOIN (VALUES
		    ('INV-2026-0001', 'Northwind Traders', 'billing@northwind.example', '1200.00', 'Sent',  '2026-07-02'),
		    ('INV-2026-0002', 'Contoso Ltd',       'ap@contoso.example',        '860.50',  'Paid',  '2026-07-18'),
		    ('INV-2026-0003', 'Fabrikam Inc',      NULL,                        '410.00',  'Draft', '2026-08-05')
		) AS i(number, customer, email, amount, status, issued)
		WHERE b.business_code = 'ACME'
		ON CONFLICT (business_id, invoice_number) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to restore invoices: %v", err)
	}

	log.Println("Syncing invoice sequence...")
	_, err = tx.Exec(ctx, `
		INSERT INTO invoice_sequences (business_id, year, last_number)
		SELECT b.id, 2026, 3 FROM businesses b WHERE b.business_code = 'ACME'
		ON CONFLICT (business_id, year) DO UPDATE
		  SET last_number = GREATEST(invoice_sequences.last_number, EXCLUDED.last_number);
	`)
	if err != nil {
		log.Fatalf("Failed to sync invoice sequence: %v", err)
	}

	log.Println("Restoring demo transactions...")
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (business_id, kind, category, description, amount, entry_date)
		SELECT b.id, t.kind, t.category, t.description, t.amount::numeric, t.entry_date::date
		FROM businesses b
		CROSS JOIN (VALUES
		    ('revenue', 'services', 'Contoso invoice paid',  '860.50', '2026-08-01'),
		    ('expense', 'rent',     'Studio rent August',    '950.00', '2026-08-03'),
		    ('expense', 'software', 'Design tool licenses',  '120.00', '2026-08-10')
		) AS t(kind, category, description, amount, entry_date)
		WHERE b.business_code = 'ACME'
		  AND NOT EXISTS (
		    SELECT 1 FROM transactions x
		    WHERE x.business_id = b.id AND x.description = t.description
		  );
	`)
	if err != nil {
		log.Fatalf("Failed to restore transactions: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed data restored successfully.")
	os.Exit(0)
}
