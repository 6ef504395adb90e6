// restore-seed is a one-shot tool to restore the console's seed data: the
// bootstrap admin account, the demo companies, and empty menu hide lists.
// Run it when a development database has been wiped or misconfigured.
//
// Usage: go run ./cmd/restore-seed
package main

import (
	"context"
	"log"
	"os"

	"erp-admin/internal/core"
	"erp-admin/internal/db"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	password := os.Getenv("ERP_SEED_ADMIN_PASSWORD")
	if len(password) < 8 {
		log.Fatal("ERP_SEED_ADMIN_PASSWORD must be set (min 8 characters)")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Restoring admin account...")
	_, err = tx.Exec(ctx, `
		INSERT INTO users (username, email, password_hash, role, is_active)
		VALUES ('admin', 'admin@example.com', $1, 'admin', true)
		ON CONFLICT (username) DO UPDATE
		  SET password_hash = EXCLUDED.password_hash,
		      role          = 'admin',
		      is_active     = true;
	`, string(hash))
	if err != nil {
		log.Fatalf("Failed to restore admin: %v", err)
	}

	log.Println("Restoring demo companies...")
	_, err = tx.Exec(ctx, `
		INSERT INTO companies (name, email, base_currency)
		SELECT s.name, s.email, s.currency
		FROM (VALUES
		    ('Local Operations India', 'ops@example.in',  'INR'),
		    ('Acme Trading',           'hq@acme.example', 'USD'),
		    ('Globex Europe',          'eu@globex.example','EUR')
		) AS s(name, email, currency)
		WHERE NOT EXISTS (SELECT 1 FROM companies c WHERE c.name = s.name);
	`)
	if err != nil {
		log.Fatalf("Failed to restore companies: %v", err)
	}

	log.Println("Clearing menu hide lists...")
	_, err = tx.Exec(ctx, `
		INSERT INTO options (option_name, option_value)
		VALUES ($1, '[]'), ($2, '[]')
		ON CONFLICT (option_name) DO UPDATE
		  SET option_value = EXCLUDED.option_value,
		      updated_at   = NOW();
	`, core.OptionHiddenMainMenu, core.OptionHiddenToolbar)
	if err != nil {
		log.Fatalf("Failed to reset hide lists: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed data restored successfully.")
}
