package main

import (
	"context"
	"fmt"
	"os"

	"erp-admin/internal/db"
	"erp-admin/migrations"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if len(os.Args) > 1 {
		dbURL = os.Args[1]
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dbURL)
	if err != nil {
		fmt.Printf("Failed to connect to DB: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	applied, err := db.RunMigrations(ctx, pool, migrations.FS)
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
	if len(applied) == 0 {
		fmt.Println("Schema up to date.")
		return
	}
	for _, name := range applied {
		fmt.Printf("Applied %s\n", name)
	}
	fmt.Println("Migration successful.")
}
