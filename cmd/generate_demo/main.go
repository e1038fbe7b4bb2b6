// Command generate_demo creates a demo database filled with the sample library.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/demo"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	for _, path := range []string{*dbPath, *dbPath + "-wal", *dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Failed to remove existing demo database: %v", err)
		}
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	result, err := demo.Seed(context.Background(), db)
	if err != nil {
		log.Fatalf("Failed to seed demo database: %v", err)
	}

	log.Printf("Demo database ready: %d users, %d books, %d lists", result.Users, result.Books, result.Lists)
}
