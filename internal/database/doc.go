// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and options
//	├── migrate.go       # Embedded, ordered SQL migrations
//	├── relations.go     # Replace-all for book tags and genres
//	├── errors.go        # SQLite error classification
//	├── books/           # Book CRUD and details aggregation
//	├── tags/            # Tags and genres
//	├── journals/        # Journal entries
//	├── ratings/         # Per-user ratings
//	├── statuses/        # Per-user reading status
//	├── lists/           # Per-user reading lists
//	├── users/           # User management
//	└── dbtest/          # Test databases and fixtures
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./data/library.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	tagsRepo := tags.NewRepository(db.DB)
//
//	book, err := booksRepo.GetWithDetails(ctx, 123, &userID)
//
// Repositories report missing rows as errors.ErrNotFound and constraint
// problems as errors.ErrValidation.
//
// # Adding a New Domain
//
//  1. Add a migration: internal/database/migrations/NNNN_name.sql
//  2. Create a new sub-package with a Repository struct holding a *gorm.DB
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add compile-time interface check in internal/interfaces/checks.go
package database
