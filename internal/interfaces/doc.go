// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - services.BookStore: book rows, relations and details (internal/services/interfaces.go)
//   - http.JournalStore, http.RatingStore, http.StatusStore: per-book records (internal/http/stores.go)
//   - http.LabelStore: tags and genres (internal/http/stores.go)
//   - http.UserStore, http.ListStore: users and reading lists (internal/http/stores.go)
//
// ## Cover Enrichment Interfaces
//
//   - services.PostCreateHook: runs after a book without a cover is created
//   - covers.Finder: looks up a cover URL by title and author
//   - tasks.CoverEnricher, scheduler.Backfiller: asynchronous and scheduled lookups
//
// # Adding a New Cover Source
//
//  1. Implement covers.Finder:
//
//     type GoogleBooksClient struct {
//         httpClient *http.Client
//     }
//
//     func (c *GoogleBooksClient) FindCover(ctx context.Context, title, author string) (string, error)
//
//     var _ covers.Finder = (*GoogleBooksClient)(nil)
//
//  2. Pass it to covers.NewEnricher in entrypoint.go
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/loans/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Add the store interface to internal/http/stores.go
//
//  4. Add compile-time check to checks.go:
//
//     var _ http.LoanStore = (*loans.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
