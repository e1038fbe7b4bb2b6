package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/homelibrary/internal/covers"
	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/database/books"
	"github.com/mrlokans/homelibrary/internal/database/journals"
	"github.com/mrlokans/homelibrary/internal/database/lists"
	"github.com/mrlokans/homelibrary/internal/database/ratings"
	"github.com/mrlokans/homelibrary/internal/database/statuses"
	"github.com/mrlokans/homelibrary/internal/database/tags"
	"github.com/mrlokans/homelibrary/internal/database/users"
	"github.com/mrlokans/homelibrary/internal/http"
	"github.com/mrlokans/homelibrary/internal/scheduler"
	"github.com/mrlokans/homelibrary/internal/services"
	"github.com/mrlokans/homelibrary/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookStore = (*books.Repository)(nil)
var _ covers.BookStore = (*books.Repository)(nil)

var _ http.JournalStore = (*journals.Repository)(nil)
var _ http.RatingStore = (*ratings.Repository)(nil)
var _ http.StatusStore = (*statuses.Repository)(nil)
var _ http.LabelStore = (*tags.Repository)(nil)
var _ http.UserStore = (*users.Repository)(nil)
var _ http.ListStore = (*lists.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.BookService = (*services.BookService)(nil)

// =============================================================================
// Cover Enrichment
// =============================================================================

// PostCreateHook implementations
var _ services.PostCreateHook = (*covers.Enricher)(nil)
var _ services.PostCreateHook = (*tasks.CoverEnqueuer)(nil)

var _ covers.Finder = (*covers.Client)(nil)
var _ tasks.CoverEnricher = (*covers.Enricher)(nil)
var _ scheduler.Backfiller = (*covers.Enricher)(nil)
