package http

import (
	"go.uber.org/zap"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Books    BookService
	Journals JournalStore
	Ratings  RatingStore
	Statuses StatusStore
	Tags     LabelStore
	Genres   LabelStore
	Users    UserStore
	Lists    ListStore

	// Health checks
	Database Pinger

	Logger *zap.Logger

	// Origins allowed to call the API from a browser
	CORSAllowedOrigins []string

	// Read-only demo mode
	DemoMode bool

	// Application info
	Version string
}
