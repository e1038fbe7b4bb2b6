package config

const (
	// DefaultDatabasePath is where the SQLite file lives unless DATABASE_FILE says otherwise.
	DefaultDatabasePath = "data/development.db"

	DefaultCoverAPIURL    = "https://bookcover.longitood.com/bookcover"
	DefaultOpenLibraryURL = "https://openlibrary.org"
)
