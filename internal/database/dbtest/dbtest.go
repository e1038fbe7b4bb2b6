// Package dbtest builds isolated, migrated databases and fixture rows for
// tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrlokans/homelibrary/internal/database"
)

// Open creates a fresh database under t.TempDir and closes it on cleanup.
func Open(t testing.TB) *database.Database {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func CreateUser(t testing.TB, db *database.Database, name string) int64 {
	t.Helper()

	var id int64
	err := db.DB.Raw("INSERT INTO users (name, color) VALUES (?, ?) RETURNING id", name, "#112233").Scan(&id).Error
	require.NoError(t, err)
	return id
}

func CreateBook(t testing.TB, db *database.Database, userID int64, title, author string) int64 {
	t.Helper()

	var id int64
	err := db.DB.Raw("INSERT INTO books (user_id, title, author) VALUES (?, ?, ?) RETURNING id",
		userID, title, author).Scan(&id).Error
	require.NoError(t, err)
	return id
}

func CreateTag(t testing.TB, db *database.Database, userID int64, name string) int64 {
	t.Helper()
	return createLabel(t, db, "tags", userID, name)
}

func CreateGenre(t testing.TB, db *database.Database, userID int64, name string) int64 {
	t.Helper()
	return createLabel(t, db, "genres", userID, name)
}

func createLabel(t testing.TB, db *database.Database, table string, userID int64, name string) int64 {
	var id int64
	err := db.DB.Raw("INSERT INTO "+table+" (user_id, name, color) VALUES (?, ?, ?) RETURNING id",
		userID, name, "#abcdef").Scan(&id).Error
	require.NoError(t, err)
	return id
}

// SetBookUpdatedAt backdates a book so a later bump is observable.
func SetBookUpdatedAt(t testing.TB, db *database.Database, bookID int64, ts string) {
	t.Helper()
	require.NoError(t, db.DB.Exec("UPDATE books SET updated_at = ? WHERE id = ?", ts, bookID).Error)
}

// BookUpdatedAt reads a book's updated_at.
func BookUpdatedAt(t testing.TB, db *database.Database, bookID int64) string {
	t.Helper()

	var ts string
	require.NoError(t, db.DB.Raw("SELECT updated_at FROM books WHERE id = ?", bookID).Scan(&ts).Error)
	return ts
}
