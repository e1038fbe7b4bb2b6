package journals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/database/dbtest"
	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

const backdated = "2000-01-01 00:00:00.000"

func setupTestRepo(t *testing.T) (*Repository, *database.Database, int64, int64) {
	t.Helper()
	db := dbtest.Open(t)
	userID := dbtest.CreateUser(t, db, "Ada")
	bookID := dbtest.CreateBook(t, db, userID, "T", "A")
	return NewRepository(db.DB), db, userID, bookID
}

func strPtr(s string) *string { return &s }

func TestRepository_Create(t *testing.T) {
	repo, db, userID, bookID := setupTestRepo(t)
	ctx := context.Background()
	dbtest.SetBookUpdatedAt(t, db, bookID, backdated)

	entry, err := repo.Create(ctx, bookID, userID, "Chapter 1", "Great start")
	require.NoError(t, err)
	assert.Equal(t, bookID, entry.BookID)
	assert.Equal(t, userID, entry.UserID)
	assert.Equal(t, "Chapter 1", entry.Title)
	assert.Equal(t, "Great start", entry.Content)

	assert.NotEqual(t, backdated, dbtest.BookUpdatedAt(t, db, bookID))

	t.Run("missing book", func(t *testing.T) {
		_, err := repo.Create(ctx, 9999, userID, "x", "")
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("unknown author leaves the book untouched", func(t *testing.T) {
		dbtest.SetBookUpdatedAt(t, db, bookID, backdated)

		_, err := repo.Create(ctx, bookID, 9999, "x", "")
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
		assert.Equal(t, backdated, dbtest.BookUpdatedAt(t, db, bookID))
	})
}

func TestRepository_ListForBook(t *testing.T) {
	repo, db, userID, bookID := setupTestRepo(t)
	ctx := context.Background()
	otherBook := dbtest.CreateBook(t, db, userID, "Other", "B")

	first, err := repo.Create(ctx, bookID, userID, "first", "")
	require.NoError(t, err)
	second, err := repo.Create(ctx, bookID, userID, "second", "")
	require.NoError(t, err)
	_, err = repo.Create(ctx, otherBook, userID, "elsewhere", "")
	require.NoError(t, err)

	entries, err := repo.ListForBook(ctx, bookID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)

	t.Run("book without entries", func(t *testing.T) {
		empty := dbtest.CreateBook(t, db, userID, "Empty", "C")
		entries, err := repo.ListForBook(ctx, empty)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("deleted book is not found", func(t *testing.T) {
		require.NoError(t, db.DB.Exec("DELETE FROM books WHERE id = ?", bookID).Error)
		_, err := repo.ListForBook(ctx, bookID)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestRepository_Update(t *testing.T) {
	repo, db, userID, bookID := setupTestRepo(t)
	ctx := context.Background()

	entry, err := repo.Create(ctx, bookID, userID, "draft", "body")
	require.NoError(t, err)
	dbtest.SetBookUpdatedAt(t, db, bookID, backdated)

	updated, err := repo.Update(ctx, bookID, entry.ID, entities.JournalChanges{Title: strPtr("final")})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, entry.CreatedAt, updated.CreatedAt)
	assert.NotEqual(t, backdated, dbtest.BookUpdatedAt(t, db, bookID))

	t.Run("missing entry is not found", func(t *testing.T) {
		_, err := repo.Update(ctx, bookID, 9999, entities.JournalChanges{Title: strPtr("x")})
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("entry under another book is not found", func(t *testing.T) {
		other := dbtest.CreateBook(t, db, userID, "Other", "B")
		_, err := repo.Update(ctx, other, entry.ID, entities.JournalChanges{Title: strPtr("x")})
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

		unchanged, err := repo.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", unchanged.Title)
	})
}

func TestRepository_List(t *testing.T) {
	repo, _, userID, bookID := setupTestRepo(t)
	ctx := context.Background()

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = repo.Create(ctx, bookID, userID, "one", "")
	require.NoError(t, err)

	entries, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = repo.GetByID(ctx, 9999)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
