package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/homelibrary/internal/database/dbtest"
	"github.com/mrlokans/homelibrary/internal/entities"
)

func TestJournalsController(t *testing.T) {
	s := setupTestServer(t)
	userID := dbtest.CreateUser(t, s.db, "Ada")
	bookID := dbtest.CreateBook(t, s.db, userID, "T", "A")
	bookPath := fmt.Sprintf("/books/%d/journals", bookID)

	dbtest.SetBookUpdatedAt(t, s.db, bookID, "2000-01-01 00:00:00.000")

	w := s.do(http.MethodPost, bookPath, `{"title":" First ","content":"c"}`, asUser(userID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[entities.JournalEntry](t, w)
	assert.Equal(t, "First", first.Title)
	assert.Equal(t, userID, first.UserID)
	assert.NotEqual(t, "2000-01-01 00:00:00.000", dbtest.BookUpdatedAt(t, s.db, bookID), "creating an entry bumps the book")

	// Force a deterministic order.
	require.NoError(t, s.db.DB.Exec("UPDATE journal_entries SET created_at = ? WHERE id = ?", "2001-01-01 00:00:00.000", first.ID).Error)
	w = s.do(http.MethodPost, bookPath, `{"title":"Second"}`, asUser(userID))
	require.Equal(t, http.StatusCreated, w.Code)
	second := decode[entities.JournalEntry](t, w)

	t.Run("list for book is newest first", func(t *testing.T) {
		entries := decode[[]entities.JournalEntry](t, s.do(http.MethodGet, bookPath, "", nil))
		require.Len(t, entries, 2)
		assert.Equal(t, second.ID, entries[0].ID)
		assert.Equal(t, first.ID, entries[1].ID)
	})

	t.Run("list all and get by id", func(t *testing.T) {
		assert.Len(t, decode[[]entities.JournalEntry](t, s.do(http.MethodGet, "/journals", "", nil)), 2)

		w := s.do(http.MethodGet, fmt.Sprintf("/journals/%d", first.ID), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "First", decode[entities.JournalEntry](t, w).Title)

		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/journals/9999", "", nil).Code)
	})

	t.Run("update keeps absent fields", func(t *testing.T) {
		w := s.do(http.MethodPut, fmt.Sprintf("%s/%d", bookPath, first.ID), `{"content":"edited"}`, asUser(userID))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		entry := decode[entities.JournalEntry](t, w)
		assert.Equal(t, "First", entry.Title)
		assert.Equal(t, "edited", entry.Content)
	})

	t.Run("update errors", func(t *testing.T) {
		w := s.do(http.MethodPut, fmt.Sprintf("%s/%d", bookPath, first.ID), `{"title":" "}`, asUser(userID))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(http.MethodPut, fmt.Sprintf("%s/9999", bookPath), `{"title":"X"}`, asUser(userID))
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = s.do(http.MethodPut, fmt.Sprintf("%s/%d", bookPath, first.ID), `{"title":"X"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create errors", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, bookPath, `{"content":"no title"}`, asUser(userID)).Code)
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/books/9999/journals", `{"title":"X"}`, asUser(userID)).Code)
	})
}
