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

func bookTagNames(tags []entities.BookTag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}

func TestBooksController_CreateAndGet(t *testing.T) {
	s := setupTestServer(t)
	userID := dbtest.CreateUser(t, s.db, "Ada")

	w := s.do(http.MethodPost, "/books", `{"title":"Dune","author":"Frank Herbert","series":"Dune"}`, asUser(userID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[entities.Book](t, w)
	assert.Greater(t, created.ID, int64(0))

	w = s.do(http.MethodGet, fmt.Sprintf("/books/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[entities.BookWithDetails](t, w)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, created.ID, got.ID)
}

func TestBooksController_DetailsSerializeEmptyArrays(t *testing.T) {
	s := setupTestServer(t)
	userID := dbtest.CreateUser(t, s.db, "Ada")
	bookID := dbtest.CreateBook(t, s.db, userID, "Bare", "A")

	w := s.do(http.MethodGet, fmt.Sprintf("/books/%d", bookID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	for _, key := range []string{"tags", "genres", "journals", "ratings", "statuses"} {
		assert.Equal(t, []any{}, body[key], key)
	}
	assert.NotContains(t, body, "current_user_status")
}

func TestBooksController_Create_Validation(t *testing.T) {
	s := setupTestServer(t)
	userID := dbtest.CreateUser(t, s.db, "Ada")

	tests := []struct {
		name    string
		body    string
		headers map[string]string
	}{
		{"blank title", `{"title":"  ","author":"A"}`, asUser(userID)},
		{"missing author", `{"title":"T"}`, asUser(userID)},
		{"malformed body", `{"title":`, asUser(userID)},
		{"missing header", `{"title":"T","author":"A"}`, nil},
		{"non-numeric header", `{"title":"T","author":"A"}`, map[string]string{HeaderCurrentUser: "abc"}},
		{"unknown tag", `{"title":"T","author":"A","tags":[999]}`, asUser(userID)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/books", tc.body, tc.headers)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			resp := decode[ErrorResponse](t, w)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, "VALIDATION", resp.Code)
		})
	}
}

func TestBooksController_Get_BadID(t *testing.T) {
	s := setupTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/books/abc", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/books/404", "", nil).Code)
}

func TestBooksController_ReplaceTags(t *testing.T) {
	s := setupTestServer(t)
	userID := dbtest.CreateUser(t, s.db, "U")
	bookID := dbtest.CreateBook(t, s.db, userID, "B", "A")
	tag1 := dbtest.CreateTag(t, s.db, userID, "Tag1")
	path := fmt.Sprintf("/books/%d", bookID)

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPut, path, fmt.Sprintf(`{"tags":[%d,%d]}`, tag1, tag1), asUser(userID))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		book := decode[entities.BookWithDetails](t, w)
		assert.Equal(t, []string{"Tag1"}, bookTagNames(book.Tags))
	}

	w := s.do(http.MethodPut, path, `{"tags":[]}`, asUser(userID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[entities.BookWithDetails](t, w).Tags)
}

func TestBooksController_Update(t *testing.T) {
	s := setupTestServer(t)
	userID := dbtest.CreateUser(t, s.db, "Ada")
	genre := dbtest.CreateGenre(t, s.db, userID, "Fantasy")

	w := s.do(http.MethodPost, "/books", `{"title":"Old","author":"A","series":"S","cover_image":"c.jpg"}`, asUser(userID))
	require.Equal(t, http.StatusCreated, w.Code)
	path := fmt.Sprintf("/books/%d", decode[entities.Book](t, w).ID)

	t.Run("partial update with null series", func(t *testing.T) {
		body := fmt.Sprintf(`{"title":"New","series":null,"genres":[%d]}`, genre)
		w := s.do(http.MethodPut, path, body, asUser(userID))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		book := decode[entities.BookWithDetails](t, w)
		assert.Equal(t, "New", book.Title)
		assert.Equal(t, "A", book.Author)
		assert.Nil(t, book.Series)
		require.NotNil(t, book.CoverImage)
		assert.Equal(t, "c.jpg", *book.CoverImage)
		assert.Equal(t, []string{"Fantasy"}, bookTagNames(book.Genres))
	})

	t.Run("null title is rejected", func(t *testing.T) {
		w := s.do(http.MethodPut, path, `{"title":null}`, asUser(userID))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires the user header", func(t *testing.T) {
		w := s.do(http.MethodPut, path, `{"title":"X"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing book", func(t *testing.T) {
		w := s.do(http.MethodPut, "/books/9999", `{"title":"X"}`, asUser(userID))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBooksController_Delete(t *testing.T) {
	s := setupTestServer(t)
	userID := dbtest.CreateUser(t, s.db, "Ada")
	tag := dbtest.CreateTag(t, s.db, userID, "fiction")
	genre := dbtest.CreateGenre(t, s.db, userID, "Fantasy")

	body := fmt.Sprintf(`{"title":"Doomed","author":"A","tags":[%d],"genres":[%d]}`, tag, genre)
	w := s.do(http.MethodPost, "/books", body, asUser(userID))
	require.Equal(t, http.StatusCreated, w.Code)
	bookID := decode[entities.Book](t, w).ID
	path := fmt.Sprintf("/books/%d", bookID)

	w = s.do(http.MethodPost, path+"/journals", `{"title":"J1","content":"notes"}`, asUser(userID))
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	details := decode[entities.BookWithDetails](t, w)
	require.Len(t, details.Journals, 1)
	assert.Equal(t, "J1", details.Journals[0].Title)

	w = s.do(http.MethodDelete, path, "", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path+"/journals", "", nil).Code)
	assert.Empty(t, decode[[]entities.BookWithDetails](t, s.do(http.MethodGet, "/books", "", nil)))

	assert.Len(t, decode[[]entities.Tag](t, s.do(http.MethodGet, "/tags", "", nil)), 1)
	assert.Len(t, decode[[]entities.Tag](t, s.do(http.MethodGet, "/genres", "", nil)), 1)

	t.Run("second delete is not found", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, path, "", nil).Code)
	})

	t.Run("non-positive id is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodDelete, "/books/0", "", nil).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodDelete, "/books/-3", "", nil).Code)
	})
}

func TestBooksController_Search(t *testing.T) {
	s := setupTestServer(t)
	userID := dbtest.CreateUser(t, s.db, "Ada")
	dbtest.CreateBook(t, s.db, userID, "Rust Programming", "Steve")
	dbtest.CreateBook(t, s.db, userID, "Python Cookbook", "David")

	w := s.do(http.MethodGet, "/books?search=Rust", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	found := decode[[]entities.BookWithDetails](t, w)
	require.Len(t, found, 1)
	assert.Equal(t, "Rust Programming", found[0].Title)

	w = s.do(http.MethodGet, "/books", "", nil)
	assert.Len(t, decode[[]entities.BookWithDetails](t, w), 2)
}

func TestBooksController_CurrentUserStatus(t *testing.T) {
	s := setupTestServer(t)
	userID := dbtest.CreateUser(t, s.db, "Ada")
	bookID := dbtest.CreateBook(t, s.db, userID, "T", "A")
	path := fmt.Sprintf("/books/%d", bookID)

	w := s.do(http.MethodPost, path+"/status", `{"status_id":2}`, asUser(userID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	book := decode[entities.BookWithDetails](t, s.do(http.MethodGet, path, "", asUser(userID)))
	require.NotNil(t, book.CurrentUserStatus)
	assert.Equal(t, entities.StatusReading, *book.CurrentUserStatus)

	t.Run("unparsable optional header is ignored", func(t *testing.T) {
		w := s.do(http.MethodGet, path, "", map[string]string{HeaderCurrentUser: "nope"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, decode[entities.BookWithDetails](t, w).CurrentUserStatus)
	})
}
