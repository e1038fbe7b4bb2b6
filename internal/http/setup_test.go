package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/database/books"
	"github.com/mrlokans/homelibrary/internal/database/dbtest"
	"github.com/mrlokans/homelibrary/internal/database/journals"
	"github.com/mrlokans/homelibrary/internal/database/lists"
	"github.com/mrlokans/homelibrary/internal/database/ratings"
	"github.com/mrlokans/homelibrary/internal/database/statuses"
	"github.com/mrlokans/homelibrary/internal/database/tags"
	"github.com/mrlokans/homelibrary/internal/database/users"
	"github.com/mrlokans/homelibrary/internal/services"
)

type testServer struct {
	handler http.Handler
	db      *database.Database
}

func newRouterConfig(db *database.Database) RouterConfig {
	return RouterConfig{
		Books:    services.NewBookService(books.NewRepository(db.DB), nil),
		Journals: journals.NewRepository(db.DB),
		Ratings:  ratings.NewRepository(db.DB),
		Statuses: statuses.NewRepository(db.DB),
		Tags:     tags.NewRepository(db.DB),
		Genres:   tags.NewGenreRepository(db.DB),
		Users:    users.NewRepository(db.DB),
		Lists:    lists.NewRepository(db.DB),
		Database: db,
		Version:  "test",
	}
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	return &testServer{handler: NewRouter(newRouterConfig(db)), db: db}
}

// asUser returns the header map identifying userID.
func asUser(userID int64) map[string]string {
	return map[string]string{HeaderCurrentUser: strconv.FormatInt(userID, 10)}
}

func (s *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
