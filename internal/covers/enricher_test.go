package covers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/homelibrary/internal/database/books"
	"github.com/mrlokans/homelibrary/internal/database/dbtest"
	"github.com/mrlokans/homelibrary/internal/entities"
)

type fakeFinder struct {
	covers map[string]string
	calls  []string
}

func (f *fakeFinder) FindCover(_ context.Context, title, _ string) (string, error) {
	f.calls = append(f.calls, title)
	if url, ok := f.covers[title]; ok {
		return url, nil
	}
	return "", ErrNoCover
}

func setupEnricher(t *testing.T, finder Finder) (*Enricher, *books.Repository, int64) {
	t.Helper()
	db := dbtest.Open(t)
	userID := dbtest.CreateUser(t, db, "Ada")
	repo := books.NewRepository(db.DB)
	return NewEnricher(finder, repo, nil), repo, userID
}

func TestEnricher_AfterCreate_StoresCover(t *testing.T) {
	finder := &fakeFinder{covers: map[string]string{"Dune": "https://img.test/dune.jpg"}}
	enricher, repo, userID := setupEnricher(t, finder)
	ctx := context.Background()

	book, err := repo.Create(ctx, entities.NewBook{UserID: userID, Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	enricher.AfterCreate(ctx, book)

	require.NotNil(t, book.CoverImage)
	assert.Equal(t, "https://img.test/dune.jpg", *book.CoverImage)

	stored, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book, stored)
}

func TestEnricher_AfterCreate_SwallowsFailure(t *testing.T) {
	finder := &fakeFinder{}
	enricher, repo, userID := setupEnricher(t, finder)
	ctx := context.Background()

	book, err := repo.Create(ctx, entities.NewBook{UserID: userID, Title: "Obscure", Author: "Nobody"})
	require.NoError(t, err)

	assert.NotPanics(t, func() { enricher.AfterCreate(ctx, book) })
	assert.Nil(t, book.CoverImage)
	assert.Equal(t, []string{"Obscure"}, finder.calls)
}

func TestEnricher_Enrich_SkipsBooksWithCover(t *testing.T) {
	finder := &fakeFinder{}
	enricher, _, _ := setupEnricher(t, finder)

	cover := "existing.jpg"
	err := enricher.Enrich(context.Background(), &entities.Book{ID: 1, Title: "Has one", CoverImage: &cover})
	require.NoError(t, err)
	assert.Empty(t, finder.calls)
}

func TestEnricher_Backfill(t *testing.T) {
	finder := &fakeFinder{covers: map[string]string{"Found": "https://img.test/found.jpg"}}
	enricher, repo, userID := setupEnricher(t, finder)
	ctx := context.Background()

	cover := "kept.jpg"
	_, err := repo.Create(ctx, entities.NewBook{UserID: userID, Title: "Covered", Author: "A", CoverImage: &cover})
	require.NoError(t, err)
	found, err := repo.Create(ctx, entities.NewBook{UserID: userID, Title: "Found", Author: "A"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.NewBook{UserID: userID, Title: "Missing", Author: "A"})
	require.NoError(t, err)

	result, err := enricher.Backfill(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, BackfillResult{Processed: 2, Updated: 1, Failed: 1}, result)
	assert.ElementsMatch(t, []string{"Found", "Missing"}, finder.calls)

	stored, err := repo.GetByID(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/found.jpg", *stored.CoverImage)

	remaining, err := repo.MissingCovers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Missing", remaining[0].Title)
}

func TestEnricher_EnrichByID_MissingBook(t *testing.T) {
	enricher, _, _ := setupEnricher(t, &fakeFinder{})

	err := enricher.EnrichByID(context.Background(), 9999)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoCover))
}
