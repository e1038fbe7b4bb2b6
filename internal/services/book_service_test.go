package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/homelibrary/internal/database/books"
	"github.com/mrlokans/homelibrary/internal/database/dbtest"
	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

type recordingHook struct {
	seen  []int64
	cover string
}

func (h *recordingHook) AfterCreate(_ context.Context, book *entities.Book) {
	h.seen = append(h.seen, book.ID)
	if h.cover != "" {
		book.CoverImage = &h.cover
	}
}

func setupService(t *testing.T, hook PostCreateHook) (*BookService, int64) {
	t.Helper()
	db := dbtest.Open(t)
	userID := dbtest.CreateUser(t, db, "Ada")
	return NewBookService(books.NewRepository(db.DB), hook), userID
}

func strPtr(s string) *string { return &s }

func TestBookService_Create(t *testing.T) {
	hook := &recordingHook{cover: "https://img.test/c.jpg"}
	svc, userID := setupService(t, hook)
	ctx := context.Background()

	t.Run("blank cover triggers the hook", func(t *testing.T) {
		book, err := svc.Create(ctx, entities.NewBook{UserID: userID, Title: " Dune ", Author: "Herbert", CoverImage: strPtr("  ")})
		require.NoError(t, err)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, []int64{book.ID}, hook.seen)
		assert.Equal(t, "https://img.test/c.jpg", *book.CoverImage)
	})

	t.Run("given cover skips the hook", func(t *testing.T) {
		hook.seen = nil
		book, err := svc.Create(ctx, entities.NewBook{UserID: userID, Title: "T", Author: "A", CoverImage: strPtr("mine.jpg")})
		require.NoError(t, err)
		assert.Empty(t, hook.seen)
		assert.Equal(t, "mine.jpg", *book.CoverImage)
	})

	t.Run("blank title or author is rejected", func(t *testing.T) {
		hook.seen = nil
		_, err := svc.Create(ctx, entities.NewBook{UserID: userID, Title: "", Author: "A"})
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
		_, err = svc.Create(ctx, entities.NewBook{UserID: userID, Title: "T", Author: "   "})
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
		assert.Empty(t, hook.seen)
	})

	t.Run("failed insert skips the hook", func(t *testing.T) {
		hook.seen = nil
		_, err := svc.Create(ctx, entities.NewBook{UserID: userID, Title: "T", Author: "A", Tags: []int64{404}})
		assert.Error(t, err)
		assert.Empty(t, hook.seen)
	})
}

func TestBookService_CreateWithoutHook(t *testing.T) {
	svc, userID := setupService(t, nil)

	book, err := svc.Create(context.Background(), entities.NewBook{UserID: userID, Title: "T", Author: "A"})
	require.NoError(t, err)
	assert.Nil(t, book.CoverImage)
}

func TestBookService_UpdateReturnsDetails(t *testing.T) {
	svc, userID := setupService(t, nil)
	ctx := context.Background()

	book, err := svc.Create(ctx, entities.NewBook{UserID: userID, Title: "T", Author: "A"})
	require.NoError(t, err)

	details, err := svc.Update(ctx, book.ID, entities.BookChanges{Series: entities.NewNullable("Saga")}, &userID)
	require.NoError(t, err)
	assert.Equal(t, "Saga", *details.Series)
	assert.NotNil(t, details.Tags)

	_, err = svc.Update(ctx, 9999, entities.BookChanges{}, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestBookService_Delete(t *testing.T) {
	svc, userID := setupService(t, nil)
	ctx := context.Background()

	for _, id := range []int64{0, -3} {
		err := svc.Delete(ctx, id)
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation), "id %d", id)
	}

	book, err := svc.Create(ctx, entities.NewBook{UserID: userID, Title: "T", Author: "A"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, book.ID))

	_, err = svc.Get(ctx, book.ID, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestBookService_List(t *testing.T) {
	svc, userID := setupService(t, nil)
	ctx := context.Background()

	for _, title := range []string{"Rust Programming", "Python Cookbook"} {
		_, err := svc.Create(ctx, entities.NewBook{UserID: userID, Title: title, Author: "A"})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "   ", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := svc.List(ctx, "Rust", nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Rust Programming", found[0].Title)
}
