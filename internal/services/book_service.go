package services

import (
	"context"
	"strings"

	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

// BookService orchestrates book writes: row validation, the repository
// transaction and the optional post-create hook.
type BookService struct {
	store BookStore
	hook  PostCreateHook
}

// NewBookService creates a BookService. hook may be nil.
func NewBookService(store BookStore, hook PostCreateHook) *BookService {
	return &BookService{store: store, hook: hook}
}

// Create stores a new book and its tag and genre links. When no cover was
// given the post-create hook gets a chance to find one.
func (s *BookService) Create(ctx context.Context, in entities.NewBook) (*entities.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	if in.Title == "" {
		return nil, apperrors.Validation("title must not be empty")
	}
	if in.Author == "" {
		return nil, apperrors.Validation("author must not be empty")
	}
	if in.CoverImage != nil && strings.TrimSpace(*in.CoverImage) == "" {
		in.CoverImage = nil
	}

	book, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	if s.hook != nil && !book.HasCover() {
		s.hook.AfterCreate(ctx, book)
	}
	return book, nil
}

// Update applies changes and returns the book with its details as seen by
// currentUserID.
func (s *BookService) Update(ctx context.Context, id int64, changes entities.BookChanges, currentUserID *int64) (*entities.BookWithDetails, error) {
	if _, err := s.store.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.store.GetWithDetails(ctx, id, currentUserID)
}

// Delete removes a book. Non-positive ids are rejected without a query.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.Validationf("invalid book id %d", id)
	}
	return s.store.Delete(ctx, id)
}

func (s *BookService) Get(ctx context.Context, id int64, currentUserID *int64) (*entities.BookWithDetails, error) {
	return s.store.GetWithDetails(ctx, id, currentUserID)
}

// List returns every book, or only those matching search when it is not
// blank.
func (s *BookService) List(ctx context.Context, search string, currentUserID *int64) ([]entities.BookWithDetails, error) {
	if term := strings.TrimSpace(search); term != "" {
		return s.store.SearchWithDetails(ctx, term, currentUserID)
	}
	return s.store.GetAllWithDetails(ctx, currentUserID)
}
