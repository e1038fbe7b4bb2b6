package services

import (
	"context"

	"github.com/mrlokans/homelibrary/internal/entities"
)

// BookStore is the persistence the book service builds on. It is satisfied
// by books.Repository.
type BookStore interface {
	Create(ctx context.Context, in entities.NewBook) (*entities.Book, error)
	Update(ctx context.Context, id int64, changes entities.BookChanges) (*entities.Book, error)
	Delete(ctx context.Context, id int64) error
	GetWithDetails(ctx context.Context, id int64, currentUserID *int64) (*entities.BookWithDetails, error)
	GetAllWithDetails(ctx context.Context, currentUserID *int64) ([]entities.BookWithDetails, error)
	SearchWithDetails(ctx context.Context, term string, currentUserID *int64) ([]entities.BookWithDetails, error)
}

// PostCreateHook runs after a book without a cover has been stored. It may
// modify the book in place and must not fail the create.
type PostCreateHook interface {
	AfterCreate(ctx context.Context, book *entities.Book)
}
