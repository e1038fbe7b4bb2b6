package http

import (
	"context"

	"github.com/mrlokans/homelibrary/internal/entities"
)

// BookService is the book workflow used by BooksController.
type BookService interface {
	Create(ctx context.Context, in entities.NewBook) (*entities.Book, error)
	Update(ctx context.Context, id int64, changes entities.BookChanges, currentUserID *int64) (*entities.BookWithDetails, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64, currentUserID *int64) (*entities.BookWithDetails, error)
	List(ctx context.Context, search string, currentUserID *int64) ([]entities.BookWithDetails, error)
}

// JournalStore defines the journal operations needed by JournalsController.
type JournalStore interface {
	List(ctx context.Context) ([]entities.JournalEntry, error)
	GetByID(ctx context.Context, id int64) (*entities.JournalEntry, error)
	ListForBook(ctx context.Context, bookID int64) ([]entities.JournalEntry, error)
	Create(ctx context.Context, bookID, userID int64, title, content string) (*entities.JournalEntry, error)
	Update(ctx context.Context, bookID, id int64, changes entities.JournalChanges) (*entities.JournalEntry, error)
}

type RatingStore interface {
	Upsert(ctx context.Context, userID, bookID int64, value float64) (*entities.Rating, error)
	Get(ctx context.Context, userID, bookID int64) (*entities.Rating, error)
	Delete(ctx context.Context, userID, bookID int64) error
}

type StatusStore interface {
	Upsert(ctx context.Context, userID, bookID, statusID int64) (*entities.ReadingStatus, error)
	Get(ctx context.Context, userID, bookID int64) (*entities.ReadingStatus, error)
	Delete(ctx context.Context, userID, bookID int64) error
}

// LabelStore covers both tags and genres, which share a shape.
type LabelStore interface {
	Kind() string
	List(ctx context.Context, name string) ([]entities.Tag, error)
	GetByID(ctx context.Context, id int64) (*entities.Tag, error)
	Create(ctx context.Context, userID int64, name, color string) (*entities.Tag, error)
	Update(ctx context.Context, id int64, name, color string) (*entities.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type UserStore interface {
	List(ctx context.Context) ([]entities.User, error)
	Create(ctx context.Context, name, color string, avatar *string) (*entities.User, error)
	Select(ctx context.Context, id int64) (*entities.User, error)
	Update(ctx context.Context, id int64, changes entities.UserChanges) (*entities.User, error)
}

type ListStore interface {
	ListForUser(ctx context.Context, userID int64) ([]entities.ListWithBooks, error)
	Get(ctx context.Context, id, userID int64) (*entities.ListWithBooks, error)
	Create(ctx context.Context, userID, typeID int64, name string, bookIDs []int64) (*entities.ListWithBooks, error)
	Update(ctx context.Context, id, userID int64, changes entities.ListChanges) (*entities.ListWithBooks, error)
	Delete(ctx context.Context, id, userID int64) error
}
