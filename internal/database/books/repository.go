// Package books provides database operations for books and the book details
// aggregate.
//
// # Usage
//
//	repo := books.NewRepository(db.DB)
//	book, err := repo.Create(ctx, entities.NewBook{UserID: 1, Title: "T", Author: "A"})
//	details, err := repo.GetWithDetails(ctx, book.ID, nil)
package books

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

const bookColumns = "id, user_id, cover_image, title, author, series, created_at, updated_at"

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the book and, when given, its tag and genre sets in one
// transaction.
func (r *Repository) Create(ctx context.Context, in entities.NewBook) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(
			"INSERT INTO books (user_id, cover_image, title, author, series) VALUES (?, ?, ?, ?, ?) RETURNING "+bookColumns,
			in.UserID, in.CoverImage, in.Title, in.Author, in.Series,
		).Scan(&book).Error
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperrors.Validationf("unknown user id %d", in.UserID).WithCause(err)
			}
			return fmt.Errorf("insert book: %w", err)
		}

		if in.Tags != nil {
			if err := database.ReplaceRelations(tx, book.ID, database.TagRelation, in.Tags); err != nil {
				return err
			}
		}
		if in.Genres != nil {
			if err := database.ReplaceRelations(tx, book.ID, database.GenreRelation, in.Genres); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByID returns the book row without details.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Book, error) {
	return getBook(r.db.WithContext(ctx), id)
}

func getBook(db *gorm.DB, id int64) (*entities.Book, error) {
	var book entities.Book
	err := db.Table("books").Select(bookColumns).Where("id = ?", id).Take(&book).Error
	if err != nil {
		return nil, database.NotFoundOr(err, fmt.Sprintf("book %d not found", id))
	}
	return &book, nil
}

// List returns all books, most recently updated first.
func (r *Repository) List(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.WithContext(ctx).Table("books").Select(bookColumns).
		Order("updated_at DESC, id DESC").
		Find(&books).Error
	return books, err
}

// Search matches term as a substring of title, author or series using
// SQLite LIKE semantics.
func (r *Repository) Search(ctx context.Context, term string) ([]entities.Book, error) {
	pattern := "%" + term + "%"
	books := []entities.Book{}
	err := r.db.WithContext(ctx).Table("books").Select(bookColumns).
		Where("title LIKE ? OR author LIKE ? OR series LIKE ?", pattern, pattern, pattern).
		Order("updated_at DESC, id DESC").
		Find(&books).Error
	return books, err
}

// Update merges changes into the current row and replaces the tag and genre
// sets that are present, all in one transaction.
func (r *Repository) Update(ctx context.Context, id int64, changes entities.BookChanges) (*entities.Book, error) {
	var updated entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getBook(tx, id)
		if err != nil {
			return err
		}

		title := current.Title
		if changes.Title.Set {
			title = strings.TrimSpace(changes.Title.Value)
		}
		author := current.Author
		if changes.Author.Set {
			author = strings.TrimSpace(changes.Author.Value)
		}
		if title == "" || author == "" {
			return apperrors.Validation("title and author must not be empty")
		}

		err = tx.Raw(
			"UPDATE books SET cover_image = ?, title = ?, author = ?, series = ?, updated_at = "+database.Now+
				" WHERE id = ? RETURNING "+bookColumns,
			changes.CoverImage.Merge(current.CoverImage), title, author, changes.Series.Merge(current.Series), id,
		).Scan(&updated).Error
		if err != nil {
			return fmt.Errorf("update book %d: %w", id, err)
		}

		if changes.Tags.Set {
			if err := database.ReplaceRelations(tx, id, database.TagRelation, changes.Tags.Value); err != nil {
				return err
			}
		}
		if changes.Genres.Set {
			if err := database.ReplaceRelations(tx, id, database.GenreRelation, changes.Genres.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateCover sets the cover reference of a book.
func (r *Repository) UpdateCover(ctx context.Context, id int64, coverURL string) error {
	result := r.db.WithContext(ctx).Exec(
		"UPDATE books SET cover_image = ?, updated_at = "+database.Now+" WHERE id = ?", coverURL, id,
	)
	if result.Error != nil {
		return fmt.Errorf("update cover for book %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundf("book %d not found", id)
	}
	return nil
}

// MissingCovers returns up to limit books without a cover, oldest first.
func (r *Repository) MissingCovers(ctx context.Context, limit int) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.WithContext(ctx).Table("books").Select(bookColumns).
		Where("cover_image IS NULL OR TRIM(cover_image) = ''").
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&books).Error
	return books, err
}

// Delete removes the book and every row that references it. Zero deleted
// book rows rolls the transaction back and reports not found.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"book_tags", "book_genres", "journal_entries", "ratings", "reading_status", "list_books"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE book_id = ?", id).Error; err != nil {
				return fmt.Errorf("delete %s for book %d: %w", table, id, err)
			}
		}

		result := tx.Exec("DELETE FROM books WHERE id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete book %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFoundf("book %d not found", id)
		}
		return nil
	})
}
