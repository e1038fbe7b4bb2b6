// Package journals provides database operations for journal entries.
// Every write also bumps the parent book's updated_at in the same
// transaction.
package journals

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

const columns = "id, book_id, user_id, title, content, created_at, updated_at"

// Repository handles journal entry database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every entry, newest first.
func (r *Repository) List(ctx context.Context) ([]entities.JournalEntry, error) {
	entries := []entities.JournalEntry{}
	err := r.db.WithContext(ctx).Table("journal_entries").Select(columns).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.JournalEntry, error) {
	var entry entities.JournalEntry
	err := r.db.WithContext(ctx).Table("journal_entries").Select(columns).Where("id = ?", id).Take(&entry).Error
	if err != nil {
		return nil, database.NotFoundOr(err, fmt.Sprintf("journal entry %d not found", id))
	}
	return &entry, nil
}

// ListForBook returns the book's entries, newest first. A missing book is
// reported as not found rather than an empty list.
func (r *Repository) ListForBook(ctx context.Context, bookID int64) ([]entities.JournalEntry, error) {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Table("books").Where("id = ?", bookID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check book %d: %w", bookID, err)
	}
	if count == 0 {
		return nil, apperrors.NotFoundf("book %d not found", bookID)
	}

	entries := []entities.JournalEntry{}
	err := db.Table("journal_entries").Select(columns).
		Where("book_id = ?", bookID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

// Create adds an entry authored by userID under bookID.
func (r *Repository) Create(ctx context.Context, bookID, userID int64, title, content string) (*entities.JournalEntry, error) {
	var entry entities.JournalEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec("UPDATE books SET updated_at = "+database.Now+" WHERE id = ?", bookID)
		if result.Error != nil {
			return fmt.Errorf("touch book %d: %w", bookID, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFoundf("book %d not found", bookID)
		}

		err := tx.Raw(
			"INSERT INTO journal_entries (book_id, user_id, title, content) VALUES (?, ?, ?, ?) RETURNING "+columns,
			bookID, userID, title, content,
		).Scan(&entry).Error
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperrors.Validationf("unknown user id %d", userID).WithCause(err)
			}
			return fmt.Errorf("insert journal entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update applies changes to the entry identified by bookID and id. The
// current values are fetched first; a missing entry fails before any write.
func (r *Repository) Update(ctx context.Context, bookID, id int64, changes entities.JournalChanges) (*entities.JournalEntry, error) {
	var entry entities.JournalEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entities.JournalEntry
		err := tx.Table("journal_entries").Select(columns).
			Where("id = ? AND book_id = ?", id, bookID).
			Take(&current).Error
		if err != nil {
			return database.NotFoundOr(err, fmt.Sprintf("journal entry %d not found for book %d", id, bookID))
		}

		title, content := current.Title, current.Content
		if changes.Title != nil {
			title = *changes.Title
		}
		if changes.Content != nil {
			content = *changes.Content
		}

		err = tx.Raw(
			"UPDATE journal_entries SET title = ?, content = ?, updated_at = "+database.Now+
				" WHERE id = ? RETURNING "+columns,
			title, content, id,
		).Scan(&entry).Error
		if err != nil {
			return fmt.Errorf("update journal entry %d: %w", id, err)
		}

		return tx.Exec("UPDATE books SET updated_at = "+database.Now+" WHERE id = ?", bookID).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
