// Package statuses stores one reading status per (user, book) with upsert
// semantics.
package statuses

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

const columns = "id, user_id, book_id, status_id, created_at, updated_at"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, userID, bookID, statusID int64) (*entities.ReadingStatus, error) {
	if !entities.ValidStatus(statusID) {
		return nil, apperrors.Validationf("status_id %d must be one of 0, 1, 2, 3, 99", statusID)
	}

	var status entities.ReadingStatus
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO reading_status (user_id, book_id, status_id) VALUES (?, ?, ?)
		ON CONFLICT(user_id, book_id) DO UPDATE SET status_id = excluded.status_id, updated_at = `+database.Now+`
		RETURNING `+columns,
		userID, bookID, statusID,
	).Scan(&status).Error
	if err != nil {
		return nil, database.ParentNotFoundOr(err, fmt.Sprintf("book %d or user %d not found", bookID, userID))
	}
	return &status, nil
}

// Get returns the user's status for the book, or nil when none is recorded.
func (r *Repository) Get(ctx context.Context, userID, bookID int64) (*entities.ReadingStatus, error) {
	var status entities.ReadingStatus
	err := r.db.WithContext(ctx).Table("reading_status").Select(columns).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Take(&status).Error
	if apperrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *Repository) Delete(ctx context.Context, userID, bookID int64) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM reading_status WHERE user_id = ? AND book_id = ?", userID, bookID).Error
}
