// Package ratings stores one rating per (user, book) with upsert semantics.
package ratings

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

const columns = "id, user_id, book_id, rating, created_at, updated_at"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert records the user's rating for the book, replacing any previous one.
func (r *Repository) Upsert(ctx context.Context, userID, bookID int64, value float64) (*entities.Rating, error) {
	if !entities.ValidRating(value) {
		return nil, apperrors.Validationf("rating %v must be between 0 and 5 in steps of 0.5", value)
	}

	var rating entities.Rating
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO ratings (user_id, book_id, rating) VALUES (?, ?, ?)
		ON CONFLICT(user_id, book_id) DO UPDATE SET rating = excluded.rating, updated_at = `+database.Now+`
		RETURNING `+columns,
		userID, bookID, value,
	).Scan(&rating).Error
	if err != nil {
		return nil, database.ParentNotFoundOr(err, fmt.Sprintf("book %d or user %d not found", bookID, userID))
	}
	return &rating, nil
}

// Get returns the user's rating for the book, or nil when there is none.
func (r *Repository) Get(ctx context.Context, userID, bookID int64) (*entities.Rating, error) {
	var rating entities.Rating
	err := r.db.WithContext(ctx).Table("ratings").Select(columns).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Take(&rating).Error
	if apperrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Delete removes the user's rating. Removing a missing rating is not an error.
func (r *Repository) Delete(ctx context.Context, userID, bookID int64) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM ratings WHERE user_id = ? AND book_id = ?", userID, bookID).Error
}
