// Package users provides database operations for user management.
//
// There is no authentication: "selecting" a user only records last_login.
package users

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

const columns = "id, name, color, avatar_image, created_at, updated_at, last_login"

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]entities.User, error) {
	users := []entities.User{}
	err := r.db.WithContext(ctx).Table("users").Select(columns).Order("id").Find(&users).Error
	return users, err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return getUser(r.db.WithContext(ctx), id)
}

func getUser(db *gorm.DB, id int64) (*entities.User, error) {
	var user entities.User
	err := db.Table("users").Select(columns).Where("id = ?", id).Take(&user).Error
	if err != nil {
		return nil, database.NotFoundOr(err, fmt.Sprintf("user %d not found", id))
	}
	return &user, nil
}

func (r *Repository) Create(ctx context.Context, name, color string, avatar *string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Raw(
		"INSERT INTO users (name, color, avatar_image) VALUES (?, ?, ?) RETURNING "+columns,
		name, color, avatar,
	).Scan(&user).Error
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Select marks the user as the active one by touching last_login.
func (r *Repository) Select(ctx context.Context, id int64) (*entities.User, error) {
	var user entities.User
	result := r.db.WithContext(ctx).Raw(
		"UPDATE users SET last_login = "+database.Now+" WHERE id = ? RETURNING "+columns, id,
	).Scan(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("select user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFoundf("user %d not found", id)
	}
	return &user, nil
}

// Update changes name, color and avatar; unset fields keep their value.
func (r *Repository) Update(ctx context.Context, id int64, changes entities.UserChanges) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getUser(tx, id)
		if err != nil {
			return err
		}

		name, color := current.Name, current.Color
		if changes.Name != nil {
			name = strings.TrimSpace(*changes.Name)
		}
		if changes.Color != nil {
			color = *changes.Color
		}
		if name == "" {
			return apperrors.Validation("name must not be empty")
		}

		return tx.Raw(
			"UPDATE users SET name = ?, color = ?, avatar_image = ?, updated_at = "+database.Now+
				" WHERE id = ? RETURNING "+columns,
			name, color, changes.AvatarImage.Merge(current.AvatarImage), id,
		).Scan(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
