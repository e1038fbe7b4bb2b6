// Package tags provides database operations for tags and genres.
//
// Both tables share one shape, so a single Repository serves either one,
// chosen at construction time:
//
//	tagsRepo := tags.NewRepository(db)
//	genresRepo := tags.NewGenreRepository(db)
package tags

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

const columns = "id, user_id, name, color, created_at, updated_at"

// Repository handles tag (or genre) database operations.
type Repository struct {
	db    *gorm.DB
	table string
	kind  string
}

// NewRepository creates a repository over the tags table.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, table: "tags", kind: "tag"}
}

// NewGenreRepository creates a repository over the genres table.
func NewGenreRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, table: "genres", kind: "genre"}
}

// Kind is "tag" or "genre".
func (r *Repository) Kind() string {
	return r.kind
}

// List returns all rows ordered by name, optionally filtered by a name
// substring.
func (r *Repository) List(ctx context.Context, name string) ([]entities.Tag, error) {
	query := r.db.WithContext(ctx).Table(r.table).Select(columns)
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	items := []entities.Tag{}
	if err := query.Order("name, id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %ss: %w", r.kind, err)
	}
	return items, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Tag, error) {
	var item entities.Tag
	err := r.db.WithContext(ctx).Table(r.table).Select(columns).Where("id = ?", id).Take(&item).Error
	if err != nil {
		return nil, database.NotFoundOr(err, fmt.Sprintf("%s %d not found", r.kind, id))
	}
	return &item, nil
}

func (r *Repository) Create(ctx context.Context, userID int64, name, color string) (*entities.Tag, error) {
	var item entities.Tag
	err := r.db.WithContext(ctx).Raw(
		"INSERT INTO "+r.table+" (user_id, name, color) VALUES (?, ?, ?) RETURNING "+columns,
		userID, name, color,
	).Scan(&item).Error
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperrors.Validationf("unknown user id %d", userID).WithCause(err)
		}
		return nil, fmt.Errorf("create %s: %w", r.kind, err)
	}
	return &item, nil
}

// Update renames and recolors a row. Book links are not touched.
func (r *Repository) Update(ctx context.Context, id int64, name, color string) (*entities.Tag, error) {
	var item entities.Tag
	result := r.db.WithContext(ctx).Raw(
		"UPDATE "+r.table+" SET name = ?, color = ?, updated_at = "+database.Now+" WHERE id = ? RETURNING "+columns,
		name, color, id,
	).Scan(&item)
	if result.Error != nil {
		return nil, fmt.Errorf("update %s %d: %w", r.kind, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFoundf("%s %d not found", r.kind, id)
	}
	return &item, nil
}

// Delete removes a row; its book links cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec("DELETE FROM "+r.table+" WHERE id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete %s %d: %w", r.kind, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundf("%s %d not found", r.kind, id)
	}
	return nil
}
