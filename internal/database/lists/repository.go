// Package lists provides database operations for user-owned reading lists.
//
// Every operation is scoped to the owning user: a list owned by someone else
// behaves exactly like a missing one.
package lists

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

const columns = "id, user_id, type_id, name, created_at, updated_at"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listBookRow struct {
	ListID     int64
	ID         int64
	CoverImage *string
	StatusName *string
}

// ListForUser returns the user's lists, newest first, with their books.
func (r *Repository) ListForUser(ctx context.Context, userID int64) ([]entities.ListWithBooks, error) {
	db := r.db.WithContext(ctx)

	var lists []entities.List
	err := db.Table("lists").Select(columns).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&lists).Error
	if err != nil {
		return nil, fmt.Errorf("list lists for user %d: %w", userID, err)
	}
	return r.withBooks(db, lists, userID)
}

// Get returns one of the user's lists.
func (r *Repository) Get(ctx context.Context, id, userID int64) (*entities.ListWithBooks, error) {
	return r.get(r.db.WithContext(ctx), id, userID)
}

func (r *Repository) get(db *gorm.DB, id, userID int64) (*entities.ListWithBooks, error) {
	var list entities.List
	err := db.Table("lists").Select(columns).Where("id = ? AND user_id = ?", id, userID).Take(&list).Error
	if err != nil {
		return nil, database.NotFoundOr(err, fmt.Sprintf("list %d not found", id))
	}

	out, err := r.withBooks(db, []entities.List{list}, userID)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// withBooks attaches ordered books and the owner to each list using one
// query per chunk of list ids and one for the user.
func (r *Repository) withBooks(db *gorm.DB, lists []entities.List, userID int64) ([]entities.ListWithBooks, error) {
	result := make([]entities.ListWithBooks, 0, len(lists))
	if len(lists) == 0 {
		return result, nil
	}

	var owner entities.ListUser
	err := db.Table("users").Select("id, name, color, avatar_image").Where("id = ?", userID).Take(&owner).Error
	if err != nil && !apperrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load list owner %d: %w", userID, err)
	}

	ids := make([]int64, len(lists))
	for i, l := range lists {
		ids[i] = l.ID
	}

	rows, err := database.QueryInChunks(ids, database.MaxQueryIDs, func(chunk []int64) (rows []listBookRow, err error) {
		err = db.Raw(`SELECT lb.list_id, b.id, b.cover_image, s.name AS status_name
			FROM list_books lb
			INNER JOIN books b ON lb.book_id = b.id
			LEFT JOIN reading_status rs ON rs.book_id = b.id AND rs.user_id = ?
			LEFT JOIN status s ON rs.status_id = s.id
			WHERE lb.list_id IN ?
			ORDER BY lb.list_id, lb.position`, userID, chunk).Scan(&rows).Error
		return rows, err
	})
	if err != nil {
		return nil, fmt.Errorf("load list books: %w", err)
	}

	books := make(map[int64][]entities.BookInList)
	for _, row := range rows {
		books[row.ListID] = append(books[row.ListID], entities.BookInList{
			ID:         row.ID,
			CoverImage: row.CoverImage,
			StatusName: row.StatusName,
		})
	}

	for _, l := range lists {
		listBooks := books[l.ID]
		if listBooks == nil {
			listBooks = []entities.BookInList{}
		}
		result = append(result, entities.ListWithBooks{List: l, Books: listBooks, User: owner})
	}
	return result, nil
}

// Create inserts a list and its ordered books in one transaction.
func (r *Repository) Create(ctx context.Context, userID, typeID int64, name string, bookIDs []int64) (*entities.ListWithBooks, error) {
	var created *entities.ListWithBooks
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list entities.List
		err := tx.Raw(
			"INSERT INTO lists (user_id, type_id, name) VALUES (?, ?, ?) RETURNING "+columns,
			userID, typeID, name,
		).Scan(&list).Error
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperrors.Validationf("unknown user id %d", userID).WithCause(err)
			}
			return fmt.Errorf("insert list: %w", err)
		}

		if err := replaceBooks(tx, list.ID, bookIDs); err != nil {
			return err
		}

		created, err = r.get(tx, list.ID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update changes name and type and, when Books is given, replaces the
// membership wholesale.
func (r *Repository) Update(ctx context.Context, id, userID int64, changes entities.ListChanges) (*entities.ListWithBooks, error) {
	var updated *entities.ListWithBooks
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entities.List
		err := tx.Table("lists").Select(columns).Where("id = ? AND user_id = ?", id, userID).Take(&current).Error
		if err != nil {
			return database.NotFoundOr(err, fmt.Sprintf("list %d not found", id))
		}

		name, typeID := current.Name, current.TypeID
		if changes.Name != nil {
			name = *changes.Name
		}
		if changes.TypeID != nil {
			typeID = *changes.TypeID
		}

		err = tx.Exec("UPDATE lists SET name = ?, type_id = ?, updated_at = "+database.Now+" WHERE id = ?",
			name, typeID, id).Error
		if err != nil {
			return fmt.Errorf("update list %d: %w", id, err)
		}

		if changes.Books != nil {
			if err := replaceBooks(tx, id, *changes.Books); err != nil {
				return err
			}
		}

		updated, err = r.get(tx, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes one of the user's lists.
func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	result := r.db.WithContext(ctx).Exec("DELETE FROM lists WHERE id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return fmt.Errorf("delete list %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundf("list %d not found", id)
	}
	return nil
}

func replaceBooks(tx *gorm.DB, listID int64, bookIDs []int64) error {
	if err := tx.Exec("DELETE FROM list_books WHERE list_id = ?", listID).Error; err != nil {
		return fmt.Errorf("clear books of list %d: %w", listID, err)
	}
	for position, bookID := range bookIDs {
		err := tx.Exec("INSERT INTO list_books (list_id, book_id, position) VALUES (?, ?, ?)",
			listID, bookID, position).Error
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperrors.Validationf("unknown book id %d", bookID).WithCause(err)
			}
			return fmt.Errorf("add book %d to list %d: %w", bookID, listID, err)
		}
	}
	return nil
}
