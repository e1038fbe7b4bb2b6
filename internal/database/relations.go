package database

import (
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

// Relation names one of the book many-to-many join tables. The set is closed:
// only the package-level values below exist, so table and column names are
// never taken from callers.
type Relation struct {
	name   string
	table  string
	column string
}

var (
	TagRelation   = Relation{name: "tag", table: "book_tags", column: "tag_id"}
	GenreRelation = Relation{name: "genre", table: "book_genres", column: "genre_id"}
)

func (r Relation) String() string { return r.name }

// ReplaceRelations makes the book's links in rel exactly ids. It must run
// inside a transaction so readers never see the intermediate empty set.
// Duplicate ids are collapsed, keeping first-occurrence order. A missing book
// is reported as not found, whatever ids are given.
func ReplaceRelations(tx *gorm.DB, bookID int64, rel Relation, ids []int64) error {
	if rel.table == "" {
		return fmt.Errorf("unknown relation")
	}

	var books int64
	if err := tx.Table("books").Where("id = ?", bookID).Count(&books).Error; err != nil {
		return fmt.Errorf("check book %d: %w", bookID, err)
	}
	if books == 0 {
		return apperrors.NotFoundf("book %d not found", bookID)
	}

	if err := tx.Exec("DELETE FROM "+rel.table+" WHERE book_id = ?", bookID).Error; err != nil {
		return fmt.Errorf("clear %s links for book %d: %w", rel.name, bookID, err)
	}

	insert := "INSERT INTO " + rel.table + " (book_id, " + rel.column + ") VALUES (?, ?)"
	for _, id := range UniqueIDs(ids) {
		if err := tx.Exec(insert, bookID, id).Error; err != nil {
			if IsForeignKeyViolation(err) {
				return apperrors.Validationf("unknown %s id %d", rel.name, id).WithCause(err)
			}
			return fmt.Errorf("link %s %d to book %d: %w", rel.name, id, bookID, err)
		}
	}

	return nil
}

// UniqueIDs drops repeated ids, preserving the order of first occurrence.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
