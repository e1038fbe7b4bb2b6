package database

import (
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

// IsForeignKeyViolation reports a FOREIGN KEY constraint failure.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if apperrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

// NotFoundOr maps gorm.ErrRecordNotFound to a domain not-found error carrying
// msg and returns any other error unchanged.
func NotFoundOr(err error, msg string) error {
	if apperrors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(msg)
	}
	return err
}

// ParentNotFoundOr maps a foreign key failure on insert to not-found: the
// referenced parent row is gone.
func ParentNotFoundOr(err error, msg string) error {
	if IsForeignKeyViolation(err) {
		return apperrors.NotFound(msg).WithCause(err)
	}
	return err
}
