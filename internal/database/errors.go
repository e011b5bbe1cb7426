package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrStore wraps any failure talking to the database.
	ErrStore = errors.New("store error")

	// ErrConstraintViolation wraps writes rejected by a UNIQUE, PRIMARY KEY,
	// FOREIGN KEY or NOT NULL constraint.
	ErrConstraintViolation = errors.New("constraint violation")
)

// MapError classifies a driver error. The result wraps both the sentinel and
// the driver error, so errors.Is works against either.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w (%s): %w", ErrConstraintViolation, constraintKind(sqliteErr.ExtendedCode), err)
	}

	return fmt.Errorf("%w: %w", ErrStore, err)
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY violation.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func constraintKind(code sqlite3.ErrNoExtended) string {
	switch code {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return "unique"
	case sqlite3.ErrConstraintForeignKey:
		return "foreign key"
	case sqlite3.ErrConstraintNotNull:
		return "not null"
	default:
		return "constraint"
	}
}
