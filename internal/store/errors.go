package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Constraint kinds reported by ConstraintError.
const (
	ConstraintCheck      = "check"
	ConstraintForeignKey = "foreign key"
	ConstraintNotNull    = "not null"
	ConstraintUnique     = "unique"
	ConstraintOther      = "constraint"
)

// ConstraintError is returned when SQLite rejects a write because it would
// violate a column or table constraint.
type ConstraintError struct {
	Kind string // ConstraintCheck, ConstraintForeignKey, ...
	Op   string // operation that failed, e.g. "insert patient"
	Err  error  // underlying sqlite3.Error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s constraint violated: %v", e.Op, e.Kind, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// IsConstraintViolation reports whether err is (or wraps) a constraint failure.
func IsConstraintViolation(err error) bool {
	var cErr *ConstraintError
	if errors.As(err, &cErr) {
		return true
	}
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// wrapErr annotates err with op, classifying SQLite constraint failures as
// *ConstraintError.
func wrapErr(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return &ConstraintError{Kind: constraintKind(sqliteErr.ExtendedCode), Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func constraintKind(code sqlite3.ErrNoExtended) string {
	switch code {
	case sqlite3.ErrConstraintCheck:
		return ConstraintCheck
	case sqlite3.ErrConstraintForeignKey:
		return ConstraintForeignKey
	case sqlite3.ErrConstraintNotNull:
		return ConstraintNotNull
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return ConstraintUnique
	default:
		return ConstraintOther
	}
}
