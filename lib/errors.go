package lib

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict  = errors.New("conflict")
	ErrNotFound  = errors.New("not found")
	ErrReference = errors.New("referenced record does not exist")
)

// Domain errors
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError represents a clean validation error for APIs
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a structured validation error; errors.Is(err, ErrValidation) holds for it
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return "validation failed"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// MapDBError translates driver errors from Postgres (pgdriver, pgx) and SQLite into the
// sentinel errors above. Unknown errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	if sentinel := mapSQLState(SQLState(err)); sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", ErrConflict, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %w", ErrReference, err)
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	return err
}

// SQLState returns the Postgres SQLSTATE carried by err, or "" for other errors
func SQLState(err error) string {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C')
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}

	return ""
}

func mapSQLState(code string) error {
	switch code {
	case "23505": // unique_violation
		return ErrConflict
	case "23503": // foreign_key_violation
		return ErrReference
	case "23514", "23502": // check_violation, not_null_violation
		return ErrValidation
	case "P0002": // no_data_found
		return ErrNotFound
	}
	return nil
}

func IsUniqueViolation(err error) bool {
	return errors.Is(err, ErrConflict)
}

// GetUserMessage returns a message that is safe to put in a response body
func GetUserMessage(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, ErrNotFound):
		return "The requested resource was not found"
	case errors.Is(err, ErrConflict):
		return "A record with these details already exists"
	case errors.Is(err, ErrReference):
		return "A referenced record does not exist"
	case errors.Is(err, ErrValidation):
		return "The submitted data is invalid"
	case errors.Is(err, ErrForbidden):
		return "You are not allowed to do this"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	}
	return "Something went wrong. Please try again later"
}
