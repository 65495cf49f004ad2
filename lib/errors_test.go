package lib

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDBError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"pg unique", &pgconn.PgError{Code: "23505"}, ErrConflict},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, ErrReference},
		{"pg check", &pgconn.PgError{Code: "23514"}, ErrValidation},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, ErrConflict},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, ErrConflict},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, ErrReference},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, MapDBError(tc.err), tc.want)
		})
	}
}

func TestMapDBErrorPassesThroughUnknown(t *testing.T) {
	err := errors.New("boom")
	assert.Same(t, err, MapDBError(err))
	assert.NoError(t, MapDBError(nil))
}

func TestValidationErrorIsErrValidation(t *testing.T) {
	err := fmt.Errorf("create product: %w", NewValidationError("price", "must not be negative"))
	require.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Errors[0].Field)
	assert.Contains(t, GetUserMessage(err), "price")
}

func TestGetUserMessageHidesDriverErrors(t *testing.T) {
	msg := GetUserMessage(errors.New(`pq: relation "users" does not exist`))
	assert.NotContains(t, msg, "users")
}
