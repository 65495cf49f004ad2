// Package dbtest opens throwaway in-memory SQLite databases with the full schema for tests.
package dbtest

import (
	"burnshop_server/database"
	"burnshop_server/structs"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/require"
)

// New returns a migrated database private to t; it is closed when the test ends
func New(t testing.TB) *database.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &structs.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name),
	}

	db, err := database.Open(cfg, gecho.NewDefaultLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.CreateSchema(context.Background(), db))
	return db
}
