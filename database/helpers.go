package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Transaction runs fn inside a database transaction. The whole transaction is retried on
// serialization failures and deadlocks, so fn must not have side effects outside tx.
func Transaction(ctx context.Context, db *DB, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil {
		return fmt.Errorf("database instance not initialized")
	}

	return WithRetry(ctx, func() error {
		return db.RunInTx(ctx, &sql.TxOptions{}, fn)
	})
}

// TransactionWithResult executes a function within a transaction and returns a result
func TransactionWithResult[T any](ctx context.Context, db *DB, fn func(ctx context.Context, tx bun.Tx) (T, error)) (T, error) {
	var result T
	err := Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})
	return result, err
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination represents pagination parameters
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// PaginationResult wraps paginated data with metadata
type PaginationResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NormalizePage clamps page and page size to sane bounds
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate applies pagination to a query builder and returns results with metadata
func Paginate[T any](ctx context.Context, q *QueryBuilder[T], page, pageSize int) (*PaginationResult[T], error) {
	page, pageSize = NormalizePage(page, pageSize)

	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	data, err := q.Limit(pageSize).Offset((page - 1) * pageSize).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get paginated data: %w", err)
	}
	if data == nil {
		data = []T{}
	}

	return &PaginationResult[T]{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: (total + pageSize - 1) / pageSize,
		},
	}, nil
}

// FindByID is a helper to find a record by its id column; nil when absent
func FindByID[T any](ctx context.Context, db bun.IDB, id any) (*T, error) {
	return Query[T](db).Where("id", id).First(ctx)
}

// DeleteByID is a helper to delete a record by ID
func DeleteByID[T any](ctx context.Context, db bun.IDB, id any) (int, error) {
	return Query[T](db).Where("id", id).Delete(ctx)
}

// Upsert performs INSERT ... ON CONFLICT. Without update columns the conflict is ignored
// and the returned count is 0 when the row already existed.
func Upsert[T any](ctx context.Context, db bun.IDB, data *T, conflictColumns string, updateColumns ...string) (int, error) {
	start := time.Now()

	query := db.NewInsert().Model(data)
	if len(updateColumns) == 0 {
		query = query.On(fmt.Sprintf("CONFLICT (%s) DO NOTHING", conflictColumns))
	} else {
		sets := make([]string, 0, len(updateColumns))
		for _, col := range updateColumns {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
		query = query.On(fmt.Sprintf("CONFLICT (%s) DO UPDATE", conflictColumns)).Set(strings.Join(sets, ", "))
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute upsert: %w (took %v)", err, time.Since(start))
	}

	n, _ := res.RowsAffected()
	return int(n), nil
}
