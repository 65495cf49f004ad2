package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// All executes the query and returns all matching records
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data []T
	err := q.run(ctx, func() error {
		data = nil // Reset on retry
		return q.buildBunQuery(&data).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record, or nil when there is none
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data T
	err := q.run(ctx, func() error {
		return q.buildBunQuery(&data).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count returns the number of matching records
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var count int
	err := q.run(ctx, func() error {
		var err error
		count, err = q.buildBunQuery((*T)(nil)).Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record and returns it
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := q.run(ctx, func() error {
		_, err := q.db.NewInsert().Model(data).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update sets the given columns on every matching record and returns the affected row count
func (q *QueryBuilder[T]) Update(ctx context.Context, updates map[string]any) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var rowsAffected int64
	err := q.run(ctx, func() error {
		query := q.db.NewUpdate().Model((*T)(nil))
		for column, value := range updates {
			query = query.Set("? = ?", bun.Ident(column), value)
		}
		for _, c := range q.conditions() {
			query = query.Where(c.SQL, c.Args...)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// UpdateModel writes the listed columns of data, matched on its primary key
func (q *QueryBuilder[T]) UpdateModel(ctx context.Context, data *T, columns ...string) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var rowsAffected int64
	err := q.run(ctx, func() error {
		res, err := q.db.NewUpdate().Model(data).Column(columns...).WherePK().Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete deletes records matching the query and returns the affected row count
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var rowsAffected int64
	err := q.run(ctx, func() error {
		query := q.db.NewDelete().Model((*T)(nil))
		for _, c := range q.conditions() {
			query = query.Where(c.SQL, c.Args...)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}
