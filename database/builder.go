package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// JoinType represents the type of SQL JOIN operation
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
)

// String returns the SQL representation of the join type
func (jt JoinType) String() string {
	if jt == LeftJoin {
		return "LEFT JOIN"
	}
	return "INNER JOIN"
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// ParseOrderDirection maps user input to a direction, defaulting to ASC
func ParseOrderDirection(s string) OrderDirection {
	if strings.EqualFold(s, string(DESC)) {
		return DESC
	}
	return ASC
}

// QueryBuilder provides a fluent, type-safe API for building database queries.
// It runs against a *DB or a bun.Tx; queries inside a transaction are not retried,
// the surrounding Transaction call retries the whole unit instead.
type QueryBuilder[T any] struct {
	db    bun.IDB
	retry bool

	selectCols  []string
	joins       []*JoinClause
	wheres      []*WhereClause
	whereGroups []*WhereGroup
	orders      []string
	groupBys    []string
	limitVal    *int
	offsetVal   *int
	relations   []relation
	distinct    bool
	timeout     time.Duration
}

// JoinClause represents a SQL JOIN operation
type JoinClause struct {
	Type       JoinType
	Table      string
	Alias      string
	Conditions []string
}

// WhereClause represents a single WHERE condition
type WhereClause struct {
	SQL  string
	Args []any
}

// WhereGroup represents conditions joined by one connector, e.g. (a OR b OR c)
type WhereGroup struct {
	Conditions []*WhereClause
	Connector  string
}

type relation struct {
	name  string
	apply []func(*bun.SelectQuery) *bun.SelectQuery
}

// JoinBuilder provides a fluent API for building JOIN clauses
type JoinBuilder[T any] struct {
	parent *QueryBuilder[T]
	clause *JoinClause
}

// WhereGroupBuilder provides a fluent API for building grouped WHERE clauses
type WhereGroupBuilder[T any] struct {
	parent *QueryBuilder[T]
	group  *WhereGroup
}

// Query creates a new QueryBuilder instance
func Query[T any](db bun.IDB) *QueryBuilder[T] {
	_, inTx := db.(bun.Tx)
	return &QueryBuilder[T]{
		db:    db,
		retry: !inTx,
	}
}

// Select specifies the columns or expressions to select
func (q *QueryBuilder[T]) Select(columns ...string) *QueryBuilder[T] {
	q.selectCols = append(q.selectCols, columns...)
	return q
}

// Distinct adds DISTINCT to the query
func (q *QueryBuilder[T]) Distinct() *QueryBuilder[T] {
	q.distinct = true
	return q
}

// Join starts building an INNER JOIN clause
func (q *QueryBuilder[T]) Join(table, alias string) *JoinBuilder[T] {
	return &JoinBuilder[T]{
		parent: q,
		clause: &JoinClause{Type: InnerJoin, Table: table, Alias: alias},
	}
}

// LeftJoin starts building a LEFT JOIN clause
func (q *QueryBuilder[T]) LeftJoin(table, alias string) *JoinBuilder[T] {
	return &JoinBuilder[T]{
		parent: q,
		clause: &JoinClause{Type: LeftJoin, Table: table, Alias: alias},
	}
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	return q.WhereOp(column, "=", value)
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		SQL:  fmt.Sprintf("%s %s ?", column, operator),
		Args: []any{value},
	})
	return q
}

// WhereIn adds a WHERE IN condition
func (q *QueryBuilder[T]) WhereIn(column string, values any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		SQL:  fmt.Sprintf("%s IN (?)", column),
		Args: []any{bun.In(values)},
	})
	return q
}

// WhereNull adds a WHERE IS NULL condition
func (q *QueryBuilder[T]) WhereNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{SQL: column + " IS NULL"})
	return q
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{SQL: sql, Args: args})
	return q
}

// Or starts an OR group
func (q *QueryBuilder[T]) Or() *WhereGroupBuilder[T] {
	return &WhereGroupBuilder[T]{
		parent: q,
		group:  &WhereGroup{Connector: "OR"},
	}
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, fmt.Sprintf("%s %s", column, direction))
	return q
}

// OrderExpr adds a raw ORDER BY expression
func (q *QueryBuilder[T]) OrderExpr(expr string) *QueryBuilder[T] {
	q.orders = append(q.orders, expr)
	return q
}

// GroupBy adds a GROUP BY clause
func (q *QueryBuilder[T]) GroupBy(columns ...string) *QueryBuilder[T] {
	q.groupBys = append(q.groupBys, columns...)
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

// With preloads a bun relation, optionally customising the relation query
func (q *QueryBuilder[T]) With(name string, apply ...func(*bun.SelectQuery) *bun.SelectQuery) *QueryBuilder[T] {
	q.relations = append(q.relations, relation{name: name, apply: apply})
	return q
}

// Timeout sets a timeout for the query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

// On adds a JOIN condition
func (j *JoinBuilder[T]) On(left, operator, right string) *JoinBuilder[T] {
	j.clause.Conditions = append(j.clause.Conditions, fmt.Sprintf("%s %s %s", left, operator, right))
	return j
}

// End completes the join builder and returns to the query builder
func (j *JoinBuilder[T]) End() *QueryBuilder[T] {
	j.parent.joins = append(j.parent.joins, j.clause)
	return j.parent
}

// WhereOp adds a condition with an operator to the group
func (w *WhereGroupBuilder[T]) WhereOp(column, operator string, value any) *WhereGroupBuilder[T] {
	w.group.Conditions = append(w.group.Conditions, &WhereClause{
		SQL:  fmt.Sprintf("%s %s ?", column, operator),
		Args: []any{value},
	})
	return w
}

// WhereRaw adds a raw condition to the group
func (w *WhereGroupBuilder[T]) WhereRaw(sql string, args ...any) *WhereGroupBuilder[T] {
	w.group.Conditions = append(w.group.Conditions, &WhereClause{SQL: sql, Args: args})
	return w
}

// End completes the group builder and returns to the query builder
func (w *WhereGroupBuilder[T]) End() *QueryBuilder[T] {
	if len(w.group.Conditions) > 0 {
		w.parent.whereGroups = append(w.parent.whereGroups, w.group)
	}
	return w.parent
}

func (j *JoinClause) toSQL() string {
	var sb strings.Builder

	sb.WriteString(j.Type.String())
	sb.WriteString(" ")
	sb.WriteString(j.Table)

	if j.Alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(j.Alias)
	}

	if len(j.Conditions) > 0 {
		sb.WriteString(" ON ")
		sb.WriteString(strings.Join(j.Conditions, " AND "))
	}

	return sb.String()
}

func (g *WhereGroup) toClause() *WhereClause {
	parts := make([]string, 0, len(g.Conditions))
	var args []any
	for _, c := range g.Conditions {
		parts = append(parts, c.SQL)
		args = append(args, c.Args...)
	}
	return &WhereClause{
		SQL:  "(" + strings.Join(parts, " "+g.Connector+" ") + ")",
		Args: args,
	}
}

// conditions flattens plain conditions and groups into one AND-ed list
func (q *QueryBuilder[T]) conditions() []*WhereClause {
	out := make([]*WhereClause, 0, len(q.wheres)+len(q.whereGroups))
	out = append(out, q.wheres...)
	for _, g := range q.whereGroups {
		out = append(out, g.toClause())
	}
	return out
}

// buildBunQuery builds a select over model, which must be a pointer to T or to []T
func (q *QueryBuilder[T]) buildBunQuery(model any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(model)

	if q.distinct {
		query = query.Distinct()
	}
	for _, col := range q.selectCols {
		query = query.ColumnExpr(col)
	}
	for _, join := range q.joins {
		query = query.Join(join.toSQL())
	}
	for _, rel := range q.relations {
		query = query.Relation(rel.name, rel.apply...)
	}
	for _, c := range q.conditions() {
		query = query.Where(c.SQL, c.Args...)
	}
	for _, g := range q.groupBys {
		query = query.GroupExpr(g)
	}
	for _, o := range q.orders {
		query = query.OrderExpr(o)
	}
	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}

	return query
}

// withTimeout applies the builder timeout to ctx
func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

// run executes op with retry unless the builder is bound to a transaction
func (q *QueryBuilder[T]) run(ctx context.Context, op func() error) error {
	if !q.retry {
		return op()
	}
	return WithRetry(ctx, op)
}
