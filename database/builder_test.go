package database_test

import (
	"burnshop_server/database"
	"burnshop_server/database/dbtest"
	"burnshop_server/structs/tables"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var createdAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func insertCategory(t *testing.T, db *database.DB, name string, parent *uuid.UUID) *tables.Category {
	t.Helper()
	category := &tables.Category{ID: uuid.New(), Name: name, ParentID: parent, CreatedAt: createdAt, UpdatedAt: createdAt}
	_, err := database.Query[tables.Category](db).Insert(context.Background(), category)
	require.NoError(t, err)
	return category
}

func insertProduct(t *testing.T, db *database.DB, categoryID uuid.UUID, name, brand string) *tables.Product {
	t.Helper()
	product := &tables.Product{
		ID:         uuid.New(),
		Name:       name,
		Brand:      brand,
		Price:      decimal.NewFromInt(10),
		CategoryID: categoryID,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	_, err := database.Query[tables.Product](db).Insert(context.Background(), product)
	require.NoError(t, err)
	return product
}

func TestWhereNullAndFirst(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	root := insertCategory(t, db, "Peripherals", nil)
	insertCategory(t, db, "Mice", &root.ID)

	roots, err := database.Query[tables.Category](db).WhereNull("parent_id").All(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Peripherals", roots[0].Name)

	missing, err := database.FindByID[tables.Category](ctx, db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDistinctOrGroupAndPaginate(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	category := insertCategory(t, db, "Mice", nil)
	insertProduct(t, db, category.ID, "Viper", "Razer")
	insertProduct(t, db, category.ID, "Basilisk", "Razer")
	insertProduct(t, db, category.ID, "G305", "Logitech")

	brands, err := database.Query[tables.Product](db).
		Select("p.brand").
		Distinct().
		OrderBy("p.brand", database.ASC).
		All(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "Logitech", brands[0].Brand)
	assert.Equal(t, "Razer", brands[1].Brand)

	matched, err := database.Query[tables.Product](db).
		Or().
		WhereOp("p.name", "=", "Viper").
		WhereOp("p.name", "=", "G305").
		End().
		OrderBy("p.name", database.ASC).
		All(ctx)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "G305", matched[0].Name)

	page, err := database.Paginate(ctx, database.Query[tables.Product](db).OrderBy("p.name", database.ASC), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Viper", page.Data[0].Name)
}

func TestUpsertDoNothing(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	user := &tables.User{Id: uuid.New(), Username: "u", Email: "u@example.com", PasswordHash: "x", Role: tables.RoleUser, CreatedAt: createdAt}
	_, err := database.Query[tables.User](db).Insert(ctx, user)
	require.NoError(t, err)
	product := insertProduct(t, db, insertCategory(t, db, "Mice", nil).ID, "Viper", "Razer")

	entry := &tables.Wishlist{UserID: user.Id, ProductID: product.ID, AddedAt: createdAt}
	n, err := database.Upsert(ctx, db, entry, "user_id, product_id")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = database.Upsert(ctx, db, entry, "user_id, product_id")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTransactionRollsBack(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := database.Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		category := &tables.Category{ID: uuid.New(), Name: "Ghost", CreatedAt: createdAt, UpdatedAt: createdAt}
		if _, err := database.Query[tables.Category](tx).Insert(ctx, category); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := database.Query[tables.Category](db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
