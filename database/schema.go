package database

import (
	"burnshop_server/structs/tables"
	"context"
	"fmt"
)

type tableSpec struct {
	model       any
	foreignKeys []string
}

// tableSpecs lists the tables in dependency order
var tableSpecs = []tableSpec{
	{model: (*tables.User)(nil)},
	{
		model: (*tables.Category)(nil),
		// children of a deleted category become roots
		foreignKeys: []string{`("parent_id") REFERENCES "categories" ("id") ON DELETE SET NULL`},
	},
	{
		model:       (*tables.Product)(nil),
		foreignKeys: []string{`("category_id") REFERENCES "categories" ("id") ON DELETE CASCADE`},
	},
	{model: (*tables.Promotion)(nil)},
	{
		model: (*tables.ProductPromotion)(nil),
		foreignKeys: []string{
			`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`,
			`("promotion_id") REFERENCES "promotions" ("id") ON DELETE CASCADE`,
		},
	},
	{
		model: (*tables.Review)(nil),
		foreignKeys: []string{
			`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
			`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`,
		},
	},
	{
		model: (*tables.Wishlist)(nil),
		foreignKeys: []string{
			`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
			`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`,
		},
	},
	{
		model:       (*tables.Order)(nil),
		foreignKeys: []string{`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`},
	},
	{
		model: (*tables.OrderItem)(nil),
		foreignKeys: []string{
			`("order_id") REFERENCES "orders" ("id") ON DELETE CASCADE`,
			// order history keeps its snapshot when the product goes away
			`("product_id") REFERENCES "products" ("id") ON DELETE SET NULL`,
		},
	},
}

type indexSpec struct {
	model   any
	name    string
	columns []string
}

var indexSpecs = []indexSpec{
	{(*tables.Category)(nil), "categories_parent_id_idx", []string{"parent_id"}},
	{(*tables.Product)(nil), "products_category_id_idx", []string{"category_id"}},
	{(*tables.Product)(nil), "products_brand_idx", []string{"brand"}},
	{(*tables.Promotion)(nil), "promotions_window_idx", []string{"start_date", "end_date"}},
	{(*tables.Review)(nil), "reviews_product_id_idx", []string{"product_id"}},
	{(*tables.Order)(nil), "orders_user_id_idx", []string{"user_id"}},
	{(*tables.OrderItem)(nil), "order_items_order_id_idx", []string{"order_id"}},
}

// CreateSchema creates every table and index that does not exist yet
func CreateSchema(ctx context.Context, db *DB) error {
	for _, spec := range tableSpecs {
		query := db.NewCreateTable().Model(spec.model).IfNotExists()
		for _, fk := range spec.foreignKeys {
			query = query.ForeignKey(fk)
		}
		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", spec.model, err)
		}
	}

	for _, idx := range indexSpecs {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}

	return nil
}
