package services

import (
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/structs/tables"
	"context"
	"fmt"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ToggleResult reports what a wishlist toggle did
type ToggleResult string

const (
	WishlistAdded   ToggleResult = "added"
	WishlistRemoved ToggleResult = "removed"
)

type WishlistService struct {
	logger *gecho.Logger
	db     *database.DB
	clock  lib.Clock
}

func NewWishlistService(logger *gecho.Logger, db *database.DB, clock lib.Clock) *WishlistService {
	return &WishlistService{
		logger: logger,
		db:     db,
		clock:  clock,
	}
}

// Toggle removes the product from the user's wishlist when present and adds it otherwise.
// Concurrent toggles never leave more than one row; the primary key rejects the rest.
func (ws *WishlistService) Toggle(ctx context.Context, userID, productID uuid.UUID) (ToggleResult, error) {
	result, err := database.TransactionWithResult(ctx, ws.db, func(ctx context.Context, tx bun.Tx) (ToggleResult, error) {
		removed, err := database.Query[tables.Wishlist](tx).
			Where("user_id", userID).
			Where("product_id", productID).
			Delete(ctx)
		if err != nil {
			return "", err
		}
		if removed > 0 {
			return WishlistRemoved, nil
		}

		exists, err := database.Query[tables.Product](tx).Where("id", productID).Exists(ctx)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", fmt.Errorf("product %s: %w", productID, lib.ErrNotFound)
		}

		entry := &tables.Wishlist{
			UserID:    userID,
			ProductID: productID,
			AddedAt:   ws.clock.Now(),
		}
		if _, err := database.Upsert(ctx, tx, entry, "user_id, product_id"); err != nil {
			return "", err
		}
		return WishlistAdded, nil
	})
	if err != nil {
		return "", lib.MapDBError(err)
	}

	ws.logger.Debug("Wishlist toggled",
		gecho.Field("user_id", userID),
		gecho.Field("product_id", productID),
		gecho.Field("result", string(result)),
	)
	return result, nil
}

// List returns the user's wishlist newest first, with product data
func (ws *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]tables.Wishlist, error) {
	entries, err := database.Query[tables.Wishlist](ws.db).
		With("Product").
		Where("w.user_id", userID).
		OrderBy("w.added_at", database.DESC).
		OrderBy("w.product_id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if entries == nil {
		entries = []tables.Wishlist{}
	}
	return entries, nil
}

// Membership reports which of productIDs are on the user's wishlist, in a single query
func (ws *WishlistService) Membership(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(productIDs))
	if len(productIDs) == 0 {
		return set, nil
	}

	entries, err := database.Query[tables.Wishlist](ws.db).
		Where("w.user_id", userID).
		WhereIn("w.product_id", productIDs).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	for _, e := range entries {
		set[e.ProductID] = true
	}
	return set, nil
}
