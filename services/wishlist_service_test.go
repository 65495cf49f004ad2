package services

import (
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/structs/tables"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistToggleTwice(t *testing.T) {
	f := newFixture(t)
	category := f.category(t, "Mice", nil)
	product := f.product(t, category.ID, "G305", "39.99")
	user := f.user(t, "shopper")

	result, err := f.sm.WishlistService.Toggle(f.ctx, user.Id, product.ID)
	require.NoError(t, err)
	assert.Equal(t, WishlistAdded, result)

	entries, err := f.sm.WishlistService.List(f.ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Product)
	assert.Equal(t, "G305", entries[0].Product.Name)

	result, err = f.sm.WishlistService.Toggle(f.ctx, user.Id, product.ID)
	require.NoError(t, err)
	assert.Equal(t, WishlistRemoved, result)

	entries, err = f.sm.WishlistService.List(f.ctx, user.Id)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWishlistToggleUnknownProduct(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "shopper")

	_, err := f.sm.WishlistService.Toggle(f.ctx, user.Id, uuid.New())
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestWishlistConcurrentTogglesLeaveAtMostOneRow(t *testing.T) {
	f := newFixture(t)
	category := f.category(t, "Mice", nil)
	product := f.product(t, category.ID, "G305", "39.99")
	user := f.user(t, "shopper")

	const toggles = 8
	var wg sync.WaitGroup
	errs := make(chan error, toggles)
	for range toggles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.sm.WishlistService.Toggle(f.ctx, user.Id, product.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rows, err := database.Query[tables.Wishlist](f.db).Where("user_id", user.Id).Count(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, rows, "an even number of toggles ends where it started")
}

func TestWishlistListNewestFirstAndMembership(t *testing.T) {
	f := newFixture(t)
	category := f.category(t, "Mice", nil)
	first := f.product(t, category.ID, "G305", "39.99")
	second := f.product(t, category.ID, "Viper", "49.99")
	notSaved := f.product(t, category.ID, "Basilisk", "59.99")
	user := f.user(t, "shopper")
	other := f.user(t, "other")

	_, err := f.sm.WishlistService.Toggle(f.ctx, user.Id, first.ID)
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.sm.WishlistService.Toggle(f.ctx, user.Id, second.ID)
	require.NoError(t, err)
	_, err = f.sm.WishlistService.Toggle(f.ctx, other.Id, notSaved.ID)
	require.NoError(t, err)

	entries, err := f.sm.WishlistService.List(f.ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ProductID)
	assert.Equal(t, first.ID, entries[1].ProductID)

	set, err := f.sm.WishlistService.Membership(f.ctx, user.Id, []uuid.UUID{first.ID, second.ID, notSaved.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]bool{first.ID: true, second.ID: true}, set)

	set, err = f.sm.WishlistService.Membership(f.ctx, user.Id, nil)
	require.NoError(t, err)
	assert.Empty(t, set)
}
