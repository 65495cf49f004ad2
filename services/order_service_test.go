package services

import (
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	*fixture
	owner     *tables.User
	requester Requester
	order     *tables.Order
	p1, p2    *tables.Product
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := newFixture(t)
	category := f.category(t, "Accessories", nil)
	owner := f.user(t, "buyer")

	order, err := f.sm.OrderService.CreateOrder(f.ctx, owner.Id, &structs.CreateOrderRequest{DeliveryAddress: "Main Street 1, Springfield"})
	require.NoError(t, err)

	return &orderFixture{
		fixture:   f,
		owner:     owner,
		requester: Requester{UserID: owner.Id},
		order:     order,
		p1:        f.product(t, category.ID, "Cable", "10.00"),
		p2:        f.product(t, category.ID, "Stand", "5.00", withDiscount("4.00")),
	}
}

func (of *orderFixture) addItem(t *testing.T, product *tables.Product, quantity int) *tables.Order {
	t.Helper()
	order, err := of.sm.OrderService.AddItem(of.ctx, of.order.ID, of.requester, &structs.OrderItemRequest{
		ProductID: product.ID,
		Quantity:  quantity,
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrder(t *testing.T) {
	of := newOrderFixture(t)

	assert.Equal(t, tables.OrderStatusProcessing, of.order.Status)
	requireDecimal(t, "0", of.order.TotalAmount)
	assert.Equal(t, "Main Street 1, Springfield", of.order.DeliveryAddress)

	stored, err := database.FindByID[tables.Order](of.ctx, of.db, of.order.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.DeliveryAddress, "Springfield", "address is encrypted at rest")

	fetched, err := of.sm.OrderService.GetOrder(of.ctx, of.order.ID, of.requester)
	require.NoError(t, err)
	assert.Equal(t, "Main Street 1, Springfield", fetched.DeliveryAddress)
}

func TestOrderTotalAfterEveryMutation(t *testing.T) {
	of := newOrderFixture(t)

	order := of.addItem(t, of.p1, 2)
	requireDecimal(t, "20.00", order.TotalAmount)

	// list price is the snapshot, not the discount price
	of.clock.Advance(time.Second)
	order = of.addItem(t, of.p2, 3)
	requireDecimal(t, "35.00", order.TotalAmount)
	require.Len(t, order.Items, 2)
	requireDecimal(t, "5.00", order.Items[1].Price)
	assert.Equal(t, "Stand", order.Items[1].ProductName)

	order, err := of.sm.OrderService.UpdateItemQuantity(of.ctx, of.order.ID, order.Items[0].ID, of.requester, 1)
	require.NoError(t, err)
	requireDecimal(t, "25.00", order.TotalAmount)

	order, err = of.sm.OrderService.RemoveItem(of.ctx, of.order.ID, order.Items[1].ID, of.requester)
	require.NoError(t, err)
	requireDecimal(t, "10.00", order.TotalAmount)

	stored, err := database.FindByID[tables.Order](of.ctx, of.db, of.order.ID)
	require.NoError(t, err)
	requireDecimal(t, "10.00", stored.TotalAmount)
}

func TestOrderItemSnapshotsListPrice(t *testing.T) {
	of := newOrderFixture(t)
	category := of.category(t, "Audio", nil)
	headset := of.product(t, category.ID, "Headset", "100.00", withDiscount("80.00"))

	order := of.addItem(t, headset, 1)

	require.Len(t, order.Items, 1)
	requireDecimal(t, "100.00", order.Items[0].Price)
	requireDecimal(t, "100.00", order.TotalAmount)
}

func TestOrderItemSnapshotSurvivesProductChanges(t *testing.T) {
	of := newOrderFixture(t)
	of.addItem(t, of.p1, 1)

	_, err := of.sm.CatalogService.UpdateProduct(of.ctx, of.p1.ID, &structs.ProductRequest{
		Name:       "Cable v2",
		Price:      of.p1.Price.Add(of.p1.Price),
		Stock:      1,
		CategoryID: of.p1.CategoryID,
	})
	require.NoError(t, err)
	require.NoError(t, of.sm.CatalogService.DeleteProduct(of.ctx, of.p1.ID))

	order, err := of.sm.OrderService.GetOrder(of.ctx, of.order.ID, of.requester)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Nil(t, order.Items[0].ProductID)
	assert.Equal(t, "Cable", order.Items[0].ProductName)
	requireDecimal(t, "10.00", order.Items[0].Price)
	requireDecimal(t, "10.00", order.TotalAmount)
}

func TestOrderItemValidation(t *testing.T) {
	of := newOrderFixture(t)

	_, err := of.sm.OrderService.AddItem(of.ctx, of.order.ID, of.requester, &structs.OrderItemRequest{ProductID: of.p1.ID, Quantity: 0})
	assert.ErrorIs(t, err, lib.ErrValidation)

	_, err = of.sm.OrderService.AddItem(of.ctx, of.order.ID, of.requester, &structs.OrderItemRequest{ProductID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, err = of.sm.OrderService.UpdateItemQuantity(of.ctx, of.order.ID, uuid.New(), of.requester, 2)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, err = of.sm.OrderService.RemoveItem(of.ctx, of.order.ID, uuid.New(), of.requester)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestOrdersAreScopedToTheirOwner(t *testing.T) {
	of := newOrderFixture(t)
	stranger := of.user(t, "stranger")
	strangerReq := Requester{UserID: stranger.Id}

	_, err := of.sm.OrderService.GetOrder(of.ctx, of.order.ID, strangerReq)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, err = of.sm.OrderService.AddItem(of.ctx, of.order.ID, strangerReq, &structs.OrderItemRequest{ProductID: of.p1.ID, Quantity: 1})
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, err = of.sm.OrderService.GetOrder(of.ctx, of.order.ID, Requester{UserID: stranger.Id, IsAdmin: true})
	assert.NoError(t, err)

	mine, err := of.sm.OrderService.ListOrders(of.ctx, of.owner.Id)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := of.sm.OrderService.ListOrders(of.ctx, stranger.Id)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestOrderStatusTransitions(t *testing.T) {
	of := newOrderFixture(t)
	of.addItem(t, of.p1, 1)
	admin := Requester{UserID: uuid.New(), IsAdmin: true}

	_, err := of.sm.OrderService.ChangeStatus(of.ctx, of.order.ID, of.requester, tables.OrderStatusShipped)
	assert.ErrorIs(t, err, lib.ErrForbidden, "owners may only cancel")

	_, err = of.sm.OrderService.ChangeStatus(of.ctx, of.order.ID, admin, tables.OrderStatusDelivered)
	assert.ErrorIs(t, err, lib.ErrValidation, "processing cannot skip to delivered")

	_, err = of.sm.OrderService.ChangeStatus(of.ctx, of.order.ID, admin, tables.OrderStatus("lost"))
	assert.ErrorIs(t, err, lib.ErrValidation)

	order, err := of.sm.OrderService.ChangeStatus(of.ctx, of.order.ID, admin, tables.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, tables.OrderStatusShipped, order.Status)

	// items are frozen once the order leaves processing
	_, err = of.sm.OrderService.AddItem(of.ctx, of.order.ID, of.requester, &structs.OrderItemRequest{ProductID: of.p2.ID, Quantity: 1})
	assert.ErrorIs(t, err, lib.ErrValidation)

	order, err = of.sm.OrderService.ChangeStatus(of.ctx, of.order.ID, admin, tables.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, tables.OrderStatusDelivered, order.Status)

	order, err = of.sm.OrderService.ChangeStatus(of.ctx, of.order.ID, admin, tables.OrderStatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, tables.OrderStatusRefunded, order.Status)

	_, err = of.sm.OrderService.ChangeStatus(of.ctx, of.order.ID, admin, tables.OrderStatusProcessing)
	assert.ErrorIs(t, err, lib.ErrValidation, "refunded is terminal")
}

func TestOwnerCanCancel(t *testing.T) {
	of := newOrderFixture(t)

	order, err := of.sm.OrderService.ChangeStatus(of.ctx, of.order.ID, of.requester, tables.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, tables.OrderStatusCancelled, order.Status)

	_, err = of.sm.OrderService.ChangeStatus(of.ctx, of.order.ID, of.requester, tables.OrderStatusCancelled)
	assert.ErrorIs(t, err, lib.ErrValidation)
}
