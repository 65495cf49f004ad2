package services

import (
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"context"
	"fmt"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Requester identifies who is calling a user-scoped operation
type Requester struct {
	UserID  uuid.UUID
	IsAdmin bool
}

func (r Requester) owns(userID uuid.UUID) bool {
	return r.IsAdmin || r.UserID == userID
}

type OrderService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	clock        lib.Clock
	emailService *EmailService
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	clock lib.Clock,
	emailService *EmailService,
) *OrderService {
	return &OrderService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		clock:        clock,
		emailService: emailService,
	}
}

func (os *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *structs.CreateOrderRequest) (*tables.Order, error) {
	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return nil, lib.NewValidationError("delivery_address", "is required")
	}

	encrypted, err := lib.Encrypt(address, os.cfg.Encryption.Key)
	if err != nil {
		os.logger.Error("Failed to encrypt delivery address", gecho.Field("error", err))
		return nil, err
	}

	now := os.clock.Now()
	order := &tables.Order{
		ID:              uuid.New(),
		UserID:          userID,
		TotalAmount:     decimal.Zero,
		Status:          tables.OrderStatusProcessing,
		DeliveryAddress: encrypted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := database.Query[tables.Order](os.db).Insert(ctx, order); err != nil {
		os.logger.Error("Failed to create order", gecho.Field("error", err), gecho.Field("user_id", userID))
		return nil, lib.MapDBError(err)
	}

	os.logger.Info("Order created",
		gecho.Field("order_id", order.ID),
		gecho.Field("reference", lib.OrderReference(order.ID)),
	)

	order.DeliveryAddress = address
	order.Items = []*tables.OrderItem{}
	return order, nil
}

// ListOrders returns the requester's orders newest first, with their items
func (os *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]tables.Order, error) {
	orders, err := database.Query[tables.Order](os.db).
		With("Items", orderItemsByCreation).
		Where("o.user_id", userID).
		OrderBy("o.created_at", database.DESC).
		OrderBy("o.id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if orders == nil {
		orders = []tables.Order{}
	}

	for i := range orders {
		os.decryptAddress(&orders[i])
	}
	return orders, nil
}

// GetOrder returns an order with its items. Orders of other users are reported as not found
// unless the requester is an admin.
func (os *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID, requester Requester) (*tables.Order, error) {
	order, err := os.loadOrder(ctx, os.db, orderID, requester)
	if err != nil {
		return nil, err
	}
	os.decryptAddress(order)
	return order, nil
}

// AddItem adds a line to an order, snapshotting the product's current list price and name.
// A discount price set on the product does not change the snapshot.
func (os *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, requester Requester, req *structs.OrderItemRequest) (*tables.Order, error) {
	if req.Quantity < 1 {
		return nil, lib.NewValidationError("quantity", "must be at least 1")
	}

	return os.mutateItems(ctx, orderID, requester, func(ctx context.Context, tx bun.Tx, order *tables.Order) error {
		product, err := database.FindByID[tables.Product](ctx, tx, req.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %s: %w", req.ProductID, lib.ErrNotFound)
		}

		productID := product.ID
		item := &tables.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   &productID,
			Quantity:    req.Quantity,
			Price:       product.Price,
			ProductName: product.Name,
			CreatedAt:   os.clock.Now(),
		}
		_, err = database.Query[tables.OrderItem](tx).Insert(ctx, item)
		return err
	})
}

func (os *OrderService) UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, requester Requester, quantity int) (*tables.Order, error) {
	if quantity < 1 {
		return nil, lib.NewValidationError("quantity", "must be at least 1")
	}

	return os.mutateItems(ctx, orderID, requester, func(ctx context.Context, tx bun.Tx, order *tables.Order) error {
		updated, err := database.Query[tables.OrderItem](tx).
			Where("id", itemID).
			Where("order_id", order.ID).
			Update(ctx, map[string]any{"quantity": quantity})
		if err != nil {
			return err
		}
		if updated == 0 {
			return fmt.Errorf("order item %s: %w", itemID, lib.ErrNotFound)
		}
		return nil
	})
}

func (os *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID, requester Requester) (*tables.Order, error) {
	return os.mutateItems(ctx, orderID, requester, func(ctx context.Context, tx bun.Tx, order *tables.Order) error {
		removed, err := database.Query[tables.OrderItem](tx).
			Where("id", itemID).
			Where("order_id", order.ID).
			Delete(ctx)
		if err != nil {
			return err
		}
		if removed == 0 {
			return fmt.Errorf("order item %s: %w", itemID, lib.ErrNotFound)
		}
		return nil
	})
}

// ChangeStatus moves an order through its lifecycle. Admins may apply any allowed
// transition; owners may only cancel.
func (os *OrderService) ChangeStatus(ctx context.Context, orderID uuid.UUID, requester Requester, next tables.OrderStatus) (*tables.Order, error) {
	if !next.IsValid() {
		return nil, lib.NewValidationError("status", fmt.Sprintf("unknown status %q", next))
	}

	var previous tables.OrderStatus
	order, err := database.TransactionWithResult(ctx, os.db, func(ctx context.Context, tx bun.Tx) (*tables.Order, error) {
		order, err := os.lockOrder(ctx, tx, orderID, requester)
		if err != nil {
			return nil, err
		}
		if !requester.IsAdmin && next != tables.OrderStatusCancelled {
			return nil, fmt.Errorf("order %s: only admins may set status %s: %w", orderID, next, lib.ErrForbidden)
		}
		if !order.Status.CanTransitionTo(next) {
			return nil, lib.NewValidationError("status", fmt.Sprintf("cannot change from %s to %s", order.Status, next))
		}

		previous = order.Status
		if _, err := database.Query[tables.Order](tx).
			Where("id", order.ID).
			Update(ctx, map[string]any{"status": next}); err != nil {
			return nil, err
		}

		return os.loadOrder(ctx, tx, orderID, requester)
	})
	if err != nil {
		return nil, lib.MapDBError(err)
	}

	os.logger.Info("Order status changed",
		gecho.Field("order_id", order.ID),
		gecho.Field("from", previous),
		gecho.Field("to", order.Status),
	)

	os.decryptAddress(order)
	os.notifyStatusChange(order)
	return order, nil
}

// mutateItems runs fn against an editable order and recomputes the order total
// in the same transaction
func (os *OrderService) mutateItems(ctx context.Context, orderID uuid.UUID, requester Requester, fn func(ctx context.Context, tx bun.Tx, order *tables.Order) error) (*tables.Order, error) {
	order, err := database.TransactionWithResult(ctx, os.db, func(ctx context.Context, tx bun.Tx) (*tables.Order, error) {
		order, err := os.lockOrder(ctx, tx, orderID, requester)
		if err != nil {
			return nil, err
		}
		if !order.Status.IsEditable() {
			return nil, lib.NewValidationError("status", fmt.Sprintf("items cannot change while the order is %s", order.Status))
		}

		if err := fn(ctx, tx, order); err != nil {
			return nil, err
		}

		if err := recomputeTotal(ctx, tx, order.ID); err != nil {
			return nil, err
		}
		return os.loadOrder(ctx, tx, orderID, requester)
	})
	if err != nil {
		return nil, lib.MapDBError(err)
	}

	os.decryptAddress(order)
	return order, nil
}

// lockOrder touches the order row first so concurrent writers to the same order serialise
func (os *OrderService) lockOrder(ctx context.Context, tx bun.Tx, orderID uuid.UUID, requester Requester) (*tables.Order, error) {
	touched, err := database.Query[tables.Order](tx).
		Where("id", orderID).
		Update(ctx, map[string]any{"updated_at": os.clock.Now()})
	if err != nil {
		return nil, err
	}
	if touched == 0 {
		return nil, fmt.Errorf("order %s: %w", orderID, lib.ErrNotFound)
	}

	order, err := database.FindByID[tables.Order](ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !requester.owns(order.UserID) {
		return nil, fmt.Errorf("order %s: %w", orderID, lib.ErrNotFound)
	}
	return order, nil
}

func (os *OrderService) loadOrder(ctx context.Context, db bun.IDB, orderID uuid.UUID, requester Requester) (*tables.Order, error) {
	order, err := database.Query[tables.Order](db).
		With("Items", orderItemsByCreation).
		Where("o.id", orderID).
		First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if order == nil || !requester.owns(order.UserID) {
		return nil, fmt.Errorf("order %s: %w", orderID, lib.ErrNotFound)
	}
	return order, nil
}

// recomputeTotal sets total_amount to the sum of the order's line totals
func recomputeTotal(ctx context.Context, tx bun.Tx, orderID uuid.UUID) error {
	items, err := database.Query[tables.OrderItem](tx).Where("order_id", orderID).All(ctx)
	if err != nil {
		return err
	}

	lines := make([]*tables.OrderItem, len(items))
	for i := range items {
		lines[i] = &items[i]
	}

	_, err = database.Query[tables.Order](tx).
		Where("id", orderID).
		Update(ctx, map[string]any{"total_amount": tables.OrderTotal(lines).Round(2)})
	return err
}

func orderItemsByCreation(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("created_at ASC", "id ASC")
}

func (os *OrderService) decryptAddress(order *tables.Order) {
	plain, err := lib.Decrypt(order.DeliveryAddress, os.cfg.Encryption.Key)
	if err != nil {
		// Keep the stored value rather than failing the whole read
		os.logger.Warn("Failed to decrypt delivery address", gecho.Field("error", err), gecho.Field("order_id", order.ID))
		return
	}
	order.DeliveryAddress = plain
}

// notifyStatusChange mails the order owner in the background
func (os *OrderService) notifyStatusChange(order *tables.Order) {
	if os.emailService == nil || !os.emailService.Enabled() {
		return
	}

	go func() {
		ctx := context.Background()
		user, err := database.FindByID[tables.User](ctx, os.db, order.UserID)
		if err != nil || user == nil {
			os.logger.Error("Failed to load order owner for notification",
				gecho.Field("error", err),
				gecho.Field("order_id", order.ID),
			)
			return
		}
		if err := os.emailService.SendOrderStatusEmail(user.Email, user.Username, order); err != nil {
			os.logger.Error("Failed to send order status email",
				gecho.Field("error", err),
				gecho.Field("order_id", order.ID),
			)
			return
		}
		os.logger.Info("Order status email sent", gecho.Field("order_id", order.ID))
	}()
}
