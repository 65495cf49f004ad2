package orders

import (
	"burnshop_server/api/middleware"
	"burnshop_server/handling"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// Every item mutation responds with the whole order so the client sees the recomputed total.

func (orm *OrderRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	orderID, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderItemRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid order item body", orm.logger, w)
		return
	}

	order, err := orm.orderService.AddItem(r.Context(), orderID, requester, body)
	if err != nil {
		handling.HandleError(err, "failed to add order item", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Item added"),
		gecho.WithData(order),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) UpdateItem(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	orderID, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w)
		return
	}
	itemID, err := lib.URLParamUUID(r, "item_id")
	if err != nil {
		handling.HandleError(err, "invalid order item id", orm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderItemRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid order item body", orm.logger, w)
		return
	}

	order, err := orm.orderService.UpdateItemQuantity(r.Context(), orderID, itemID, requester, body.Quantity)
	if err != nil {
		handling.HandleError(err, "failed to update order item", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Item updated"),
		gecho.WithData(order),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	orderID, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w)
		return
	}
	itemID, err := lib.URLParamUUID(r, "item_id")
	if err != nil {
		handling.HandleError(err, "invalid order item id", orm.logger, w)
		return
	}

	order, err := orm.orderService.RemoveItem(r.Context(), orderID, itemID, requester)
	if err != nil {
		handling.HandleError(err, "failed to remove order item", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Item removed"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
