package orders

import (
	"burnshop_server/api/middleware"
	"burnshop_server/handling"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ChangeStatus moves an order along its lifecycle. Admins may make any allowed transition; owners may only cancel.
func (orm *OrderRoutesManager) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	orderID, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderStatusRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid order status body", orm.logger, w)
		return
	}

	order, err := orm.orderService.ChangeStatus(r.Context(), orderID, requester, tables.OrderStatus(body.Status))
	if err != nil {
		handling.HandleError(err, "failed to change order status", orm.logger, w)
		return
	}

	orm.logger.Info("Order status changed",
		gecho.Field("order_id", order.ID),
		gecho.Field("status", order.Status),
		gecho.Field("by", requester.UserID),
	)

	gecho.Success(w,
		gecho.WithMessage("Order status updated"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
