package orders

import (
	"burnshop_server/api/middleware"
	"burnshop_server/handling"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// CreateOrder opens an empty order in processing for the signed-in user
func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	body, err := lib.ExtractAndValidateBody[structs.CreateOrderRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid order body", orm.logger, w)
		return
	}

	order, err := orm.orderService.CreateOrder(r.Context(), requester.UserID, body)
	if err != nil {
		handling.HandleError(err, "failed to create order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order created"),
		gecho.WithData(map[string]any{
			"order":     order,
			"reference": lib.OrderReference(order.ID),
		}),
		gecho.Send(),
	)
}
