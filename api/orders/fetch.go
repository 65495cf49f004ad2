package orders

import (
	"burnshop_server/api/middleware"
	"burnshop_server/handling"
	"burnshop_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (orm *OrderRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	orders, err := orm.orderService.ListOrders(r.Context(), requester.UserID)
	if err != nil {
		handling.HandleError(err, "failed to fetch orders", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(orders),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) GetOrder(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	orderID, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w)
		return
	}

	order, err := orm.orderService.GetOrder(r.Context(), orderID, requester)
	if err != nil {
		handling.HandleError(err, "failed to fetch order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(order),
		gecho.Send(),
	)
}
