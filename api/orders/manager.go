package orders

import (
	"burnshop_server/api/middleware"
	"burnshop_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	mw           *middleware.Middleware
}

func NewOrderRoutesManager(logger *gecho.Logger, orderService *services.OrderService, mw *middleware.Middleware) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		mw:           mw,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(orm.mw.RequireUser)
		r.Get("/", orm.ListOrders)
		r.Post("/", orm.CreateOrder)
		r.Get("/{id}", orm.GetOrder)
		r.Post("/{id}/items", orm.AddItem)
		r.Put("/{id}/items/{item_id}", orm.UpdateItem)
		r.Delete("/{id}/items/{item_id}", orm.RemoveItem)
		r.Post("/{id}/status", orm.ChangeStatus)
	})
}
