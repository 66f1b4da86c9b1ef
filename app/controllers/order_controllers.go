package controllers

import (
	"errors"
	"net/http"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/app/services"
	"github.com/akil18/cop-shop-server-side/pkg/ctx"
)

type OrderController struct {
	orders  *repositories.OrderRepository
	service *services.OrderService
}

func NewOrderController(orders *repositories.OrderRepository, service *services.OrderService) *OrderController {
	return &OrderController{orders: orders, service: service}
}

// Store handles POST /orders. A repeat order for the same listing is a 409
// with {"message":"Order already exists"}.
func (oc *OrderController) Store(c *ctx.Context) {
	var o models.Order
	if !c.BindJSON(&o) {
		return
	}

	res, err := oc.service.Place(c.Context(), o)
	if errors.Is(err, services.ErrOrderExists) {
		c.JSON(http.StatusConflict, map[string]string{"message": services.ErrOrderExists.Message()})
		return
	}
	respond(c, res, err)
}

// ByBuyer handles GET /orders/{email}.
func (oc *OrderController) ByBuyer(c *ctx.Context) {
	orders, err := oc.orders.ByBuyer(c.Context(), c.Param("email"))
	respond(c, orders, err)
}

// Show handles GET /orders/payment/{id}. An unknown id renders null.
func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}
	order, err := oc.orders.Find(c.Context(), id)
	respond(c, order, err)
}
