// internal/handlers/order.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/perfume-store/internal/services"
	"github.com/javajoker/perfume-store/internal/utils"
)

type OrderHandler struct {
	orderService   *services.OrderService
	paymentService *services.PaymentService
}

func NewOrderHandler(orderService *services.OrderService, paymentService *services.PaymentService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		paymentService: paymentService,
	}
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	orders, err := h.orderService.ListOrders(userID)
	if err != nil {
		respondError(c, err, "order")
		return
	}
	utils.SuccessResponse(c, orders)
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orderService.CreateOrder(userID, &req)
	if err != nil {
		respondError(c, err, "order")
		return
	}
	utils.CreatedResponse(c, order)
}

// POST /orders/:id/payment-intent
func (h *OrderHandler) CreatePaymentIntent(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		utils.NotFoundResponse(c, "order")
		return
	}

	intent, err := h.paymentService.CreateOrderPaymentIntent(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, err, "order")
		return
	}
	utils.CreatedResponse(c, intent)
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
