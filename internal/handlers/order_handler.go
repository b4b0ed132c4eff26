package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/httpx"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/order"
)

type OrderHandler struct {
	orders *order.OrderService
}

func NewOrderHandler(orders *order.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) GetOrderByID(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", map[string]interface{}{
			"order_id": c.Params("id"),
		})
	}

	found, err := h.orders.Get(c.Context(), orderID)
	if err != nil {
		return httpx.NotFound(c, err.Error())
	}
	return httpx.Success(c, "Order retrieved", found)
}

// ListOrders serves the admin order table, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	orders, err := h.orders.List(c.Context(), limit, offset)
	if err != nil {
		return httpx.InternalServerError(c, "Failed to list orders", nil)
	}
	return httpx.Success(c, "Orders retrieved", orders)
}

// TrackOrder accepts an order id, AWB code or shipment id.
func (h *OrderHandler) TrackOrder(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return httpx.BadRequest(c, "Tracking id is required", nil)
	}

	kind := order.TrackIDKind(c.Query("type", string(order.TrackByOrderID)))
	found, err := h.orders.Track(c.Context(), kind, id)
	if err != nil {
		return httpx.NotFound(c, "No order found for this tracking id")
	}
	return httpx.Success(c, "Order found", found)
}
