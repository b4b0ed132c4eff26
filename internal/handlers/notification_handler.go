package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/httpx"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/notification"
)

// NotificationHandler serves the admin activity feed for an order.
type NotificationHandler struct {
	notifications *notification.NotificationRepository
}

func NewNotificationHandler(repo *notification.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: repo}
}

func (h *NotificationHandler) ListByOrder(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	records, err := h.notifications.ListByOrder(orderID)
	if err != nil {
		return httpx.InternalServerError(c, "Failed to list notifications", nil)
	}
	return httpx.Success(c, "Notifications retrieved", records)
}
