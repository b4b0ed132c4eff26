package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/httpx"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/shipment"
)

// ShipmentHandler exposes the admin shipment actions. Each order gets
// its own workflow from the manager so the busy guard and loaded
// courier list persist between requests.
type ShipmentHandler struct {
	manager *shipment.Manager
}

func NewShipmentHandler(manager *shipment.Manager) *ShipmentHandler {
	return &ShipmentHandler{manager: manager}
}

func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	var req CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return httpx.BadRequest(c, "Invalid request body", nil)
	}

	params := shipment.CreateShipmentParams{
		PickupLocationID: req.PickupLocationID,
		Dimensions: shipment.Dimensions{
			Length:  req.Length,
			Breadth: req.Breadth,
			Height:  req.Height,
		},
		Weight: req.Weight,
	}

	updated, err := h.manager.For(orderID).CreateShipment(c.Context(), params)
	if err != nil {
		return httpx.BadRequest(c, err.Error(), nil)
	}
	return httpx.Success(c, "Shipment created successfully!", updated.Shipment)
}

func (h *ShipmentHandler) GetRecommendedCouriers(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	couriers, err := h.manager.For(orderID).GetRecommendedCouriers(c.Context())
	if err != nil {
		return httpx.BadRequest(c, err.Error(), nil)
	}
	return httpx.Success(c, "Available couriers", fiber.Map{
		"couriers": couriers,
	})
}

func (h *ShipmentHandler) AssignCourier(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	var req AssignCourierRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return httpx.BadRequest(c, "Invalid request body", nil)
	}

	updated, err := h.manager.For(orderID).AssignCourier(c.Context(), req.CourierID)
	if err != nil {
		return httpx.BadRequest(c, err.Error(), nil)
	}
	return httpx.Success(c, "Courier assigned", fiber.Map{
		"awbCode":     updated.Shipment.AWBCode,
		"courierName": updated.Shipment.CourierName,
	})
}

func (h *ShipmentHandler) GenerateLabel(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	labelURL, err := h.manager.For(orderID).GenerateLabel(c.Context())
	if err != nil {
		return httpx.BadRequest(c, err.Error(), nil)
	}
	return httpx.Success(c, "Label generated", fiber.Map{
		"labelUrl": labelURL,
	})
}

func (h *ShipmentHandler) RequestPickup(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	updated, err := h.manager.For(orderID).RequestPickup(c.Context())
	if err != nil {
		return httpx.BadRequest(c, err.Error(), nil)
	}
	return httpx.Success(c, "Pickup requested successfully!", updated.Shipment)
}

func (h *ShipmentHandler) CancelShipment(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	if _, err := h.manager.For(orderID).Cancel(c.Context()); err != nil {
		return httpx.BadRequest(c, err.Error(), nil)
	}
	return httpx.Success(c, "Shipment cancelled successfully", nil)
}
