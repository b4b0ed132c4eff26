package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/cart"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/httpx"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

type CartHandler struct {
	carts *cart.Service
}

func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	sessionCart, err := h.carts.Get(c.Context(), sessionID(c))
	if err != nil {
		return httpx.InternalServerError(c, "Failed to load cart", nil)
	}

	totals := cart.CalculateTotals(sessionCart.Items, types.PaymentMethod(c.Query("paymentMethod", "razorpay")))
	return httpx.Success(c, "Cart retrieved", fiber.Map{
		"cart":   sessionCart,
		"totals": totals,
	})
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "Invalid request body", nil)
	}

	updated, err := h.carts.AddItem(c.Context(), sessionID(c), req.toLineItem())
	if err != nil {
		return httpx.BadRequest(c, err.Error(), nil)
	}
	return httpx.Success(c, "Item added to cart", updated)
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "Invalid request body", nil)
	}

	updated, err := h.carts.UpdateQuantity(c.Context(), sessionID(c), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		return httpx.NotFound(c, err.Error())
	}
	return httpx.Success(c, "Cart updated", updated)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID := c.Query("productId")
	variantID := c.Query("variantId")
	if productID == "" {
		return httpx.BadRequest(c, "productId is required", nil)
	}

	updated, err := h.carts.RemoveItem(c.Context(), sessionID(c), productID, variantID)
	if err != nil {
		return httpx.InternalServerError(c, "Failed to remove item", nil)
	}
	return httpx.Success(c, "Item removed", updated)
}

func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.carts.Clear(c.Context(), sessionID(c)); err != nil {
		return httpx.InternalServerError(c, "Failed to clear cart", nil)
	}
	return httpx.Success(c, "Cart cleared", nil)
}
