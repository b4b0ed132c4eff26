package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/checkout"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/httpx"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

type CheckoutHandler struct {
	workflow *checkout.Workflow
	profiles *checkout.ProfileStore
}

func NewCheckoutHandler(workflow *checkout.Workflow, profiles *checkout.ProfileStore) *CheckoutHandler {
	return &CheckoutHandler{
		workflow: workflow,
		profiles: profiles,
	}
}

// SubmitOrder places an order from the session cart. Field validation
// failures come back as a 400 with the per-field messages the checkout
// form renders inline.
func (h *CheckoutHandler) SubmitOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "Invalid request body", nil)
	}

	method := types.PaymentMethod(req.PaymentMethod)
	switch method {
	case types.PaymentMethodGateway, types.PaymentMethodDirectUPI, types.PaymentMethodCashOnDelivery:
	default:
		return httpx.BadRequest(c, "Unknown payment method", map[string]interface{}{
			"payment_method": req.PaymentMethod,
		})
	}

	result, err := h.workflow.Submit(c.Context(), checkout.SubmitRequest{
		SessionID: sessionID(c),
		Form: checkout.ShippingForm{
			Name:       req.Shipping.Name,
			Phone:      req.Shipping.Phone,
			Address:    req.Shipping.Address1,
			Address2:   req.Shipping.Address2,
			City:       req.Shipping.City,
			State:      req.Shipping.State,
			PostalCode: req.Shipping.PostalCode,
			UPIID:      req.UPIID,
		},
		PaymentMethod: method,
		UPIApp:        req.UPIApp,
		UPIAppLabel:   req.UPIAppLabel,
		SaveProfile:   req.SaveProfile,
	})
	if err != nil {
		// The workflow wraps the most specific collaborator message;
		// the checkout page shows it verbatim.
		return httpx.InternalServerError(c, err.Error(), nil)
	}

	if len(result.FieldErrors) > 0 {
		details := make(map[string]interface{}, len(result.FieldErrors))
		for field, msg := range result.FieldErrors {
			details[field] = msg
		}
		return httpx.BadRequest(c, result.Message, details)
	}
	if result.Order == nil {
		return httpx.BadRequest(c, result.Message, nil)
	}

	return httpx.Created(c, result.Message, fiber.Map{
		"order":    result.Order,
		"checkout": result.Checkout,
	})
}

// GetProfile returns the saved shipping prefill for this session.
func (h *CheckoutHandler) GetProfile(c *fiber.Ctx) error {
	profile := h.profiles.Load(c.Context(), sessionID(c))
	if profile == nil {
		return httpx.NotFound(c, "No saved checkout profile")
	}
	return httpx.Success(c, "Checkout profile", profile)
}

// GetStates serves the state dropdown choices.
func (h *CheckoutHandler) GetStates(c *fiber.Ctx) error {
	return httpx.Success(c, "States", checkout.IndianStates)
}
