package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/checkout"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/httpx"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/order"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/payment"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

const (
	awaitPaymentWindow   = 25 * time.Second
	awaitPaymentInterval = 2 * time.Second
)

type PaymentHandler struct {
	payments *payment.PaymentService
	flow     *checkout.HostedPaymentFlow
}

func NewPaymentHandler(payments *payment.PaymentService, flow *checkout.HostedPaymentFlow) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		flow:     flow,
	}
}

// CreatePaymentOrder creates (or reuses) the gateway order so the
// customer can open, or reopen, the hosted payment page.
func (h *PaymentHandler) CreatePaymentOrder(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	created, err := h.payments.CreatePaymentOrder(c.Context(), orderID)
	if err != nil {
		return httpx.BadRequest(c, err.Error(), nil)
	}
	return httpx.Success(c, "Payment order created", created)
}

// VerifyPayment is the hosted page success callback: it completes the
// open payment flow, which verifies the signature and settles the
// order.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "Invalid request body", nil)
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	completed := h.flow.Complete(orderID, checkout.PaymentFlowResult{
		Outcome:          checkout.PaymentOutcomeSuccess,
		GatewayPaymentID: req.RazorpayPaymentID,
		GatewaySignature: req.RazorpaySignature,
	})
	if !completed {
		// No open flow (e.g. after a server restart): verify directly.
		if err := h.payments.VerifyPayment(c.Context(), orderID, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
			return httpx.BadRequest(c, "Payment verification failed. Please contact support with your order ID.", nil)
		}
	}

	status, err := h.payments.PaymentStatus(c.Context(), orderID)
	if err != nil {
		return httpx.InternalServerError(c, "Failed to read payment status", nil)
	}
	return httpx.Success(c, "Payment verified successfully", fiber.Map{
		"orderId":       orderID,
		"paymentStatus": status,
	})
}

// PaymentCancelled is the hosted page dismissal callback. The order
// stays payable.
func (h *PaymentHandler) PaymentCancelled(c *fiber.Ctx) error {
	var req PaymentCancelledRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "Invalid request body", nil)
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	h.flow.Complete(orderID, checkout.PaymentFlowResult{Outcome: checkout.PaymentOutcomeDismissed})
	return httpx.Success(c, "Payment cancelled. Your order is saved and you can retry payment.", nil)
}

// PaymentFailed is the hosted page failure callback.
func (h *PaymentHandler) PaymentFailed(c *fiber.Ctx) error {
	var req PaymentFailedRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "Invalid request body", nil)
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	h.flow.Complete(orderID, checkout.PaymentFlowResult{
		Outcome:       checkout.PaymentOutcomeFailed,
		FailureReason: req.Reason,
	})
	return httpx.Success(c, "Payment failure recorded", nil)
}

// GetPaymentStatus backs the order status page poller.
func (h *PaymentHandler) GetPaymentStatus(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}

	status, err := h.payments.PaymentStatus(c.Context(), orderID)
	if err != nil {
		return httpx.NotFound(c, err.Error())
	}
	return httpx.Success(c, "Payment status", fiber.Map{
		"orderId":       orderID,
		"paymentStatus": status,
	})
}

// AwaitPaymentStatus long-polls until the payment settles or the wait
// window elapses, so the status page does not need its own retry loop.
func (h *PaymentHandler) AwaitPaymentStatus(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return httpx.BadRequest(c, "Invalid order ID", nil)
	}
	if _, err := h.payments.PaymentStatus(c.Context(), orderID); err != nil {
		return httpx.NotFound(c, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Context(), awaitPaymentWindow)
	defer cancel()

	done := make(chan types.PaymentStatus, 1)
	poller := order.NewStatusPoller(h.payments, orderID, func(status types.PaymentStatus) {
		done <- status
	}).WithInterval(awaitPaymentInterval)
	defer poller.Stop()

	if poller.Refresh(ctx) {
		return httpx.Success(c, "Payment status", fiber.Map{
			"orderId":       orderID,
			"paymentStatus": poller.Last(),
		})
	}
	poller.Start(ctx)

	select {
	case status := <-done:
		return httpx.Success(c, "Payment status", fiber.Map{
			"orderId":       orderID,
			"paymentStatus": status,
		})
	case <-ctx.Done():
		return httpx.Success(c, "Payment still pending", fiber.Map{
			"orderId":       orderID,
			"paymentStatus": poller.Last(),
		})
	}
}
