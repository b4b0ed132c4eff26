package payment

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

type fakeOrders struct {
	orders    map[uuid.UUID]*types.Order
	confirmed []string
}

func newFakeOrders(orders ...*types.Order) *fakeOrders {
	f := &fakeOrders{orders: make(map[uuid.UUID]*types.Order)}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrders) Get(_ context.Context, orderID uuid.UUID) (*types.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order not found: %s", orderID)
	}
	return order, nil
}

func (f *fakeOrders) AttachGatewayOrder(_ context.Context, orderID uuid.UUID, gatewayOrderID string) error {
	order, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order not found: %s", orderID)
	}
	order.GatewayOrderID = gatewayOrderID
	return nil
}

func (f *fakeOrders) ConfirmPayment(_ context.Context, orderID uuid.UUID, transactionID string) (*types.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order not found: %s", orderID)
	}
	order.Payment.Status = types.PaymentStatusPaid
	order.Payment.TransactionID = transactionID
	f.confirmed = append(f.confirmed, transactionID)
	return order, nil
}

func (f *fakeOrders) PaymentStatus(_ context.Context, orderID uuid.UUID) (types.PaymentStatus, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return "", fmt.Errorf("order not found: %s", orderID)
	}
	return order.Payment.Status, nil
}

func pendingOrder(total float64) *types.Order {
	return &types.Order{
		ID:    uuid.New(),
		Total: total,
		Payment: types.PaymentInfo{
			Status: types.PaymentStatusPending,
			Method: types.PaymentMethodGateway,
		},
	}
}

func TestCreatePaymentOrder_ConvertsToPaise(t *testing.T) {
	order := pendingOrder(349.50)
	orders := newFakeOrders(order)
	svc := NewPaymentService(NewMockGateway(), "", orders, nil)

	created, err := svc.CreatePaymentOrder(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(34950), created.AmountPaise)
	assert.Equal(t, "INR", created.Currency)
	assert.NotEmpty(t, created.GatewayOrderID)
	assert.Equal(t, created.GatewayOrderID, order.GatewayOrderID)
}

func TestCreatePaymentOrder_ReusesExistingGatewayOrder(t *testing.T) {
	order := pendingOrder(500)
	orders := newFakeOrders(order)
	svc := NewPaymentService(NewMockGateway(), "", orders, nil)

	first, err := svc.CreatePaymentOrder(context.Background(), order.ID)
	require.NoError(t, err)

	second, err := svc.CreatePaymentOrder(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, first.GatewayOrderID, second.GatewayOrderID)
}

func TestCreatePaymentOrder_RejectsPaidOrder(t *testing.T) {
	order := pendingOrder(500)
	order.Payment.Status = types.PaymentStatusPaid
	svc := NewPaymentService(NewMockGateway(), "", newFakeOrders(order), nil)

	_, err := svc.CreatePaymentOrder(context.Background(), order.ID)

	assert.Error(t, err)
}

func TestVerifyPayment_ValidSignatureConfirms(t *testing.T) {
	order := pendingOrder(500)
	order.GatewayOrderID = "order_abc"
	orders := newFakeOrders(order)
	svc := NewPaymentService(NewMockGateway(), "secret", orders, nil)

	sig := signPayload("order_abc", "pay_123", "secret")
	err := svc.VerifyPayment(context.Background(), order.ID, "order_abc", "pay_123", sig)
	require.NoError(t, err)

	assert.Equal(t, types.PaymentStatusPaid, order.Payment.Status)
	assert.Equal(t, []string{"pay_123"}, orders.confirmed)
}

func TestVerifyPayment_BadSignatureRejected(t *testing.T) {
	order := pendingOrder(500)
	order.GatewayOrderID = "order_abc"
	orders := newFakeOrders(order)
	svc := NewPaymentService(NewMockGateway(), "secret", orders, nil)

	err := svc.VerifyPayment(context.Background(), order.ID, "order_abc", "pay_123", "forged")

	assert.Error(t, err)
	assert.Empty(t, orders.confirmed)
}

func TestVerifyPayment_GatewayOrderMismatch(t *testing.T) {
	order := pendingOrder(500)
	order.GatewayOrderID = "order_abc"
	svc := NewPaymentService(NewMockGateway(), "", newFakeOrders(order), nil)

	err := svc.VerifyPayment(context.Background(), order.ID, "order_other", "pay_123", "sig")

	assert.Error(t, err)
}

func TestVerifyPayment_MockModeSkipsSignature(t *testing.T) {
	order := pendingOrder(500)
	order.GatewayOrderID = "order_abc"
	orders := newFakeOrders(order)
	svc := NewPaymentService(NewMockGateway(), "", orders, nil)

	err := svc.VerifyPayment(context.Background(), order.ID, "order_abc", "pay_123", "anything")
	require.NoError(t, err)

	assert.Equal(t, types.PaymentStatusPaid, order.Payment.Status)
}
