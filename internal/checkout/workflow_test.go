package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

type fakeOrders struct {
	created []*types.Order
	fail    bool
}

func (f *fakeOrders) Create(_ context.Context, order *types.Order) (*types.Order, error) {
	if f.fail {
		return nil, fmt.Errorf("db down")
	}
	order.ID = uuid.New()
	f.created = append(f.created, order)
	return order, nil
}

type fakePayments struct {
	verifyErr  error
	status     types.PaymentStatus
	statusErr  error
	verifyCall int
}

func (f *fakePayments) CreatePaymentOrder(_ context.Context, orderID uuid.UUID) (*GatewayCheckout, error) {
	return &GatewayCheckout{
		GatewayOrderID: "order_rzp_" + orderID.String()[:8],
		KeyID:          "rzp_test_key",
		AmountPaise:    35000,
		Currency:       "INR",
	}, nil
}

func (f *fakePayments) VerifyPayment(_ context.Context, _ uuid.UUID, _, _, _ string) error {
	f.verifyCall++
	return f.verifyErr
}

func (f *fakePayments) PaymentStatus(_ context.Context, _ uuid.UUID) (types.PaymentStatus, error) {
	return f.status, f.statusErr
}

type fakeCarts struct {
	items   []types.CartLineItem
	cleared []string
}

func (f *fakeCarts) Get(_ context.Context, sessionID string) (*types.Cart, error) {
	return &types.Cart{SessionID: sessionID, Items: f.items}, nil
}

func (f *fakeCarts) Clear(_ context.Context, sessionID string) error {
	f.cleared = append(f.cleared, sessionID)
	return nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
	infos     []string
}

func (r *recordingNotifier) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recordingNotifier) Error(msg string)   { r.errors = append(r.errors, msg) }
func (r *recordingNotifier) Info(msg string)    { r.infos = append(r.infos, msg) }

func validForm() ShippingForm {
	return ShippingForm{
		Name:       "Priya Sharma",
		Phone:      "9876543210",
		Address:    "221B Baker Street, Indiranagar",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560038",
	}
}

func cartWithOneItem() []types.CartLineItem {
	return []types.CartLineItem{
		{ProductID: "p1", VariantID: "v1", Title: "Matte Case", UnitPrice: 300, Quantity: 1},
	}
}

func newTestWorkflow(orders *fakeOrders, payments *fakePayments, carts *fakeCarts, notifier *recordingNotifier) *Workflow {
	return NewWorkflow(orders, payments, carts, nil, NewHostedPaymentFlow(), notifier)
}

func TestSubmit_InvalidFormReturnsFieldErrors(t *testing.T) {
	orders := &fakeOrders{}
	wf := newTestWorkflow(orders, &fakePayments{}, &fakeCarts{items: cartWithOneItem()}, &recordingNotifier{})

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          ShippingForm{},
		PaymentMethod: types.PaymentMethodGateway,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.FieldErrors)
	assert.Equal(t, "Please fix all errors before proceeding", res.Message)
	assert.Empty(t, orders.created, "no order should be created for an invalid form")
}

func TestSubmit_EmptyCart(t *testing.T) {
	wf := newTestWorkflow(&fakeOrders{}, &fakePayments{}, &fakeCarts{}, &recordingNotifier{})

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodGateway,
	})
	require.NoError(t, err)

	assert.Equal(t, "Your cart is empty", res.Message)
	assert.Nil(t, res.Order)
}

func TestSubmit_UnprocessableCart(t *testing.T) {
	carts := &fakeCarts{items: []types.CartLineItem{{ProductID: "p1", Quantity: 1}}}
	wf := newTestWorkflow(&fakeOrders{}, &fakePayments{}, carts, &recordingNotifier{})

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodGateway,
	})
	require.NoError(t, err)

	assert.Equal(t, "Cart items could not be processed. Please try again.", res.Message)
}

func TestSubmit_CODConfirmsImmediately(t *testing.T) {
	orders := &fakeOrders{}
	carts := &fakeCarts{items: cartWithOneItem()}
	notifier := &recordingNotifier{}
	wf := newTestWorkflow(orders, &fakePayments{}, carts, notifier)

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodCashOnDelivery,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Order)

	// 300 subtotal + 50 shipping + 50 COD fee
	assert.Equal(t, 400.0, res.Order.Total)
	assert.Equal(t, []string{"sess-1"}, carts.cleared)
	assert.Equal(t, []string{"Order placed successfully!"}, notifier.successes)
	assert.Equal(t, StateSucceeded, wf.StateOf(res.Order.ID))
}

func TestSubmit_GatewayOpensPaymentFlow(t *testing.T) {
	orders := &fakeOrders{}
	carts := &fakeCarts{items: cartWithOneItem()}
	flow := NewHostedPaymentFlow()
	wf := NewWorkflow(orders, &fakePayments{}, carts, nil, flow, &recordingNotifier{})

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodGateway,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	require.NotNil(t, res.Checkout)

	assert.True(t, flow.IsPending(res.Order.ID))
	assert.Empty(t, carts.cleared, "cart must survive until payment confirms")
	assert.Equal(t, StatePaymentPending, wf.StateOf(res.Order.ID))
}

func TestPaymentResult_SuccessClearsCart(t *testing.T) {
	orders := &fakeOrders{}
	carts := &fakeCarts{items: cartWithOneItem()}
	notifier := &recordingNotifier{}
	flow := NewHostedPaymentFlow()
	wf := NewWorkflow(orders, &fakePayments{}, carts, nil, flow, notifier)

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodGateway,
	})
	require.NoError(t, err)

	completed := flow.Complete(res.Order.ID, PaymentFlowResult{
		Outcome:          PaymentOutcomeSuccess,
		GatewayPaymentID: "pay_123",
		GatewaySignature: "sig",
	})
	require.True(t, completed)

	assert.Equal(t, []string{"sess-1"}, carts.cleared)
	assert.Equal(t, []string{"Payment successful! Your order is confirmed."}, notifier.successes)
	assert.Equal(t, StateSucceeded, wf.StateOf(res.Order.ID))
}

func TestPaymentResult_DismissalKeepsOrderAndCart(t *testing.T) {
	carts := &fakeCarts{items: cartWithOneItem()}
	notifier := &recordingNotifier{}
	flow := NewHostedPaymentFlow()
	wf := NewWorkflow(&fakeOrders{}, &fakePayments{}, carts, nil, flow, notifier)

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodGateway,
	})
	require.NoError(t, err)

	flow.Complete(res.Order.ID, PaymentFlowResult{Outcome: PaymentOutcomeDismissed})

	assert.Empty(t, carts.cleared)
	assert.Equal(t, []string{"Payment cancelled. Your order is saved and you can retry payment."}, notifier.infos)
	assert.Equal(t, StatePaymentPending, wf.StateOf(res.Order.ID))
}

func TestPaymentResult_VerifyErrorFallsBackToStoredStatus(t *testing.T) {
	payments := &fakePayments{
		verifyErr: fmt.Errorf("network timeout"),
		status:    types.PaymentStatusPaid,
	}
	carts := &fakeCarts{items: cartWithOneItem()}
	notifier := &recordingNotifier{}
	flow := NewHostedPaymentFlow()
	wf := NewWorkflow(&fakeOrders{}, payments, carts, nil, flow, notifier)

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodGateway,
	})
	require.NoError(t, err)

	flow.Complete(res.Order.ID, PaymentFlowResult{
		Outcome:          PaymentOutcomeSuccess,
		GatewayPaymentID: "pay_123",
		GatewaySignature: "sig",
	})

	assert.Equal(t, []string{"Payment verified successfully"}, notifier.successes)
	assert.Equal(t, []string{"sess-1"}, carts.cleared)
	assert.Equal(t, StateSucceeded, wf.StateOf(res.Order.ID))
}

func TestPaymentResult_VerifyErrorWithoutPaidStatusFails(t *testing.T) {
	payments := &fakePayments{
		verifyErr: fmt.Errorf("bad signature"),
		status:    types.PaymentStatusPending,
	}
	carts := &fakeCarts{items: cartWithOneItem()}
	notifier := &recordingNotifier{}
	flow := NewHostedPaymentFlow()
	wf := NewWorkflow(&fakeOrders{}, payments, carts, nil, flow, notifier)

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodGateway,
	})
	require.NoError(t, err)

	flow.Complete(res.Order.ID, PaymentFlowResult{
		Outcome:          PaymentOutcomeSuccess,
		GatewayPaymentID: "pay_123",
		GatewaySignature: "sig",
	})

	assert.Empty(t, carts.cleared)
	assert.Equal(t, []string{"Payment verification failed. Please contact support with your order ID."}, notifier.errors)
	assert.Equal(t, StateFailed, wf.StateOf(res.Order.ID))
}

func TestPaymentResult_FailureReportsReason(t *testing.T) {
	carts := &fakeCarts{items: cartWithOneItem()}
	notifier := &recordingNotifier{}
	flow := NewHostedPaymentFlow()
	wf := NewWorkflow(&fakeOrders{}, &fakePayments{}, carts, nil, flow, notifier)

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodGateway,
	})
	require.NoError(t, err)

	flow.Complete(res.Order.ID, PaymentFlowResult{
		Outcome:       PaymentOutcomeFailed,
		FailureReason: "Card declined by issuing bank",
	})

	assert.Equal(t, []string{"Card declined by issuing bank"}, notifier.errors)
	assert.Equal(t, StateFailed, wf.StateOf(res.Order.ID))
}

func TestSubmit_UPIRequiresUPIDetails(t *testing.T) {
	orders := &fakeOrders{}
	carts := &fakeCarts{items: cartWithOneItem()}
	flow := NewHostedPaymentFlow()
	wf := NewWorkflow(orders, &fakePayments{}, carts, nil, flow, &recordingNotifier{})

	form := validForm()
	form.UPIID = "priya@okhdfc"

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          form,
		PaymentMethod: types.PaymentMethodDirectUPI,
		UPIApp:        "gpay",
		UPIAppLabel:   "Google Pay",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	require.NotNil(t, res.Order.PaymentDetails)

	assert.Equal(t, "priya@okhdfc", res.Order.PaymentDetails.UPIID)
	assert.Equal(t, "Google Pay", res.Order.PaymentDetails.UPIAppLabel)
}

func newTestProfileStore(t *testing.T) *ProfileStore {
	server := miniredis.RunT(t)
	return NewProfileStore(redis.NewClient(&redis.Options{Addr: server.Addr()}))
}

func TestSubmit_ProfileSavedOnlyAfterPayment(t *testing.T) {
	profiles := newTestProfileStore(t)
	carts := &fakeCarts{items: cartWithOneItem()}
	flow := NewHostedPaymentFlow()
	wf := NewWorkflow(&fakeOrders{}, &fakePayments{}, carts, profiles, flow, &recordingNotifier{})

	form := validForm()
	form.UPIID = "priya@okhdfc"

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          form,
		PaymentMethod: types.PaymentMethodDirectUPI,
		UPIApp:        "gpay",
		UPIAppLabel:   "Google Pay",
		SaveProfile:   true,
	})
	require.NoError(t, err)

	assert.Nil(t, profiles.Load(context.Background(), "sess-1"), "nothing saved while payment is open")

	flow.Complete(res.Order.ID, PaymentFlowResult{
		Outcome:          PaymentOutcomeSuccess,
		GatewayPaymentID: "pay_123",
		GatewaySignature: "sig",
	})

	saved := profiles.Load(context.Background(), "sess-1")
	require.NotNil(t, saved)
	assert.Equal(t, "Priya Sharma", saved.Address.Name)
	require.NotNil(t, saved.UPI)
	assert.Equal(t, "priya@okhdfc", saved.UPI.UPIID)
}

func TestSubmit_FailedPaymentSavesNoProfile(t *testing.T) {
	profiles := newTestProfileStore(t)
	carts := &fakeCarts{items: cartWithOneItem()}
	flow := NewHostedPaymentFlow()
	wf := NewWorkflow(&fakeOrders{}, &fakePayments{}, carts, profiles, flow, &recordingNotifier{})

	res, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodGateway,
		SaveProfile:   true,
	})
	require.NoError(t, err)

	flow.Complete(res.Order.ID, PaymentFlowResult{Outcome: PaymentOutcomeFailed})

	assert.Nil(t, profiles.Load(context.Background(), "sess-1"))
}

func TestSubmit_UncheckedSaveForgetsUPI(t *testing.T) {
	profiles := newTestProfileStore(t)
	profiles.Save(context.Background(), "sess-1", SavedProfile{
		Address: types.ShippingAddress{Name: "Priya Sharma"},
		UPI:     &types.UPIDetails{UPIID: "priya@okhdfc"},
	})

	carts := &fakeCarts{items: cartWithOneItem()}
	notifier := &recordingNotifier{}
	wf := NewWorkflow(&fakeOrders{}, &fakePayments{}, carts, profiles, NewHostedPaymentFlow(), notifier)

	_, err := wf.Submit(context.Background(), SubmitRequest{
		SessionID:     "sess-1",
		Form:          validForm(),
		PaymentMethod: types.PaymentMethodCashOnDelivery,
		SaveProfile:   false,
	})
	require.NoError(t, err)

	saved := profiles.Load(context.Background(), "sess-1")
	require.NotNil(t, saved)
	assert.Nil(t, saved.UPI, "opting out forgets the remembered UPI handle")
	assert.Equal(t, "Priya Sharma", saved.Address.Name)
}

func TestRupeesToPaise(t *testing.T) {
	assert.Equal(t, int64(35000), RupeesToPaise(350))
	assert.Equal(t, int64(34999), RupeesToPaise(349.99))
	assert.Equal(t, int64(0), RupeesToPaise(0))
}
