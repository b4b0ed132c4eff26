package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

func TestCalculateTotals_ShippingBelowThreshold(t *testing.T) {
	items := []types.CartLineItem{
		{ProductID: "p1", VariantID: "v1", UnitPrice: 150, Quantity: 2},
	}

	totals := CalculateTotals(items, types.PaymentMethodGateway)

	assert.Equal(t, 300.0, totals.Subtotal)
	assert.Equal(t, 50.0, totals.ShippingFee)
	assert.Equal(t, 0.0, totals.CODFee)
	assert.Equal(t, 350.0, totals.Total)
}

func TestCalculateTotals_FreeShippingWithCOD(t *testing.T) {
	items := []types.CartLineItem{
		{ProductID: "p1", VariantID: "v1", UnitPrice: 600, Quantity: 1},
	}

	totals := CalculateTotals(items, types.PaymentMethodCashOnDelivery)

	assert.Equal(t, 600.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.ShippingFee)
	assert.Equal(t, 50.0, totals.CODFee)
	assert.Equal(t, 650.0, totals.Total)
}

func TestCalculateTotals_ExactThresholdStillCharged(t *testing.T) {
	items := []types.CartLineItem{
		{ProductID: "p1", VariantID: "v1", UnitPrice: 500, Quantity: 1},
	}

	totals := CalculateTotals(items, types.PaymentMethodGateway)

	assert.Equal(t, 50.0, totals.ShippingFee)
	assert.Equal(t, 550.0, totals.Total)
}

func TestCalculateTotals_CoercesMalformedLines(t *testing.T) {
	items := []types.CartLineItem{
		{ProductID: "p1", VariantID: "v1", UnitPrice: -20, Quantity: 3},
		{ProductID: "p2", VariantID: "v2", UnitPrice: math.NaN(), Quantity: 1},
		{ProductID: "p3", VariantID: "v3", UnitPrice: 100, Quantity: 0},
	}

	totals := CalculateTotals(items, types.PaymentMethodGateway)

	assert.Equal(t, 100.0, totals.Subtotal)
	assert.Equal(t, 150.0, totals.Total)
}

func TestCalculateTotals_ShippingChargedWheneverBelowThreshold(t *testing.T) {
	// shippingFee == 0 exactly when subtotal > 500, even for an empty
	// cart (which checkout rejects before pricing matters).
	totals := CalculateTotals(nil, types.PaymentMethodGateway)

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 50.0, totals.ShippingFee)
	assert.Equal(t, 50.0, totals.Total)
}
