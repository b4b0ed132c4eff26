package cart

import (
	"math"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Pricing constants in rupees. Shipping is waived above the free
// shipping threshold, and cash on delivery carries a flat handling fee.
const (
	FreeShippingThreshold = 500.0
	ShippingFee           = 50.0
	CODFee                = 50.0
)

// Totals is the price breakdown shown on the cart and checkout pages.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shipping_fee"`
	CODFee      float64 `json:"cod_fee"`
	Total       float64 `json:"total"`
}

// CalculateTotals prices the cart. Malformed line items are coerced
// rather than rejected: a negative or NaN unit price counts as zero and
// a quantity below one counts as one, so a corrupted stored cart still
// produces a usable total.
func CalculateTotals(items []types.CartLineItem, paymentMethod types.PaymentMethod) Totals {
	var subtotal float64
	for _, item := range items {
		price := item.UnitPrice
		if price < 0 || math.IsNaN(price) {
			price = 0
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		subtotal += price * float64(qty)
	}

	var shipping float64
	if subtotal <= FreeShippingThreshold {
		shipping = ShippingFee
	}

	var codFee float64
	if paymentMethod == types.PaymentMethodCashOnDelivery {
		codFee = CODFee
	}

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: shipping,
		CODFee:      codFee,
		Total:       subtotal + shipping + codFee,
	}
}
