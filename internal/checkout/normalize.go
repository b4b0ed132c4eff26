package checkout

import (
	"strings"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// NormalizeCartItems converts cart lines into order line items, dropping
// anything without a product id. Custom (user-photo) products carry a
// synthetic "custom_" id and may arrive without a variant; those get a
// derived variant id so the line still has a stable identity.
func NormalizeCartItems(items []types.CartLineItem) []types.OrderLineItem {
	normalized := make([]types.OrderLineItem, 0, len(items))

	for _, item := range items {
		if item.ProductID == "" {
			continue
		}

		variantID := item.VariantID
		if variantID == "" {
			if !strings.HasPrefix(item.ProductID, "custom_") {
				continue
			}
			variantID = item.ProductID + "_variant"
		}

		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		title := item.Title
		if title == "" && strings.HasPrefix(item.ProductID, "custom_") {
			title = "Custom product"
		}

		normalized = append(normalized, types.OrderLineItem{
			ProductID: item.ProductID,
			VariantID: variantID,
			Title:     title,
			Brand:     item.Brand,
			Model:     item.Model,
			Material:  item.Material,
			Price:     item.UnitPrice,
			Quantity:  qty,
			Image:     item.Image,
		})
	}

	return normalized
}
