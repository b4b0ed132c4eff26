package types

import "time"

// CartLineItem identity is the (ProductID, VariantID) pair; adding the
// same pair again merges quantities instead of appending a duplicate.
type CartLineItem struct {
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	Title     string  `json:"title,omitempty"`
	Brand     string  `json:"brand,omitempty"`
	Model     string  `json:"model,omitempty"`
	Material  string  `json:"material,omitempty"`
	Image     string  `json:"image,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	SessionID string         `json:"session_id"`
	Items     []CartLineItem `json:"items"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
