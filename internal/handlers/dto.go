package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

const sessionCookie = "cart_session"

// sessionID resolves the cart session for a request: the X-Session-ID
// header wins, then the session cookie; a brand new visitor gets a
// fresh id set as a cookie.
func sessionID(c *fiber.Ctx) string {
	if id := c.Get("X-Session-ID"); id != "" {
		return id
	}
	if id := c.Cookies(sessionCookie); id != "" {
		return id
	}

	id := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   30 * 24 * 60 * 60,
	})
	return id
}

type AddCartItemRequest struct {
	ProductID string  `json:"productId"`
	VariantID string  `json:"variantId"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	Material  string  `json:"material"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (r AddCartItemRequest) toLineItem() types.CartLineItem {
	return types.CartLineItem{
		ProductID: r.ProductID,
		VariantID: r.VariantID,
		Title:     r.Title,
		Brand:     r.Brand,
		Model:     r.Model,
		Material:  r.Material,
		Image:     r.Image,
		UnitPrice: r.Price,
		Quantity:  r.Quantity,
	}
}

type UpdateCartItemRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest mirrors the checkout page submission.
type CreateOrderRequest struct {
	Shipping       ShippingRequest `json:"shippingAddress"`
	PaymentMethod  string          `json:"paymentMethod"`
	UPIID          string          `json:"upiId,omitempty"`
	UPIApp         string          `json:"upiApp,omitempty"`
	UPIAppLabel    string          `json:"upiAppLabel,omitempty"`
	SaveProfile    bool            `json:"saveProfile"`
}

type ShippingRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type VerifyPaymentRequest struct {
	OrderID           string `json:"orderId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

type PaymentCancelledRequest struct {
	OrderID string `json:"orderId"`
}

type PaymentFailedRequest struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

type CreateShipmentRequest struct {
	PickupLocationID int     `json:"pickupLocationId"`
	Length           float64 `json:"length"`
	Breadth          float64 `json:"breadth"`
	Height           float64 `json:"height"`
	Weight           float64 `json:"weight"`
}

type AssignCourierRequest struct {
	CourierID int `json:"courierId"`
}

type SaveCollectionRequest struct {
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func parseOrderID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
