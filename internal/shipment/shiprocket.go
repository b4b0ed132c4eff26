package shipment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Shiprocket auth tokens are valid for ten days; refresh a day early.
const tokenLifetime = 9 * 24 * time.Hour

// ShiprocketClient implements Aggregator against the Shiprocket
// external API. All calls go through a circuit breaker so a flapping
// aggregator fails fast instead of tying up admin requests.
type ShiprocketClient struct {
	baseURL    string
	email      string
	password   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewShiprocketClient(baseURL, email, password string) *ShiprocketClient {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "shiprocket",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &ShiprocketClient{
		baseURL:    baseURL,
		email:      email,
		password:   password,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		breaker:    breaker,
	}
}

func (c *ShiprocketClient) authToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	body, err := json.Marshal(map[string]string{
		"email":    c.email,
		"password": c.password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("shiprocket login error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shiprocket login failed: status %d", resp.StatusCode)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", fmt.Errorf("shiprocket login decode error: %v", err)
	}
	if loginResp.Token == "" {
		return "", fmt.Errorf("shiprocket login returned no token")
	}

	c.token = loginResp.Token
	c.tokenExpiry = time.Now().Add(tokenLifetime)
	log.Printf("Shiprocket token refreshed, valid until %s", c.tokenExpiry.Format(time.RFC3339))
	return c.token, nil
}

// call performs an authenticated request through the circuit breaker
// and returns the raw response body.
func (c *ShiprocketClient) call(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		token, err := c.authToken(ctx)
		if err != nil {
			return nil, err
		}

		var body io.Reader
		if payload != nil {
			raw, err := json.Marshal(payload)
			if err != nil {
				return nil, err
			}
			body = bytes.NewReader(raw)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("shiprocket request error: %v", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("shiprocket response read error: %v", err)
		}

		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("shiprocket %s %s failed: %s", method, path, apiErrorMessage(raw, resp.StatusCode))
		}
		return raw, nil
	})
}

// apiErrorMessage extracts the aggregator's message so the admin sees
// the backend wording verbatim.
func apiErrorMessage(raw []byte, status int) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return fmt.Sprintf("status %d", status)
}

func (c *ShiprocketClient) CreateShipment(ctx context.Context, order *types.Order, params CreateShipmentParams) (string, error) {
	items := make([]map[string]interface{}, len(order.Items))
	for i, item := range order.Items {
		items[i] = map[string]interface{}{
			"name":          item.Title,
			"sku":           item.VariantID,
			"units":         item.Quantity,
			"selling_price": item.Price,
		}
	}

	payload := map[string]interface{}{
		"order_id":          order.ID.String(),
		"order_date":        order.CreatedAt.Format("2006-01-02 15:04"),
		"pickup_location":   params.PickupLocationID,
		"billing_customer_name": order.ShippingAddress.Name,
		"billing_address":   order.ShippingAddress.Address1,
		"billing_address_2": order.ShippingAddress.Address2,
		"billing_city":      order.ShippingAddress.City,
		"billing_state":     order.ShippingAddress.State,
		"billing_pincode":   order.ShippingAddress.PostalCode,
		"billing_country":   order.ShippingAddress.Country,
		"billing_phone":     order.ShippingAddress.Phone,
		"shipping_is_billing": true,
		"order_items":       items,
		"payment_method":    shiprocketPaymentMethod(order.PaymentMethod),
		"sub_total":         order.Total,
		"length":            params.Dimensions.Length,
		"breadth":           params.Dimensions.Breadth,
		"height":            params.Dimensions.Height,
		"weight":            params.Weight,
	}

	raw, err := c.call(ctx, http.MethodPost, "/orders/create/adhoc", payload)
	if err != nil {
		return "", err
	}

	var createResp struct {
		ShipmentID json.Number `json:"shipment_id"`
	}
	if err := json.Unmarshal(raw, &createResp); err != nil {
		return "", fmt.Errorf("shipment create decode error: %v", err)
	}
	if createResp.ShipmentID.String() == "" {
		return "", fmt.Errorf("shipment create returned no shipment id")
	}
	return createResp.ShipmentID.String(), nil
}

func (c *ShiprocketClient) AvailableCouriers(ctx context.Context, shipmentID, deliveryPIN string) ([]Courier, error) {
	path := fmt.Sprintf("/courier/serviceability?shipment_id=%s&delivery_postcode=%s", shipmentID, deliveryPIN)

	raw, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var svcResp struct {
		Data struct {
			AvailableCourierCompanies []struct {
				CourierCompanyID int         `json:"courier_company_id"`
				CourierName      string      `json:"courier_name"`
				Rate             float64     `json:"rate"`
				EstimatedDays    json.Number `json:"estimated_delivery_days"`
				Rating           float64     `json:"rating"`
			} `json:"available_courier_companies"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &svcResp); err != nil {
		return nil, fmt.Errorf("serviceability decode error: %v", err)
	}

	couriers := make([]Courier, len(svcResp.Data.AvailableCourierCompanies))
	for i, company := range svcResp.Data.AvailableCourierCompanies {
		couriers[i] = Courier{
			ID:            company.CourierCompanyID,
			Name:          company.CourierName,
			Freight:       company.Rate,
			EstimatedDays: company.EstimatedDays.String(),
			Rating:        company.Rating,
		}
	}
	return couriers, nil
}

func (c *ShiprocketClient) AssignCourier(ctx context.Context, shipmentID string, courierID int) (*AssignedCourier, error) {
	payload := map[string]interface{}{
		"shipment_id": shipmentID,
		"courier_id":  courierID,
	}

	raw, err := c.call(ctx, http.MethodPost, "/courier/assign/awb", payload)
	if err != nil {
		return nil, err
	}

	var awbResp struct {
		Response struct {
			Data struct {
				AWBCode     string `json:"awb_code"`
				CourierName string `json:"courier_name"`
			} `json:"data"`
		} `json:"response"`
	}
	if err := json.Unmarshal(raw, &awbResp); err != nil {
		return nil, fmt.Errorf("AWB assign decode error: %v", err)
	}
	if awbResp.Response.Data.AWBCode == "" {
		return nil, fmt.Errorf("AWB assignment returned no AWB code")
	}

	return &AssignedCourier{
		AWBCode:     awbResp.Response.Data.AWBCode,
		CourierName: awbResp.Response.Data.CourierName,
	}, nil
}

func (c *ShiprocketClient) GenerateLabel(ctx context.Context, shipmentID string) (string, error) {
	payload := map[string]interface{}{
		"shipment_id": []string{shipmentID},
	}

	raw, err := c.call(ctx, http.MethodPost, "/courier/generate/label", payload)
	if err != nil {
		return "", err
	}

	var labelResp struct {
		LabelURL string `json:"label_url"`
	}
	if err := json.Unmarshal(raw, &labelResp); err != nil {
		return "", fmt.Errorf("label decode error: %v", err)
	}
	if labelResp.LabelURL == "" {
		return "", fmt.Errorf("label generation returned no URL")
	}
	return labelResp.LabelURL, nil
}

func (c *ShiprocketClient) RequestPickup(ctx context.Context, shipmentID string) error {
	payload := map[string]interface{}{
		"shipment_id": []string{shipmentID},
	}

	_, err := c.call(ctx, http.MethodPost, "/courier/generate/pickup", payload)
	return err
}

func (c *ShiprocketClient) CancelShipment(ctx context.Context, shipmentID string) error {
	payload := map[string]interface{}{
		"ids": []string{shipmentID},
	}

	_, err := c.call(ctx, http.MethodPost, "/orders/cancel", payload)
	return err
}

func shiprocketPaymentMethod(method types.PaymentMethod) string {
	if method == types.PaymentMethodCashOnDelivery {
		return "COD"
	}
	return "Prepaid"
}
