package order

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// EnsureSchema creates the orders table when it does not exist yet.
// Items, address, payment and shipment live in JSON columns; only the
// fields the admin list filters on get their own columns.
func (r *OrderRepository) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			items JSONB NOT NULL,
			shipping_address JSONB NOT NULL,
			subtotal NUMERIC(12,2) NOT NULL,
			shipping_fee NUMERIC(12,2) NOT NULL,
			cod_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
			total NUMERIC(12,2) NOT NULL,
			payment_method TEXT NOT NULL,
			payment JSONB NOT NULL,
			payment_details JSONB,
			gateway_order_id TEXT,
			status TEXT NOT NULL,
			shipment JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("orders schema error: %v", err)
	}
	return nil
}

func (r *OrderRepository) CreateOrder(order *OrderAggregate) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("items serialization error: %v", err)
	}

	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("shipping address serialization error: %v", err)
	}

	paymentJSON, err := json.Marshal(order.Payment)
	if err != nil {
		return fmt.Errorf("payment serialization error: %v", err)
	}

	var detailsJSON []byte
	if order.PaymentDetails != nil {
		if detailsJSON, err = json.Marshal(order.PaymentDetails); err != nil {
			return fmt.Errorf("payment details serialization error: %v", err)
		}
	}

	query := `
		INSERT INTO orders (
			id, items, shipping_address, subtotal, shipping_fee, cod_fee,
			total, payment_method, payment, payment_details,
			gateway_order_id, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.Exec(
		query,
		order.ID,
		itemsJSON,
		addressJSON,
		order.Subtotal,
		order.ShippingFee,
		order.CODFee,
		order.Total,
		order.PaymentMethod,
		paymentJSON,
		nullableJSON(detailsJSON),
		nullableString(order.GatewayOrderID),
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("order creation error: %v", err)
	}

	return nil
}

func (r *OrderRepository) UpdateOrder(order *OrderAggregate) error {
	paymentJSON, err := json.Marshal(order.Payment)
	if err != nil {
		return fmt.Errorf("payment serialization error: %v", err)
	}

	var shipmentJSON []byte
	if order.Shipment != nil {
		if shipmentJSON, err = json.Marshal(order.Shipment); err != nil {
			return fmt.Errorf("shipment serialization error: %v", err)
		}
	}

	query := `
		UPDATE orders
		SET payment = $2, gateway_order_id = $3, status = $4,
			shipment = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(
		query,
		order.ID,
		paymentJSON,
		nullableString(order.GatewayOrderID),
		order.Status,
		nullableJSON(shipmentJSON),
		order.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("order update error: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("order not found: %s", order.ID)
	}

	return nil
}

func (r *OrderRepository) GetOrderByID(orderID uuid.UUID) (*OrderAggregate, error) {
	query := selectColumns + ` WHERE id = $1`

	row := r.db.QueryRow(query, orderID)
	order, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found: %s", orderID)
		}
		return nil, fmt.Errorf("order retrieval error: %v", err)
	}
	return order, nil
}

// GetOrderByAWB looks an order up by the air waybill code on its
// shipment, for customer-facing tracking.
func (r *OrderRepository) GetOrderByAWB(awbCode string) (*OrderAggregate, error) {
	query := selectColumns + ` WHERE shipment->>'awb_code' = $1`

	row := r.db.QueryRow(query, awbCode)
	order, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found for AWB: %s", awbCode)
		}
		return nil, fmt.Errorf("order retrieval error: %v", err)
	}
	return order, nil
}

func (r *OrderRepository) GetOrderByShipmentID(shipmentID string) (*OrderAggregate, error) {
	query := selectColumns + ` WHERE shipment->>'shipment_id' = $1`

	row := r.db.QueryRow(query, shipmentID)
	order, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found for shipment: %s", shipmentID)
		}
		return nil, fmt.Errorf("order retrieval error: %v", err)
	}
	return order, nil
}

// ListOrders returns newest-first pages for the admin order table.
func (r *OrderRepository) ListOrders(limit, offset int) ([]*OrderAggregate, error) {
	if limit <= 0 {
		limit = 50
	}

	query := selectColumns + ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("orders retrieval error: %v", err)
	}
	defer rows.Close()

	var orders []*OrderAggregate
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("order scan error: %v", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

const selectColumns = `
	SELECT id, items, shipping_address, subtotal, shipping_fee, cod_fee,
		   total, payment_method, payment, payment_details,
		   gateway_order_id, status, shipment, created_at, updated_at
	FROM orders`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*OrderAggregate, error) {
	order := &OrderAggregate{Order: &types.Order{}}
	var itemsJSON, addressJSON, paymentJSON []byte
	var detailsJSON, shipmentJSON []byte
	var gatewayOrderID sql.NullString

	err := row.Scan(
		&order.ID,
		&itemsJSON,
		&addressJSON,
		&order.Subtotal,
		&order.ShippingFee,
		&order.CODFee,
		&order.Total,
		&order.PaymentMethod,
		&paymentJSON,
		&detailsJSON,
		&gatewayOrderID,
		&order.Status,
		&shipmentJSON,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("items deserialization error: %v", err)
	}
	if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("shipping address deserialization error: %v", err)
	}
	if err := json.Unmarshal(paymentJSON, &order.Payment); err != nil {
		return nil, fmt.Errorf("payment deserialization error: %v", err)
	}
	NormalizePaymentStatus(paymentJSON, order.Order)

	if len(detailsJSON) > 0 {
		order.PaymentDetails = &types.UPIDetails{}
		if err := json.Unmarshal(detailsJSON, order.PaymentDetails); err != nil {
			return nil, fmt.Errorf("payment details deserialization error: %v", err)
		}
	}
	if len(shipmentJSON) > 0 {
		order.Shipment = &types.Shipment{}
		if err := json.Unmarshal(shipmentJSON, order.Shipment); err != nil {
			return nil, fmt.Errorf("shipment deserialization error: %v", err)
		}
	}
	if gatewayOrderID.Valid {
		order.GatewayOrderID = gatewayOrderID.String
	}

	return order, nil
}

func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func nullableJSON(value []byte) interface{} {
	if len(value) == 0 {
		return nil
	}
	return value
}
