package notification

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is a delivered storefront notification, kept for the admin
// activity feed.
type Record struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	EventType string    `json:"event_type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL,
			event_type TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("notifications schema error: %v", err)
	}
	return nil
}

func (r *NotificationRepository) Save(record *Record) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO notifications (id, order_id, event_type, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(query, record.ID, record.OrderID, record.EventType, record.Message, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("notification save error: %v", err)
	}
	return nil
}

func (r *NotificationRepository) ListByOrder(orderID uuid.UUID) ([]*Record, error) {
	query := `
		SELECT id, order_id, event_type, message, created_at
		FROM notifications
		WHERE order_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("notifications query error: %v", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record := &Record{}
		if err := rows.Scan(&record.ID, &record.OrderID, &record.EventType, &record.Message, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("notification scan error: %v", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
