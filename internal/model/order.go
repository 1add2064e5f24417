package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is a snapshot of a cart line at checkout time. Prices are
// frozen here so later product edits do not rewrite order history.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

// Order represents a shop purchase picked up in store. PickupCode is the
// 12-character uppercase code the customer presents at the counter.
type Order struct {
	Base
	ClientID    uuid.UUID       `db:"client_id" json:"client_id"`
	Items       json.RawMessage `db:"items" json:"items"`
	Total       float64         `db:"total" json:"total"`
	Status      OrderStatus     `db:"status" json:"status"`
	PickupCode  string          `db:"pickup_code" json:"pickup_code"`
	DeliveredAt *time.Time      `db:"delivered_at" json:"delivered_at,omitempty"`
}

type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

type CheckoutRequest struct {
	Items []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}
