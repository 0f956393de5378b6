package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tmwanza/storefront-backend/internal/modules/cart"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus validates a status string against the recognized set.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Order is an immutable snapshot of a cart at placement time. Only Status
// changes after creation, and only forward through the transition graph.
type Order struct {
	ID        uint64             `json:"id"`
	UserID    identity.Principal `json:"userId"`
	Items     []cart.Item        `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	Status    Status             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

// CreateRequest is the payload for placing an order. Total is what the
// caller saw at checkout; the engine recomputes it from current prices and
// rejects a mismatch beyond tolerance.
type CreateRequest struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// StatusRequest is the payload for advancing an order's status.
type StatusRequest struct {
	Status string `json:"status"`
}
