package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// validTransitions defines the order state machine. Completed and cancelled
// are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderCompleted, OrderCancelled},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a purchase intent. Price is a snapshot taken when the order was
// placed and never follows later artwork price edits.
type Order struct {
	ID        string      `json:"id"`
	ArtworkID string      `json:"artworkId"`
	BuyerID   string      `json:"buyerId"`
	Price     float64     `json:"price"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
