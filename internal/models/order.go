package models

import "time"

type OrderStatus string

// Only OrderOngoing and OrderCompleted are reachable. The remaining values
// are reserved so stored orders that carry them still decode.
const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderOngoing   OrderStatus = "ongoing"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled, OrderOngoing:
		return true
	}
	return false
}

// OrderLine is a copy of a cart line taken at checkout.
type OrderLine struct {
	ProductID     string        `json:"productId"`
	Name          string        `json:"name"`
	Customization Customization `json:"customization"`
	Quantity      int           `json:"quantity"`
	UnitPrice     float64       `json:"unitPrice"`
	LineTotal     float64       `json:"lineTotal"`
}

// Order is a checked-out cart. Summary carries the flattened coffee name
// shown in order lists.
type Order struct {
	ID           string      `json:"id"`
	Lines        []OrderLine `json:"lines"`
	Summary      string      `json:"summary"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	TotalAmount  float64     `json:"totalAmount"`
	Address      string      `json:"address"`
	PointsEarned int         `json:"pointsEarned,omitempty"`
}
