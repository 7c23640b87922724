package domain

import "time"

// OrderStatusConfirmed is the only status a simulated checkout produces.
const OrderStatusConfirmed = "confirmed"

// Order is the confirmation returned by the simulated checkout. No payment
// processor is involved and orders are not persisted.
type Order struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"userId"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}
