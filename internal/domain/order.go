package domain

import "time"

// Order is a customer order header.
type Order struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	TotalAmount float64   `json:"total_amount"`
	OrderedAt   time.Time `json:"ordered_at"`
}
