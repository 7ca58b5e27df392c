package domain

import "time"

// Sale records an outbound sale of a material. The customer is captured by
// name only, matching the walk-in trade this system serves.
type Sale struct {
	ID           string    `json:"id"`
	MaterialID   string    `json:"material_id"`
	CustomerName string    `json:"customer_name"`
	Quantity     int64     `json:"quantity"`
	TotalPrice   float64   `json:"total_price"`
	SoldAt       time.Time `json:"sold_at"`
}
