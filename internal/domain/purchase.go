package domain

import "time"

// Purchase records an inbound delivery of a material from a supplier.
type Purchase struct {
	ID          string    `json:"id"`
	MaterialID  string    `json:"material_id"`
	SupplierID  string    `json:"supplier_id"`
	Quantity    int64     `json:"quantity"`
	UnitCost    float64   `json:"unit_cost"`
	TotalCost   float64   `json:"total_cost"`
	PurchasedAt time.Time `json:"purchased_at"`
}
