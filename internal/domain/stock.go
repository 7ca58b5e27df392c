package domain

import "time"

// Stock is an on-hand batch of a material sourced from a supplier.
type Stock struct {
	ID          string    `json:"id"`
	MaterialID  string    `json:"material_id"`
	SupplierID  string    `json:"supplier_id"`
	Quantity    int64     `json:"quantity"`
	PurchasedAt time.Time `json:"purchased_at"`
}
