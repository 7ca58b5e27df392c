package domain

// OrderDetail is a line item on an order: a quantity of one material and
// its subtotal.
type OrderDetail struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"order_id"`
	MaterialID string  `json:"material_id"`
	Quantity   int64   `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}
