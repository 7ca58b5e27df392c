package sqlite

import (
	"context"

	"github.com/ironbark/buildmat/internal/domain"
)

type orderDetailsRepo struct {
	db dbtx
}

const orderDetailColumns = `id, order_id, material_id, quantity, subtotal`

func scanOrderDetail(row interface{ Scan(...any) error }) (domain.OrderDetail, error) {
	var d domain.OrderDetail
	err := row.Scan(&d.ID, &d.OrderID, &d.MaterialID, &d.Quantity, &d.Subtotal)
	return d, err
}

func (r *orderDetailsRepo) ListOrderDetails(ctx context.Context) ([]domain.OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderDetailColumns+` FROM order_details ORDER BY order_id, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderDetail
	for rows.Next() {
		d, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *orderDetailsRepo) ListOrderDetailsByOrder(ctx context.Context, orderID string) ([]domain.OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderDetailColumns+` FROM order_details WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderDetail
	for rows.Next() {
		d, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *orderDetailsRepo) GetOrderDetailByID(ctx context.Context, id string) (domain.OrderDetail, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderDetailColumns+` FROM order_details WHERE id = ?`, id)

	d, err := scanOrderDetail(row)
	if err != nil {
		return domain.OrderDetail{}, mapNotFound(err)
	}
	return d, nil
}

func (r *orderDetailsRepo) CreateOrderDetail(ctx context.Context, d domain.OrderDetail) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO order_details (id, order_id, material_id, quantity, subtotal)
		 VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.OrderID, d.MaterialID, d.Quantity, d.Subtotal)
	return mapConstraint(err)
}

func (r *orderDetailsRepo) UpdateOrderDetail(ctx context.Context, d domain.OrderDetail) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE order_details SET order_id = ?, material_id = ?, quantity = ?, subtotal = ? WHERE id = ?`,
		d.OrderID, d.MaterialID, d.Quantity, d.Subtotal, d.ID)
	return affectedOrNotFound(res, err)
}

func (r *orderDetailsRepo) DeleteOrderDetail(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM order_details WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}
