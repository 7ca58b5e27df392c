package sqlite

import (
	"context"

	"github.com/ironbark/buildmat/internal/domain"
)

type ordersRepo struct {
	db dbtx
}

const orderColumns = `id, customer_id, total_amount, ordered_at`

func scanOrder(row interface{ Scan(...any) error }) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.OrderedAt)
	return o, err
}

func (r *ordersRepo) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY ordered_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *ordersRepo) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)

	o, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, mapNotFound(err)
	}
	return o, nil
}

func (r *ordersRepo) CreateOrder(ctx context.Context, o domain.Order) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (id, customer_id, total_amount, ordered_at)
		 VALUES (?, ?, ?, ?)`,
		o.ID, o.CustomerID, o.TotalAmount, o.OrderedAt.UTC())
	return mapConstraint(err)
}

func (r *ordersRepo) UpdateOrder(ctx context.Context, o domain.Order) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET customer_id = ?, total_amount = ? WHERE id = ?`,
		o.CustomerID, o.TotalAmount, o.ID)
	return affectedOrNotFound(res, err)
}

func (r *ordersRepo) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM orders WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}
