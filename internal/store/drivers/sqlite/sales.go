package sqlite

import (
	"context"

	"github.com/ironbark/buildmat/internal/domain"
)

type salesRepo struct {
	db dbtx
}

const saleColumns = `id, material_id, customer_name, quantity, total_price, sold_at`

func scanSale(row interface{ Scan(...any) error }) (domain.Sale, error) {
	var s domain.Sale
	err := row.Scan(&s.ID, &s.MaterialID, &s.CustomerName, &s.Quantity, &s.TotalPrice, &s.SoldAt)
	return s, err
}

func (r *salesRepo) ListSales(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+saleColumns+` FROM sales ORDER BY sold_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *salesRepo) GetSaleByID(ctx context.Context, id string) (domain.Sale, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = ?`, id)

	s, err := scanSale(row)
	if err != nil {
		return domain.Sale{}, mapNotFound(err)
	}
	return s, nil
}

func (r *salesRepo) CreateSale(ctx context.Context, s domain.Sale) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sales (id, material_id, customer_name, quantity, total_price, sold_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.MaterialID, s.CustomerName, s.Quantity, s.TotalPrice, s.SoldAt.UTC())
	return mapConstraint(err)
}

func (r *salesRepo) UpdateSale(ctx context.Context, s domain.Sale) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sales SET material_id = ?, customer_name = ?, quantity = ?, total_price = ?
		 WHERE id = ?`,
		s.MaterialID, s.CustomerName, s.Quantity, s.TotalPrice, s.ID)
	return affectedOrNotFound(res, err)
}

func (r *salesRepo) DeleteSale(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sales WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}
