package sqlite

import (
	"context"

	"github.com/ironbark/buildmat/internal/domain"
)

type stocksRepo struct {
	db dbtx
}

const stockColumns = `id, material_id, supplier_id, quantity, purchased_at`

func scanStock(row interface{ Scan(...any) error }) (domain.Stock, error) {
	var s domain.Stock
	err := row.Scan(&s.ID, &s.MaterialID, &s.SupplierID, &s.Quantity, &s.PurchasedAt)
	return s, err
}

func (r *stocksRepo) ListStocks(ctx context.Context) ([]domain.Stock, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+stockColumns+` FROM stocks ORDER BY purchased_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *stocksRepo) GetStockByID(ctx context.Context, id string) (domain.Stock, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+stockColumns+` FROM stocks WHERE id = ?`, id)

	s, err := scanStock(row)
	if err != nil {
		return domain.Stock{}, mapNotFound(err)
	}
	return s, nil
}

func (r *stocksRepo) CreateStock(ctx context.Context, s domain.Stock) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stocks (id, material_id, supplier_id, quantity, purchased_at)
		 VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.MaterialID, s.SupplierID, s.Quantity, s.PurchasedAt.UTC())
	return mapConstraint(err)
}

func (r *stocksRepo) UpdateStock(ctx context.Context, s domain.Stock) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stocks SET material_id = ?, supplier_id = ?, quantity = ? WHERE id = ?`,
		s.MaterialID, s.SupplierID, s.Quantity, s.ID)
	return affectedOrNotFound(res, err)
}

func (r *stocksRepo) DeleteStock(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM stocks WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}
