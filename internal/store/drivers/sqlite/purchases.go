package sqlite

import (
	"context"

	"github.com/ironbark/buildmat/internal/domain"
)

type purchasesRepo struct {
	db dbtx
}

const purchaseColumns = `id, material_id, supplier_id, quantity, unit_cost, total_cost, purchased_at`

func scanPurchase(row interface{ Scan(...any) error }) (domain.Purchase, error) {
	var p domain.Purchase
	err := row.Scan(&p.ID, &p.MaterialID, &p.SupplierID, &p.Quantity, &p.UnitCost, &p.TotalCost, &p.PurchasedAt)
	return p, err
}

func (r *purchasesRepo) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases ORDER BY purchased_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *purchasesRepo) GetPurchaseByID(ctx context.Context, id string) (domain.Purchase, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE id = ?`, id)

	p, err := scanPurchase(row)
	if err != nil {
		return domain.Purchase{}, mapNotFound(err)
	}
	return p, nil
}

func (r *purchasesRepo) CreatePurchase(ctx context.Context, p domain.Purchase) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO purchases (id, material_id, supplier_id, quantity, unit_cost, total_cost, purchased_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.MaterialID, p.SupplierID, p.Quantity, p.UnitCost, p.TotalCost,
		p.PurchasedAt.UTC())
	return mapConstraint(err)
}

func (r *purchasesRepo) UpdatePurchase(ctx context.Context, p domain.Purchase) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE purchases SET material_id = ?, supplier_id = ?, quantity = ?, unit_cost = ?, total_cost = ?
		 WHERE id = ?`,
		p.MaterialID, p.SupplierID, p.Quantity, p.UnitCost, p.TotalCost, p.ID)
	return affectedOrNotFound(res, err)
}

func (r *purchasesRepo) DeletePurchase(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM purchases WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}
