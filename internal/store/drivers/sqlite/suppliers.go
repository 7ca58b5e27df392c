package sqlite

import (
	"context"
	"time"

	"github.com/ironbark/buildmat/internal/domain"
)

type suppliersRepo struct {
	db dbtx
}

const supplierColumns = `id, name, contact, address, created_at, updated_at`

func scanSupplier(row interface{ Scan(...any) error }) (domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Contact, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *suppliersRepo) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *suppliersRepo) GetSupplierByID(ctx context.Context, id string) (domain.Supplier, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = ?`, id)

	s, err := scanSupplier(row)
	if err != nil {
		return domain.Supplier{}, mapNotFound(err)
	}
	return s, nil
}

func (r *suppliersRepo) CreateSupplier(ctx context.Context, s domain.Supplier) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO suppliers (id, name, contact, address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Contact, s.Address, s.CreatedAt.UTC(), s.UpdatedAt.UTC())
	return mapConstraint(err)
}

func (r *suppliersRepo) UpdateSupplier(ctx context.Context, s domain.Supplier) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE suppliers SET name = ?, contact = ?, address = ?, updated_at = ? WHERE id = ?`,
		s.Name, s.Contact, s.Address, time.Now().UTC(), s.ID)
	return affectedOrNotFound(res, err)
}

func (r *suppliersRepo) DeleteSupplier(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM suppliers WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}
