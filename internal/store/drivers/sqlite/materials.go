package sqlite

import (
	"context"
	"time"

	"github.com/ironbark/buildmat/internal/domain"
)

type materialsRepo struct {
	db dbtx
}

const materialColumns = `id, name, category, quantity, unit_price, created_at, updated_at`

func scanMaterial(row interface{ Scan(...any) error }) (domain.Material, error) {
	var m domain.Material
	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.Quantity, &m.UnitPrice, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *materialsRepo) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+materialColumns+` FROM materials ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *materialsRepo) GetMaterialByID(ctx context.Context, id string) (domain.Material, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE id = ?`, id)

	m, err := scanMaterial(row)
	if err != nil {
		return domain.Material{}, mapNotFound(err)
	}
	return m, nil
}

func (r *materialsRepo) CreateMaterial(ctx context.Context, m domain.Material) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO materials (id, name, category, quantity, unit_price, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Category, m.Quantity, m.UnitPrice,
		m.CreatedAt.UTC(), m.UpdatedAt.UTC())
	return mapConstraint(err)
}

func (r *materialsRepo) UpdateMaterial(ctx context.Context, m domain.Material) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE materials SET name = ?, category = ?, quantity = ?, unit_price = ?, updated_at = ?
		 WHERE id = ?`,
		m.Name, m.Category, m.Quantity, m.UnitPrice, time.Now().UTC(), m.ID)
	return affectedOrNotFound(res, err)
}

func (r *materialsRepo) DeleteMaterial(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM materials WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}
