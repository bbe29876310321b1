package materials

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const selectMaterial = `
		SELECT id, name, grade, shape, diameter_mm, length_mm, density, location_id, active, created_at, price_per_kg
		FROM materials
`

func scanMaterial(row pgx.Row) (*Material, error) {
	var m Material
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Grade,
		&m.Shape,
		&m.DiameterMm,
		&m.LengthMm,
		&m.Density,
		&m.LocationID,
		&m.Active,
		&m.CreatedAt,
		&m.PricePerKg,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) Create(ctx context.Context, m Material) (*Material, error) {
	if _, err := ParseShape(string(m.Shape)); err != nil {
		return nil, err
	}
	if err := m.Profile(0).Validate(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO materials (name, grade, shape, diameter_mm, length_mm, density, location_id, price_per_kg, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,TRUE)
		RETURNING id, name, grade, shape, diameter_mm, length_mm, density, location_id, active, created_at, price_per_kg
	`, m.Name, m.Grade, string(m.Shape), m.DiameterMm, m.LengthMm, m.Density, m.LocationID, m.PricePerKg)
	return scanMaterial(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Material, error) {
	m, err := scanMaterial(r.pool.QueryRow(ctx, selectMaterial+` WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE materials SET active=$2 WHERE id=$1`, id, active)
	return err
}

func (r *Repo) List(ctx context.Context, onlyActive bool) ([]Material, error) {
	q := selectMaterial
	if onlyActive {
		q += " WHERE active = TRUE"
	}
	q += " ORDER BY grade, shape, diameter_mm"
	return r.query(ctx, q)
}

// SearchByName ищет материалы по части названия/марки, без учёта регистра.
func (r *Repo) SearchByName(ctx context.Context, q string, onlyActive bool) ([]Material, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	like := "%" + strings.ToLower(q) + "%"

	base := selectMaterial + ` WHERE (LOWER(name) LIKE $1 OR LOWER(grade) LIKE $1)`
	if onlyActive {
		base += ` AND active = TRUE`
	}
	return r.query(ctx, base+` ORDER BY grade, diameter_mm`, like)
}

func (r *Repo) query(ctx context.Context, q string, args ...any) ([]Material, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
