package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Locations */

func (r *Repo) CreateLocation(ctx context.Context, code, name string, t LocationType) (*Location, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO locations (code, name, type) VALUES ($1,$2,$3)
		ON CONFLICT (code) DO NOTHING
		RETURNING id, code, name, type, active, created_at
	`, code, name, string(t))
	var l Location
	err := row.Scan(&l.ID, &l.Code, &l.Name, &l.Type, &l.Active, &l.CreatedAt)
	if err == pgx.ErrNoRows {
		// Уже есть — вернём существующее
		return r.GetLocationByCode(ctx, code)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) GetLocationByCode(ctx context.Context, code string) (*Location, error) {
	return r.getLocation(ctx, `WHERE code = $1`, code)
}

func (r *Repo) GetLocationByID(ctx context.Context, id int64) (*Location, error) {
	return r.getLocation(ctx, `WHERE id = $1`, id)
}

func (r *Repo) getLocation(ctx context.Context, where string, arg any) (*Location, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, code, name, type, active, created_at
		FROM locations `+where, arg)
	var l Location
	if err := row.Scan(&l.ID, &l.Code, &l.Name, &l.Type, &l.Active, &l.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// LocationActive есть ли активное место хранения с таким id
func (r *Repo) LocationActive(ctx context.Context, id int64) (bool, error) {
	l, err := r.GetLocationByID(ctx, id)
	if err != nil {
		return false, err
	}
	return l != nil && l.Active, nil
}

func (r *Repo) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, name, type, active, created_at
		FROM locations
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.Type, &l.Active, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
