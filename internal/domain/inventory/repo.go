package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/metalstock/internal/domain/materials"
	"github.com/Spok95/metalstock/internal/domain/receiving"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// ReceiveLot заводит лот и логирует приход. Реализует receiving.LotSink.
func (r *Repo) ReceiveLot(ctx context.Context, rec receiving.LotRecord) error {
	var qty int
	var weight float64
	if rec.ReceivedQuantity != nil {
		qty = *rec.ReceivedQuantity
	}
	if rec.ReceivedWeightKg != nil {
		weight = *rec.ReceivedWeightKg
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lotID int64
	if err = tx.QueryRow(ctx, `
		INSERT INTO lots (lot_number, shape, diameter_mm, length_mm, density,
		                  qty_on_hand, weight_on_hand_kg, location_id, notes,
		                  purchase_month, received_date, unit_price, amount)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id
	`, rec.LotNumber, rec.Shape, rec.DiameterMm, rec.LengthMm, rec.Density,
		qty, weight, rec.LocationID, rec.Notes,
		rec.PurchaseMonth, rec.ReceivedDate, rec.UnitPrice, rec.Amount).Scan(&lotID); err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO movements (lot_id, qty, weight_kg, type, note)
		VALUES ($1,$2,$3,$4,$5)
	`, lotID, qty, weight, string(MoveIn), "receiving"); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}

	return tx.Commit(ctx)
}

// delta < 0 => списание (может увести остаток в минус)
func (r *Repo) apply(ctx context.Context, lotID int64, qtyDelta int, weightDelta float64, mtype MoveType, note string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE lots
		SET qty_on_hand = qty_on_hand + $2,
		    weight_on_hand_kg = weight_on_hand_kg + $3
		WHERE id = $1
	`, lotID, qtyDelta, weightDelta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lot %d not found", lotID)
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO movements (lot_id, qty, weight_kg, type, note)
		VALUES ($1,$2,$3,$4,$5)
	`, lotID, qtyDelta, weightDelta, string(mtype), note); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repo) WriteOff(ctx context.Context, lotID int64, qty int, weightKg float64, note string) error {
	if qty < 0 || weightKg < 0 || (qty == 0 && weightKg == 0) {
		return fmt.Errorf("qty or weight must be > 0")
	}
	return r.apply(ctx, lotID, -qty, -weightKg, MoveOut, note)
}

// WriteOffByWeight списание по весу (например, со сканера): штуки считаются с округлением вниз.
func (r *Repo) WriteOffByWeight(ctx context.Context, lotID int64, weightKg, unitKg float64, note string) (int, error) {
	qty, ok := materials.QuantityFromWeightFloor(weightKg, unitKg)
	if !ok {
		return 0, fmt.Errorf("unit weight unknown for lot %d", lotID)
	}
	return qty, r.WriteOff(ctx, lotID, qty, weightKg, note)
}

const selectLot = `
	SELECT id, lot_number, shape, diameter_mm, length_mm, density, qty_on_hand, weight_on_hand_kg,
	       location_id, purchase_month, received_date, created_at
	FROM lots
`

func scanLot(row pgx.Row) (*StockLot, error) {
	var l StockLot
	if err := row.Scan(&l.ID, &l.LotNumber, &l.Shape, &l.DiameterMm, &l.LengthMm, &l.Density,
		&l.QtyOnHand, &l.WeightOnHandKg, &l.LocationID, &l.PurchaseMonth, &l.ReceivedDate, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) GetLot(ctx context.Context, id int64) (*StockLot, error) {
	l, err := scanLot(r.pool.QueryRow(ctx, selectLot+` WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return l, err
}

func (r *Repo) ListLots(ctx context.Context, onlyInStock bool) ([]StockLot, error) {
	q := selectLot
	if onlyInStock {
		q += ` WHERE qty_on_hand > 0 OR weight_on_hand_kg > 0`
	}
	q += ` ORDER BY received_date DESC, lot_number`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StockLot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// UnitWeightKg вес штуки для лота (по его форме и размерам)
func (l StockLot) UnitWeightKg() (float64, bool) {
	p := materials.Profile{
		Dimension: materials.Dimension{Shape: materials.Shape(l.Shape), Mm: l.DiameterMm},
		LengthMm:  float64(l.LengthMm),
		Density:   l.Density,
	}
	kg, ok, err := materials.UnitWeightKg(p)
	if err != nil {
		return 0, false
	}
	return kg, ok
}
