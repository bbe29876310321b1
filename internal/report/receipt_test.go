package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/metalstock/internal/domain/materials"
	"github.com/Spok95/metalstock/internal/domain/receiving"
)

func TestReceiptWorkbook(t *testing.T) {
	qty := 10
	w := 5.5
	b := receiving.NewBatch(nil)
	b.Add(receiving.Lot{LotNumber: "L1", Quantity: &qty})
	b.Add(receiving.Lot{LotNumber: "L2", WeightKg: &w, Notes: "царапина"})
	b.SetUnitWeight(1.557)

	h := receiving.Header{Profile: materials.Profile{
		Dimension: materials.Dimension{Shape: materials.ShapeRound, Mm: 10},
		LengthMm:  2500,
		Density:   7.93,
	}}

	data, err := ReceiptWorkbook(h, b.Lots(), b.Totals())
	if err != nil {
		t.Fatalf("ReceiptWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	// заголовок + 2 лота + итог + справочно
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5: %v", len(rows), rows)
	}
	if rows[1][1] != "L1" || rows[1][6] != "10" {
		t.Fatalf("lot row = %v", rows[1])
	}
	if rows[2][7] != "5.5" || rows[2][9] != "царапина" {
		t.Fatalf("lot row = %v", rows[2])
	}
	if rows[3][1] != "Итого" || rows[3][6] != "10" || rows[3][7] != "5.5" {
		t.Fatalf("totals row = %v", rows[3])
	}
	if rows[4][1] != "Справочно" || rows[4][6] != "3" || rows[4][7] != "15.57" {
		t.Fatalf("reference row = %v", rows[4])
	}

	uw, err := f.GetCellValue(f.GetSheetName(0), "L2")
	if err != nil || uw != "1.557" {
		t.Fatalf("unit weight cell = %q, %v", uw, err)
	}
}
