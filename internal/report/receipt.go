package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/metalstock/internal/domain/materials"
	"github.com/Spok95/metalstock/internal/domain/receiving"
)

var receiptHeader = []interface{}{
	"#",
	"lot_number",
	"shape",
	"diameter_mm",
	"length_mm",
	"density",
	"Количество",
	"Вес, кг",
	"location_id",
	"notes",
}

// ReceiptWorkbook Excel по партии: строка на лот и итог
func ReceiptWorkbook(h receiving.Header, lots []receiving.Lot, totals receiving.Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &receiptHeader); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	row := 2
	for _, l := range lots {
		excelRow := []interface{}{
			l.Index,
			l.LotNumber,
			string(h.Profile.Dimension.Shape),
			h.Profile.Dimension.Mm,
			h.Profile.LengthMm,
			h.Profile.Density,
			optional(l.Quantity),
			optional(l.WeightKg),
			optional(l.LocationID),
			l.Notes,
		}
		if err := setRow(f, sheet, row, excelRow); err != nil {
			return nil, err
		}
		row++
	}

	// Итог
	summary := []interface{}{"", "Итого", "", "", "", "", totals.TotalQuantity, totals.TotalWeightKg}
	if err := setRow(f, sheet, row, summary); err != nil {
		return nil, err
	}
	if totals.ReferenceQuantity != nil || totals.ReferenceWeightKg != nil {
		ref := []interface{}{"", "Справочно", "", "", "", "", optional(totals.ReferenceQuantity), optional(totals.ReferenceWeightKg)}
		if err := setRow(f, sheet, row+1, ref); err != nil {
			return nil, err
		}
	}

	if uw, ok, _ := materials.UnitWeightKg(h.Profile); ok {
		if err := f.SetCellValue(sheet, "L1", "Вес штуки, кг"); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, "L2", materials.Round3(uw)); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return nil
}

func optional[T int | int64 | float64](v *T) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
