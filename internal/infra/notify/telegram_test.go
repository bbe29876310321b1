package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/Spok95/metalstock/internal/domain/materials"
	"github.com/Spok95/metalstock/internal/domain/receiving"
)

func TestReceiptSummary(t *testing.T) {
	qty, w := 10, 15.57
	expected := 12
	h := receiving.Header{
		Profile: materials.Profile{
			Dimension: materials.Dimension{Shape: materials.ShapeRound, Mm: 10},
			LengthMm:  2500,
			Density:   7.93,
		},
		ReceivedDate: time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
	}
	res := receiving.Result{
		Records: []receiving.LotRecord{
			{LotNumber: "A-1", ReceivedQuantity: &qty, ReceivedWeightKg: &w},
		},
		Totals: receiving.Totals{
			TotalQuantity:    10,
			TotalWeightKg:    15.57,
			ExpectedQuantity: &expected,
			Comparison:       receiving.ComparisonUnder,
		},
	}

	got := ReceiptSummary(h, res)
	for _, want := range []string{
		"Приёмка 2025-10-03, φ10.0 L=2500 мм",
		"1. A-1 — 10 шт — 15.570 кг",
		"Итого: 10 шт, 15.570 кг (заказано 12 шт: меньше заказа)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}
