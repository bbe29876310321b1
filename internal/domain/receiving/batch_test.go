package receiving

import (
	"errors"
	"testing"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestBatchTotals_IndependentSums(t *testing.T) {
	b := NewBatch(nil)
	b.Add(Lot{LotNumber: "L1", Quantity: intp(10)})
	b.Add(Lot{LotNumber: "L2", Quantity: intp(15)})
	b.Add(Lot{LotNumber: "L3", WeightKg: floatp(5.0)})

	tot := b.Totals()
	if tot.TotalQuantity != 25 || tot.TotalWeightKg != 5.0 {
		t.Fatalf("totals = %+v", tot)
	}
	if tot.ReferenceQuantity != nil || tot.ReferenceWeightKg != nil {
		t.Fatalf("reference values must be unknown without unit weight: %+v", tot)
	}
	if tot.Comparison != ComparisonNone {
		t.Fatalf("comparison = %q", tot.Comparison)
	}

	b.SetUnitWeight(0.5)
	tot = b.Totals()
	if tot.ReferenceWeightKg == nil || *tot.ReferenceWeightKg != 12.5 {
		t.Fatalf("reference weight = %v, want 12.5", tot.ReferenceWeightKg)
	}
	if tot.ReferenceQuantity == nil || *tot.ReferenceQuantity != 10 {
		t.Fatalf("reference quantity = %v, want 10", tot.ReferenceQuantity)
	}
	if tot.TotalWeightKg != 5.0 || tot.TotalQuantity != 25 {
		t.Fatalf("entered sums changed: %+v", tot)
	}

	b.ClearUnitWeight()
	if b.Totals().ReferenceWeightKg != nil {
		t.Fatal("reference weight must be unknown after clear")
	}
}

func TestBatch_IndexesAreNeverReused(t *testing.T) {
	b := NewBatch(nil)
	i1 := b.Add(Lot{LotNumber: "A"})
	i2 := b.Add(Lot{LotNumber: "B"})
	i3 := b.Add(Lot{LotNumber: "C"})
	if i1 != 1 || i2 != 2 || i3 != 3 {
		t.Fatalf("indexes = %d %d %d", i1, i2, i3)
	}

	if !b.Remove(i2) {
		t.Fatal("remove failed")
	}
	if b.Remove(i2) {
		t.Fatal("second remove of same index must fail")
	}
	i4 := b.Add(Lot{LotNumber: "D"})
	if i4 != 4 {
		t.Fatalf("new index = %d, want 4", i4)
	}

	lots := b.Lots()
	got := []int{lots[0].Index, lots[1].Index, lots[2].Index}
	want := []int{1, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("indexes after remove = %v, want %v", got, want)
		}
	}
}

func TestBatch_Update(t *testing.T) {
	b := NewBatch(nil)
	idx := b.Add(Lot{LotNumber: "A", Quantity: intp(1)})

	ok := b.Update(idx, func(l *Lot) {
		l.Quantity = intp(7)
		l.Index = 99
	})
	if !ok {
		t.Fatal("update failed")
	}
	l := b.Lots()[0]
	if l.Index != idx || *l.Quantity != 7 {
		t.Fatalf("lot = %+v", l)
	}
	if b.Update(42, func(*Lot) {}) {
		t.Fatal("update of missing index must fail")
	}
}

func TestBatch_Comparison(t *testing.T) {
	tests := []struct {
		total, expected int
		want            Comparison
	}{
		{10, 10, ComparisonOnTarget},
		{12, 10, ComparisonOver},
		{8, 10, ComparisonUnder},
	}
	for _, tt := range tests {
		b := NewBatch(intp(tt.expected))
		b.Add(Lot{LotNumber: "L", Quantity: intp(tt.total)})
		if got := b.Totals().Comparison; got != tt.want {
			t.Errorf("total=%d expected=%d: %q, want %q", tt.total, tt.expected, got, tt.want)
		}
	}
}

func TestBatchValidate_Duplicate(t *testing.T) {
	b := NewBatch(nil)
	b.Add(Lot{LotNumber: "L1", Quantity: intp(1)})
	b.Add(Lot{LotNumber: "L1", Quantity: intp(2)})

	err := b.Validate(PolicyEither)
	var dup *DuplicateLotNumberError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicateLotNumberError", err)
	}
	if dup.LotNumber != "L1" || len(dup.Positions) != 2 || dup.Positions[0] != 1 || dup.Positions[1] != 2 {
		t.Fatalf("dup = %+v", dup)
	}
}

func TestBatchValidate_EmptyAndInsufficient(t *testing.T) {
	b := NewBatch(nil)
	b.Add(Lot{LotNumber: "  ", Quantity: intp(1)})
	b.Add(Lot{LotNumber: "L2"})
	b.Add(Lot{LotNumber: "L3", WeightKg: floatp(3)})

	err := b.Validate(PolicyEither)
	var empty *EmptyLotNumberError
	if !errors.As(err, &empty) || empty.Position != 1 {
		t.Fatalf("err = %v, want EmptyLotNumberError at #1", err)
	}
	var insuf *InsufficientLotInputError
	if !errors.As(err, &insuf) || insuf.Position != 2 || insuf.LotNumber != "L2" {
		t.Fatalf("err = %v, want InsufficientLotInputError at #2", err)
	}

	// для политики both лот L3 без количества тоже неполный
	b2 := NewBatch(nil)
	b2.Add(Lot{LotNumber: "L3", WeightKg: floatp(3)})
	if err := b2.Validate(PolicyEither); err != nil {
		t.Fatalf("either: %v", err)
	}
	if err := b2.Validate(PolicyBoth); !errors.As(err, &insuf) || insuf.Policy != PolicyBoth {
		t.Fatalf("both: err = %v", err)
	}

	b3 := NewBatch(nil)
	b3.Add(Lot{LotNumber: "L4", Quantity: intp(0), WeightKg: floatp(0)})
	if err := b3.Validate(PolicyEither); !errors.As(err, &insuf) {
		t.Fatalf("zero inputs must be insufficient, got %v", err)
	}
}

func TestBatchValidate_NegativeInputs(t *testing.T) {
	b := NewBatch(nil)
	b.Add(Lot{LotNumber: "N1", Quantity: intp(-5), WeightKg: floatp(2)})
	b.Add(Lot{LotNumber: "N2", Quantity: intp(3), WeightKg: floatp(-0.5)})
	b.Add(Lot{LotNumber: "OK", Quantity: intp(1)})

	err := b.Validate(PolicyEither)
	var neg *NegativeLotInputError
	if !errors.As(err, &neg) || neg.Position != 1 || neg.Field != "quantity" || neg.LotNumber != "N1" {
		t.Fatalf("err = %v, want NegativeLotInputError for quantity at #1", err)
	}

	var got []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		if errors.As(e, &neg) {
			got = append(got, neg.Field)
		}
		var insuf *InsufficientLotInputError
		if errors.As(e, &insuf) {
			t.Fatalf("negative lot must not also be reported as insufficient: %v", e)
		}
	}
	if len(got) != 2 || got[0] != "quantity" || got[1] != "weight_kg" {
		t.Fatalf("negative fields = %v", got)
	}
}
