package materials

import (
	"errors"
	"math"
	"testing"
)

func TestUnitWeightKg_Round(t *testing.T) {
	p := Profile{Dimension: Dimension{Shape: ShapeRound, Mm: 10}, LengthMm: 2500, Density: 7.93}

	got, ok, err := UnitWeightKg(p)
	if err != nil || !ok {
		t.Fatalf("UnitWeightKg: ok=%v err=%v", ok, err)
	}
	want := math.Pi * math.Pow(10.0/20, 2) * (2500.0 / 10) * 7.93 / 1000
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
	if Round3(got) != 1.557 {
		t.Fatalf("round3 = %v, want 1.557", Round3(got))
	}
}

func TestUnitWeightKg_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  float64
	}{
		// b=2cm, L=100cm, ρ=1
		{"hexagon", ShapeHexagon, 3 * math.Sqrt(3) / 2 * 4 * 100 / 1000},
		{"square", ShapeSquare, 4 * 100.0 / 1000},
		{"round", ShapeRound, math.Pi * 1 * 100 / 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Profile{Dimension: Dimension{Shape: tt.shape, Mm: 20}, LengthMm: 1000, Density: 1}
			got, ok, err := UnitWeightKg(p)
			if err != nil || !ok {
				t.Fatalf("ok=%v err=%v", ok, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnitWeightKg_IncompleteIsUnknown(t *testing.T) {
	profiles := []Profile{
		{Dimension: Dimension{Shape: ShapeRound}, LengthMm: 2500, Density: 7.93},
		{Dimension: Dimension{Shape: ShapeRound, Mm: 10}, LengthMm: 0, Density: 7.93},
		{Dimension: Dimension{Shape: ShapeRound, Mm: 10}, LengthMm: 2500, Density: -1},
		{Dimension: Dimension{Shape: ShapeRound, Mm: math.NaN()}, LengthMm: 2500, Density: 7.93},
		{Dimension: Dimension{Shape: ShapeRound, Mm: 10}, LengthMm: math.Inf(1), Density: 7.93},
	}
	for i, p := range profiles {
		_, ok, err := UnitWeightKg(p)
		if err != nil {
			t.Errorf("#%d: unexpected error %v", i, err)
		}
		if ok {
			t.Errorf("#%d: expected unknown result", i)
		}
		var ipe *InvalidProfileError
		if !errors.As(p.Validate(), &ipe) {
			t.Errorf("#%d: Validate() = %v, want InvalidProfileError", i, p.Validate())
		}
	}
}

func TestUnitWeightKg_UnsupportedShape(t *testing.T) {
	p := Profile{Dimension: Dimension{Shape: Shape("triangle"), Mm: 10}, LengthMm: 100, Density: 7.85}
	got, ok, err := UnitWeightKg(p)
	var use *UnsupportedShapeError
	if !errors.As(err, &use) {
		t.Fatalf("err = %v, want UnsupportedShapeError", err)
	}
	if use.Shape != "triangle" || ok || got != 0 {
		t.Fatalf("got %v ok=%v shape=%q", got, ok, use.Shape)
	}

	if _, err := ParseShape("triangle"); !errors.As(err, &use) {
		t.Fatalf("ParseShape err = %v", err)
	}
}

func TestWeightFromQuantity(t *testing.T) {
	if _, ok := WeightFromQuantity(3, 0); ok {
		t.Fatal("zero unit weight must give unknown")
	}
	got, ok := WeightFromQuantity(3, 1.2346)
	if !ok || got != 3.704 {
		t.Fatalf("got %v ok=%v, want 3.704", got, ok)
	}

	prev := -1.0
	for q := 0; q < 200; q++ {
		w, _ := WeightFromQuantity(q, 0.617)
		if w < prev {
			t.Fatalf("not monotonic at q=%d: %v < %v", q, w, prev)
		}
		prev = w
	}
}

func TestQuantityFromWeight_RoundTripFloor(t *testing.T) {
	for _, uw := range []float64{0.5, 1.556, 0.617, 2.47, 0.001} {
		for n := 1; n <= 500; n++ {
			w, ok := WeightFromQuantity(n, uw)
			if !ok {
				t.Fatalf("uw=%v: unknown", uw)
			}
			got, ok := QuantityFromWeightFloor(w, uw)
			if !ok || got != n {
				t.Fatalf("uw=%v n=%d: got %d", uw, n, got)
			}
		}
	}
}

func TestQuantityFromWeight_Policies(t *testing.T) {
	tests := []struct {
		name      string
		weight    float64
		unit      float64
		wantFloor int
		wantAtOne int
	}{
		{"exact", 10, 2.5, 4, 4},
		{"rounds up vs floor", 9.9, 2.5, 3, 4},
		{"below one piece", 0.2, 2.5, 0, 1},
		{"zero weight", 0, 2.5, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := QuantityFromWeightFloor(tt.weight, tt.unit)
			if !ok || f != tt.wantFloor {
				t.Errorf("floor = %d ok=%v, want %d", f, ok, tt.wantFloor)
			}
			a, ok := QuantityFromWeightAtLeastOne(tt.weight, tt.unit)
			if !ok || a != tt.wantAtOne {
				t.Errorf("at least one = %d ok=%v, want %d", a, ok, tt.wantAtOne)
			}
		})
	}

	for _, uw := range []float64{0, -1, math.NaN()} {
		if _, ok := QuantityFromWeightFloor(5, uw); ok {
			t.Errorf("floor with unit %v must be unknown", uw)
		}
		if _, ok := QuantityFromWeightAtLeastOne(5, uw); ok {
			t.Errorf("at least one with unit %v must be unknown", uw)
		}
	}
}
