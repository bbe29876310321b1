package inventory

import "testing"

func TestStockLotUnitWeight(t *testing.T) {
	l := StockLot{Shape: "round", DiameterMm: 10, LengthMm: 2500, Density: 7.93}
	kg, ok := l.UnitWeightKg()
	if !ok || kg < 1.5570 || kg > 1.5571 {
		t.Fatalf("unit weight = %v ok=%v", kg, ok)
	}

	l.Shape = "triangle"
	if _, ok := l.UnitWeightKg(); ok {
		t.Fatal("unknown shape must not give a unit weight")
	}

	l = StockLot{Shape: "square", DiameterMm: 20}
	if _, ok := l.UnitWeightKg(); ok {
		t.Fatal("missing length and density must give unknown")
	}
}
