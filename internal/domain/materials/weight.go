package materials

import "math"

// floorTolerance гасит ошибку float при делении точного кратного: 4.668/1.556 = 2.9999999999
const floorTolerance = 1e-9

// UnitWeightKg вес одной штуки, кг.
// ok=false — данных пока недостаточно (размер/длина/плотность не заданы или <= 0).
// Ошибка только для неизвестной формы.
func UnitWeightKg(p Profile) (float64, bool, error) {
	if !p.complete() {
		return 0, false, nil
	}
	v, err := VolumeCm3(p.Dimension.Shape, p.Dimension.Mm, p.LengthMm)
	if err != nil {
		return 0, false, err
	}
	return v * p.Density / 1000, true, nil
}

// VolumeCm3 объём прутка в см³; все расчёты в сантиметрах.
func VolumeCm3(shape Shape, baseMm, lengthMm float64) (float64, error) {
	lengthCm := lengthMm / 10
	baseCm := baseMm / 10

	switch shape {
	case ShapeRound:
		r := baseCm / 2
		return math.Pi * r * r * lengthCm, nil
	case ShapeHexagon:
		// размер используется как сторона правильного шестиугольника
		return 3 * math.Sqrt(3) / 2 * baseCm * baseCm * lengthCm, nil
	case ShapeSquare:
		return baseCm * baseCm * lengthCm, nil
	default:
		return 0, &UnsupportedShapeError{Shape: string(shape)}
	}
}

// WeightFromQuantity вес партии по количеству, округлён до граммов
func WeightFromQuantity(qty int, unitKg float64) (float64, bool) {
	if !positive(unitKg) {
		return 0, false
	}
	return Round3(float64(qty) * unitKg), true
}

// QuantityFromWeightAtLeastOne количество по весу с округлением до ближайшего, минимум 1 шт.
// Используется при заполнении лота из строки заказа, заданной весом.
func QuantityFromWeightAtLeastOne(weightKg, unitKg float64) (int, bool) {
	if !positive(unitKg) || math.IsNaN(weightKg) || weightKg < 0 {
		return 0, false
	}
	n := int(math.Round(weightKg / unitKg))
	if n < 1 {
		n = 1
	}
	return n, true
}

// QuantityFromWeightFloor количество по весу с округлением вниз: штук не больше, чем позволяет вес.
func QuantityFromWeightFloor(weightKg, unitKg float64) (int, bool) {
	if !positive(unitKg) || math.IsNaN(weightKg) || weightKg < 0 {
		return 0, false
	}
	return int(math.Floor(weightKg/unitKg + floorTolerance)), true
}

func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
