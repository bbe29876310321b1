package materials

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Shape форма поперечного сечения прутка
type Shape string

const (
	ShapeRound   Shape = "round"   // круг, размер — диаметр
	ShapeHexagon Shape = "hexagon" // шестигранник, размер — сторона
	ShapeSquare  Shape = "square"  // квадрат, размер — сторона
)

// ParseShape разбирает тег формы из API/БД. Пустая строка и неизвестный тег — ошибка.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeRound, ShapeHexagon, ShapeSquare:
		return Shape(s), nil
	}
	return "", &UnsupportedShapeError{Shape: s}
}

// Symbol основной символ формы для отображения
func (s Shape) Symbol() string {
	switch s {
	case ShapeRound:
		return "φ"
	case ShapeHexagon:
		return "H"
	case ShapeSquare:
		return "□"
	}
	return ""
}

// Dimension форма + характерный размер в мм.
// Нулевое значение — «ещё не задано».
type Dimension struct {
	Shape Shape
	Mm    float64
}

func (d Dimension) IsEmpty() bool { return d.Shape == "" && d.Mm == 0 }

func (d Dimension) String() string {
	if d.IsEmpty() {
		return ""
	}
	return d.Shape.Symbol() + strconv.FormatFloat(d.Mm, 'f', 1, 64)
}

// Profile всё, что нужно для расчёта веса одной штуки
type Profile struct {
	Dimension Dimension
	LengthMm  float64
	Density   float64 // г/см³
}

// Validate проверяет, что все размеры конечные и > 0
func (p Profile) Validate() error {
	checks := []struct {
		field string
		v     float64
	}{
		{"diameter_mm", p.Dimension.Mm},
		{"length_mm", p.LengthMm},
		{"density", p.Density},
	}
	for _, c := range checks {
		if !positive(c.v) {
			return &InvalidProfileError{Field: c.field, Value: c.v}
		}
	}
	return nil
}

func (p Profile) complete() bool {
	return positive(p.Dimension.Mm) && positive(p.LengthMm) && positive(p.Density)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

type Material struct {
	ID         int64
	Name       string
	Grade      string // SUS303, S45C, C3604 ...
	Shape      Shape
	DiameterMm float64
	LengthMm   float64 // стандартная длина прутка
	Density    float64 // г/см³
	LocationID *int64  // место хранения по умолчанию
	Active     bool
	CreatedAt  time.Time
	PricePerKg float64
}

// Profile собирает профиль материала; lengthMm <= 0 — берём стандартную длину.
func (m Material) Profile(lengthMm float64) Profile {
	if lengthMm <= 0 {
		lengthMm = m.LengthMm
	}
	return Profile{
		Dimension: Dimension{Shape: m.Shape, Mm: m.DiameterMm},
		LengthMm:  lengthMm,
		Density:   m.Density,
	}
}

func (m Material) Title() string {
	return fmt.Sprintf("%s %s", m.Name, Dimension{Shape: m.Shape, Mm: m.DiameterMm})
}
