package materials

import (
	"regexp"
	"strconv"
	"strings"
)

// Guess предположение по названию позиции заказа. Пользователь может его поправить.
type Guess struct {
	Shape      Shape
	DiameterMm *float64
}

const numberPattern = `(\d+(?:[.,]\d+)?)`

var (
	// порядок важен: круг, шестигранник, квадрат
	diameterPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[φΦ⌀Øø¢]\s*` + numberPattern),
		// H только вплотную к числу, как в detectShape
		regexp.MustCompile(`[Hh]` + numberPattern),
		regexp.MustCompile(`□\s*` + numberPattern),
	}

	reHexMark    = regexp.MustCompile(`[Hh]\d`)
	reSquareMark = regexp.MustCompile(`□\d`)
)

// DetectFromName угадывает форму и размер по названию, например "SUS303 φ10.0 研磨".
func DetectFromName(name string) Guess {
	s := normalize(name)
	return Guess{
		Shape:      detectShape(s),
		DiameterMm: detectDiameter(s),
	}
}

func detectDiameter(s string) *float64 {
	for _, re := range diameterPatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

func detectShape(s string) Shape {
	switch {
	case reHexMark.MatchString(s), strings.Contains(s, "六角"):
		return ShapeHexagon
	case reSquareMark.MatchString(s), strings.Contains(s, "角棒"), strings.Contains(s, "四角"):
		return ShapeSquare
	default:
		return ShapeRound
	}
}
