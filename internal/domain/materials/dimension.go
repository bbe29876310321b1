package materials

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Символы форм после NFKC: ϕ превращается в φ, ￠ в ¢.
var shapeSymbols = map[rune]Shape{
	'φ': ShapeRound, 'Φ': ShapeRound, '⌀': ShapeRound, 'Ø': ShapeRound,
	'ø': ShapeRound, 'ϕ': ShapeRound, '￠': ShapeRound, '¢': ShapeRound,

	'H': ShapeHexagon, 'h': ShapeHexagon,

	'□': ShapeSquare, '■': ShapeSquare, '口': ShapeSquare, '▢': ShapeSquare,
}

var (
	reUnitSuffix = regexp.MustCompile(`(?i)mm|㎜`)
	reNumber     = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)
)

func normalize(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// ParseDimension разбирает поле вида "φ10.0", "H12", "□20mm".
// Пустая строка — не ошибка: размер просто ещё не указан (Dimension.IsEmpty()).
func ParseDimension(input string) (Dimension, error) {
	s := normalize(input)
	if s == "" {
		return Dimension{}, nil
	}

	first, size := utf8.DecodeRuneInString(s)
	shape, ok := shapeSymbols[first]
	if !ok {
		return Dimension{}, &MissingShapeSymbolError{Input: input}
	}

	rest := reUnitSuffix.ReplaceAllString(s[size:], "")
	tok := reNumber.FindString(rest)
	if tok == "" {
		return Dimension{}, &MissingNumericValueError{Input: input}
	}
	v, err := strconv.ParseFloat(strings.Replace(tok, ",", ".", 1), 64)
	if err != nil {
		return Dimension{}, &MissingNumericValueError{Input: input}
	}
	if v <= 0 {
		return Dimension{}, &NonPositiveDimensionError{Input: input, Value: v}
	}
	return Dimension{Shape: shape, Mm: v}, nil
}
