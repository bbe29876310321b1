package receiving

// Lot одна строка приёмки: номер лота + количество и/или вес
type Lot struct {
	Index      int // номер строки в форме, не переиспользуется
	LotNumber  string
	Quantity   *int
	WeightKg   *float64
	LocationID *int64
	Notes      string
}

func (l Lot) quantity() int {
	if l.Quantity == nil {
		return 0
	}
	return *l.Quantity
}

func (l Lot) weight() float64 {
	if l.WeightKg == nil {
		return 0
	}
	return *l.WeightKg
}

type Comparison string

const (
	ComparisonNone     Comparison = "none" // ожидаемое количество не задано
	ComparisonOnTarget Comparison = "on_target"
	ComparisonOver     Comparison = "over"
	ComparisonUnder    Comparison = "under"
)

// Totals пересчитывается при каждом изменении партии.
// Reference* — справочные значения, nil если вес штуки неизвестен.
type Totals struct {
	TotalQuantity     int        `json:"total_quantity"`
	TotalWeightKg     float64    `json:"total_weight_kg"`
	ReferenceQuantity *int       `json:"reference_quantity"`
	ReferenceWeightKg *float64   `json:"reference_weight_kg"`
	ExpectedQuantity  *int       `json:"expected_quantity"`
	Comparison        Comparison `json:"comparison"`
}

// Policy что обязательно для каждого лота при проведении
type Policy string

const (
	PolicyEither Policy = "either" // количество или вес
	PolicyBoth   Policy = "both"   // и количество, и вес
)

func ParsePolicy(s string) (Policy, bool) {
	switch Policy(s) {
	case PolicyEither, PolicyBoth:
		return Policy(s), true
	}
	return "", false
}
