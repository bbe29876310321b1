package receiving

import (
	"errors"
	"math"
	"strings"

	"github.com/Spok95/metalstock/internal/domain/materials"
)

// Batch лоты одной приёмки. Живёт, пока открыта форма; в БД не сохраняется.
type Batch struct {
	lots       []Lot
	nextIndex  int
	expected   *int
	unitWeight *float64
}

func NewBatch(expected *int) *Batch {
	return &Batch{nextIndex: 1, expected: expected}
}

// Add добавляет лот и возвращает его номер строки
func (b *Batch) Add(l Lot) int {
	l.Index = b.nextIndex
	b.nextIndex++
	b.lots = append(b.lots, l)
	return l.Index
}

// Remove удаляет лот по номеру строки; остальные не перенумеровываются.
func (b *Batch) Remove(index int) bool {
	for i, l := range b.lots {
		if l.Index == index {
			b.lots = append(b.lots[:i], b.lots[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Batch) Update(index int, fn func(*Lot)) bool {
	for i := range b.lots {
		if b.lots[i].Index == index {
			fn(&b.lots[i])
			b.lots[i].Index = index
			return true
		}
	}
	return false
}

func (b *Batch) Lots() []Lot {
	out := make([]Lot, len(b.lots))
	copy(out, b.lots)
	return out
}

func (b *Batch) Len() int { return len(b.lots) }

func (b *Batch) SetExpected(qty *int) { b.expected = qty }

// SetUnitWeight задаёт вес штуки; kg <= 0 равносилен ClearUnitWeight.
func (b *Batch) SetUnitWeight(kg float64) {
	if kg <= 0 {
		b.unitWeight = nil
		return
	}
	b.unitWeight = &kg
}

func (b *Batch) ClearUnitWeight() { b.unitWeight = nil }

func (b *Batch) UnitWeight() (float64, bool) {
	if b.unitWeight == nil {
		return 0, false
	}
	return *b.unitWeight, true
}

// Totals количество и вес суммируются независимо; вес штуки нужен только для справочных значений.
func (b *Batch) Totals() Totals {
	var t Totals
	for _, l := range b.lots {
		t.TotalQuantity += l.quantity()
		t.TotalWeightKg += l.weight()
	}
	t.TotalWeightKg = materials.Round3(t.TotalWeightKg)

	if uw, ok := b.UnitWeight(); ok {
		if q, ok := materials.QuantityFromWeightFloor(t.TotalWeightKg, uw); ok {
			t.ReferenceQuantity = &q
		}
		if w, ok := materials.WeightFromQuantity(t.TotalQuantity, uw); ok {
			t.ReferenceWeightKg = &w
		}
	}

	t.ExpectedQuantity = b.expected
	t.Comparison = compare(t.TotalQuantity, b.expected)
	return t
}

func compare(total int, expected *int) Comparison {
	switch {
	case expected == nil:
		return ComparisonNone
	case total == *expected:
		return ComparisonOnTarget
	case total > *expected:
		return ComparisonOver
	default:
		return ComparisonUnder
	}
}

// Validate проверка перед проведением. Возвращает все найденные ошибки (errors.Join).
func (b *Batch) Validate(policy Policy) error {
	var errs []error

	seen := map[string][]int{}
	var order []string
	for i, l := range b.lots {
		pos := i + 1
		num := strings.TrimSpace(l.LotNumber)
		if num == "" {
			errs = append(errs, &EmptyLotNumberError{Position: pos})
		} else {
			if _, ok := seen[num]; !ok {
				order = append(order, num)
			}
			seen[num] = append(seen[num], pos)
		}

		if err := checkNonNegative(l, pos, num); err != nil {
			errs = append(errs, err)
			continue
		}
		if !hasInput(l, policy) {
			errs = append(errs, &InsufficientLotInputError{Position: pos, LotNumber: num, Policy: policy})
		}
	}
	for _, num := range order {
		if ps := seen[num]; len(ps) > 1 {
			errs = append(errs, &DuplicateLotNumberError{LotNumber: num, Positions: ps})
		}
	}
	return errors.Join(errs...)
}

func checkNonNegative(l Lot, pos int, num string) error {
	if l.Quantity != nil && *l.Quantity < 0 {
		return &NegativeLotInputError{Position: pos, LotNumber: num, Field: "quantity", Value: float64(*l.Quantity)}
	}
	if l.WeightKg != nil && (*l.WeightKg < 0 || math.IsNaN(*l.WeightKg)) {
		return &NegativeLotInputError{Position: pos, LotNumber: num, Field: "weight_kg", Value: *l.WeightKg}
	}
	return nil
}

func hasInput(l Lot, policy Policy) bool {
	q := l.quantity() > 0
	w := l.weight() > 0
	if policy == PolicyBoth {
		return q && w
	}
	return q || w
}
