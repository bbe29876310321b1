package receiving

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/metalstock/internal/domain/materials"
)

var (
	ErrInvalidPurchaseMonth = errors.New("purchase month must be YYMM")
	ErrEmptyBatch           = errors.New("no lots to submit")
)

var rePurchaseMonth = regexp.MustCompile(`^\d{2}(0[1-9]|1[0-2])$`)

// Header общие для всех лотов поля приёмки
type Header struct {
	Profile       materials.Profile
	PurchaseMonth string // YYMM
	ReceivedDate  time.Time
	UnitPrice     *float64 // за кг, если есть вес, иначе за штуку
}

func PurchaseMonthOf(t time.Time) string { return t.Format("0601") }

func (h Header) Validate() error {
	if _, err := materials.ParseShape(string(h.Profile.Dimension.Shape)); err != nil {
		return err
	}
	if err := h.Profile.Validate(); err != nil {
		return err
	}
	if !rePurchaseMonth.MatchString(h.PurchaseMonth) {
		return fmt.Errorf("%w: %q", ErrInvalidPurchaseMonth, h.PurchaseMonth)
	}
	return nil
}

// LotRecord тело запроса на один лот для бэкенда
type LotRecord struct {
	DiameterMm       float64   `json:"diameter_mm"`
	Shape            string    `json:"shape"`
	Density          float64   `json:"density"`
	LengthMm         int       `json:"length_mm"`
	LotNumber        string    `json:"lot_number"`
	ReceivedQuantity *int      `json:"received_quantity,omitempty"`
	ReceivedWeightKg *float64  `json:"received_weight_kg,omitempty"`
	LocationID       *int64    `json:"location_id,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	PurchaseMonth    string    `json:"purchase_month"`
	ReceivedDate     time.Time `json:"received_date"`
	UnitPrice        *float64  `json:"unit_price,omitempty"`
	Amount           *float64  `json:"amount,omitempty"`
}

func BuildRecord(h Header, l Lot) LotRecord {
	rec := LotRecord{
		DiameterMm:    h.Profile.Dimension.Mm,
		Shape:         string(h.Profile.Dimension.Shape),
		Density:       h.Profile.Density,
		LengthMm:      int(math.Round(h.Profile.LengthMm)),
		LotNumber:     strings.TrimSpace(l.LotNumber),
		LocationID:    l.LocationID,
		Notes:         strings.TrimSpace(l.Notes),
		PurchaseMonth: h.PurchaseMonth,
		ReceivedDate:  h.ReceivedDate,
		UnitPrice:     h.UnitPrice,
	}
	if l.quantity() > 0 {
		q := l.quantity()
		rec.ReceivedQuantity = &q
	}
	if l.weight() > 0 {
		w := materials.Round3(l.weight())
		rec.ReceivedWeightKg = &w
	}
	rec.Amount = amount(h.UnitPrice, rec.ReceivedQuantity, rec.ReceivedWeightKg)
	return rec
}

// amount цена × вес, если вес введён, иначе цена × количество
func amount(price *float64, qty *int, weight *float64) *float64 {
	if price == nil {
		return nil
	}
	p := decimal.NewFromFloat(*price)
	var a decimal.Decimal
	switch {
	case weight != nil:
		a = p.Mul(decimal.NewFromFloat(*weight))
	case qty != nil:
		a = p.Mul(decimal.NewFromInt(int64(*qty)))
	default:
		return nil
	}
	v := a.Round(2).InexactFloat64()
	return &v
}

// LotFromOrderWeight заполняет лот по строке заказа, заданной весом.
// Количество — по весу с округлением до ближайшего (минимум 1), если вес штуки известен.
func LotFromOrderWeight(lotNumber string, orderedKg, unitKg float64) Lot {
	l := Lot{LotNumber: lotNumber}
	if orderedKg > 0 {
		w := orderedKg
		l.WeightKg = &w
	}
	if q, ok := materials.QuantityFromWeightAtLeastOne(orderedKg, unitKg); ok && orderedKg > 0 {
		l.Quantity = &q
	}
	return l
}

type LotSink interface {
	ReceiveLot(ctx context.Context, rec LotRecord) error
}

type LocationChecker interface {
	LocationActive(ctx context.Context, id int64) (bool, error)
}

type Submitter struct {
	sink      LotSink
	locations LocationChecker
	policy    Policy

	// OnLot вызывается после каждой попытки отправки лота
	OnLot func(rec LotRecord, err error)
}

// NewSubmitter locations может быть nil — тогда места хранения не проверяются.
func NewSubmitter(sink LotSink, locations LocationChecker, policy Policy) *Submitter {
	return &Submitter{sink: sink, locations: locations, policy: policy}
}

func (s *Submitter) Policy() Policy { return s.policy }

type Result struct {
	Records []LotRecord
	Totals  Totals
}

// Submit проводит лоты строго по одному, дожидаясь ответа на каждый.
// Первая ошибка останавливает проведение и возвращается как *SubmitError.
func (s *Submitter) Submit(ctx context.Context, h Header, b *Batch) (Result, error) {
	res := Result{Totals: b.Totals()}

	if err := h.Validate(); err != nil {
		return res, err
	}
	if b.Len() == 0 {
		return res, ErrEmptyBatch
	}
	if err := b.Validate(s.policy); err != nil {
		return res, err
	}
	if err := s.checkLocations(ctx, b); err != nil {
		return res, err
	}

	for i, l := range b.Lots() {
		rec := BuildRecord(h, l)
		if err := ctx.Err(); err != nil {
			return res, &SubmitError{Position: i + 1, LotNumber: rec.LotNumber, Submitted: i, Err: err}
		}
		err := s.sink.ReceiveLot(ctx, rec)
		if s.OnLot != nil {
			s.OnLot(rec, err)
		}
		if err != nil {
			return res, &SubmitError{Position: i + 1, LotNumber: rec.LotNumber, Submitted: i, Err: err}
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func (s *Submitter) checkLocations(ctx context.Context, b *Batch) error {
	if s.locations == nil {
		return nil
	}
	var errs []error
	for i, l := range b.Lots() {
		if l.LocationID == nil {
			continue
		}
		ok, err := s.locations.LocationActive(ctx, *l.LocationID)
		if err != nil {
			return fmt.Errorf("check location %d: %w", *l.LocationID, err)
		}
		if !ok {
			errs = append(errs, &UnknownLocationError{Position: i + 1, LocationID: *l.LocationID})
		}
	}
	return errors.Join(errs...)
}
