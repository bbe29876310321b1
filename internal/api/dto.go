package api

import (
	"time"

	"github.com/Spok95/metalstock/internal/domain/materials"
	"github.com/Spok95/metalstock/internal/domain/receiving"
)

type profileReq struct {
	Shape      string  `json:"shape" validate:"omitempty,oneof=round hexagon square"`
	Dimension  string  `json:"dimension"`
	DiameterMm float64 `json:"diameter_mm" validate:"gte=0"`
	LengthMm   float64 `json:"length_mm" validate:"gte=0"`
	Density    float64 `json:"density" validate:"gte=0"`
}

// profile собирает профиль; поле dimension ("φ10"), если задано, главнее shape/diameter_mm.
func (p profileReq) profile() (materials.Profile, error) {
	d := materials.Dimension{Shape: materials.Shape(p.Shape), Mm: p.DiameterMm}
	if p.Dimension != "" {
		parsed, err := materials.ParseDimension(p.Dimension)
		if err != nil {
			return materials.Profile{}, err
		}
		if !parsed.IsEmpty() {
			d = parsed
		}
	}
	return materials.Profile{Dimension: d, LengthMm: p.LengthMm, Density: p.Density}, nil
}

type unitWeightResp struct {
	Shape        string   `json:"shape"`
	UnitWeightKg *float64 `json:"unit_weight_kg"`
}

type convertReq struct {
	UnitWeightKg float64  `json:"unit_weight_kg" validate:"gte=0"`
	Quantity     *int     `json:"quantity" validate:"omitempty,gte=0"`
	WeightKg     *float64 `json:"weight_kg" validate:"omitempty,gte=0"`
	Rounding     string   `json:"rounding" validate:"omitempty,oneof=floor at_least_one"`
}

type convertResp struct {
	WeightKg *float64 `json:"weight_kg"`
	Quantity *int     `json:"quantity"`
}

type dimensionResp struct {
	Shape      *string  `json:"shape"`
	DiameterMm *float64 `json:"diameter_mm"`
	Display    string   `json:"display"`
}

type lotReq struct {
	LotNumber  string   `json:"lot_number" validate:"max=64"`
	Quantity   *int     `json:"quantity" validate:"omitempty,gte=0"`
	WeightKg   *float64 `json:"weight_kg" validate:"omitempty,gte=0"`
	LocationID *int64   `json:"location_id" validate:"omitempty,gt=0"`
	Notes      string   `json:"notes" validate:"max=500"`
}

type reconcileReq struct {
	ExpectedQuantity *int        `json:"expected_quantity" validate:"omitempty,gte=0"`
	UnitWeightKg     *float64    `json:"unit_weight_kg" validate:"omitempty,gte=0"`
	Profile          *profileReq `json:"profile"`
	Policy           string      `json:"policy" validate:"omitempty,oneof=either both"`
	Lots             []lotReq    `json:"lots" validate:"dive"`
}

type reconcileResp struct {
	UnitWeightKg *float64         `json:"unit_weight_kg"`
	Totals       receiving.Totals `json:"totals"`
	Issues       []issue          `json:"issues"`
}

type submitReq struct {
	Profile          profileReq `json:"profile"`
	PurchaseMonth    string     `json:"purchase_month" validate:"omitempty,len=4,numeric"`
	ReceivedDate     string     `json:"received_date" validate:"omitempty,datetime=2006-01-02"`
	UnitPrice        *float64   `json:"unit_price" validate:"omitempty,gt=0"`
	ExpectedQuantity *int       `json:"expected_quantity" validate:"omitempty,gte=0"`
	Lots             []lotReq   `json:"lots" validate:"required,min=1,dive"`
}

type submitResp struct {
	Submitted int                   `json:"submitted"`
	Records   []receiving.LotRecord `json:"records"`
	Totals    receiving.Totals      `json:"totals"`
}

// header дата приёмки по умолчанию — сегодня, месяц закупки — из даты приёмки.
func (s submitReq) header(now time.Time) (receiving.Header, error) {
	p, err := s.Profile.profile()
	if err != nil {
		return receiving.Header{}, err
	}
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if s.ReceivedDate != "" {
		// формат уже проверен валидатором
		date, _ = time.ParseInLocation("2006-01-02", s.ReceivedDate, now.Location())
	}
	month := s.PurchaseMonth
	if month == "" {
		month = receiving.PurchaseMonthOf(date)
	}
	return receiving.Header{
		Profile:       p,
		PurchaseMonth: month,
		ReceivedDate:  date,
		UnitPrice:     s.UnitPrice,
	}, nil
}

func buildBatch(expected *int, lots []lotReq) *receiving.Batch {
	b := receiving.NewBatch(expected)
	for _, l := range lots {
		b.Add(receiving.Lot{
			LotNumber:  l.LotNumber,
			Quantity:   l.Quantity,
			WeightKg:   l.WeightKg,
			LocationID: l.LocationID,
			Notes:      l.Notes,
		})
	}
	return b
}
