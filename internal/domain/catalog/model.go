package catalog

import "time"

type LocationType string

const (
	LocRack    LocationType = "rack"    // стеллаж на складе
	LocCutting LocationType = "cutting" // участок резки
	LocOutside LocationType = "outside" // на стороне (обработка, контроль)
)

type Location struct {
	ID        int64
	Code      string // A-01-3
	Name      string
	Type      LocationType
	Active    bool
	CreatedAt time.Time
}
