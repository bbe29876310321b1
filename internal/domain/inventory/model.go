package inventory

import "time"

type MoveType string

const (
	MoveIn  MoveType = "in"
	MoveOut MoveType = "out"
)

// StockLot принятый лот с текущим остатком
type StockLot struct {
	ID             int64
	LotNumber      string
	Shape          string
	DiameterMm     float64
	LengthMm       int
	Density        float64
	QtyOnHand      int
	WeightOnHandKg float64
	LocationID     *int64
	PurchaseMonth  string
	ReceivedDate   time.Time
	CreatedAt      time.Time
}

type Movement struct {
	ID        int64
	CreatedAt time.Time
	LotID     int64
	Qty       int
	WeightKg  float64
	Type      MoveType
	Note      string
}
