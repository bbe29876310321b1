package receiving

import (
	"fmt"
	"strconv"
	"strings"
)

// Position во всех ошибках — порядковый номер лота в партии, с 1.

type EmptyLotNumberError struct {
	Position int
}

func (e *EmptyLotNumberError) Error() string {
	return fmt.Sprintf("lot #%d: lot number is empty", e.Position)
}

type DuplicateLotNumberError struct {
	LotNumber string
	Positions []int
}

func (e *DuplicateLotNumberError) Error() string {
	ps := make([]string, len(e.Positions))
	for i, p := range e.Positions {
		ps[i] = "#" + strconv.Itoa(p)
	}
	return fmt.Sprintf("lot number %q is used more than once (%s)", e.LotNumber, strings.Join(ps, ", "))
}

type InsufficientLotInputError struct {
	Position  int
	LotNumber string
	Policy    Policy
}

func (e *InsufficientLotInputError) Error() string {
	need := "quantity or weight"
	if e.Policy == PolicyBoth {
		need = "quantity and weight"
	}
	return fmt.Sprintf("lot #%d (%s): %s required", e.Position, e.LotNumber, need)
}

// NegativeLotInputError Field: quantity | weight_kg
type NegativeLotInputError struct {
	Position  int
	LotNumber string
	Field     string
	Value     float64
}

func (e *NegativeLotInputError) Error() string {
	return fmt.Sprintf("lot #%d (%s): %s must not be negative, got %v", e.Position, e.LotNumber, e.Field, e.Value)
}

type UnknownLocationError struct {
	Position   int
	LocationID int64
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("lot #%d: location %d not found or inactive", e.Position, e.LocationID)
}

// SubmitError отправка остановилась на лоте Position; Submitted лотов уже проведено.
type SubmitError struct {
	Position  int
	LotNumber string
	Submitted int
	Err       error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("lot #%d (%s): %v", e.Position, e.LotNumber, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }
