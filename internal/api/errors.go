package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Spok95/metalstock/internal/domain/materials"
	"github.com/Spok95/metalstock/internal/domain/receiving"
)

// issue ошибка ввода для формы: код + сообщение для пользователя
type issue struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Position  int    `json:"position,omitempty"`
	LotNumber string `json:"lot_number,omitempty"`
	Field     string `json:"field,omitempty"`
}

// issues раскладывает errors.Join обратно на отдельные ошибки
func issues(err error) []issue {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []issue
		for _, e := range j.Unwrap() {
			out = append(out, issues(e)...)
		}
		return out
	}

	var (
		unsupported  *materials.UnsupportedShapeError
		noSymbol     *materials.MissingShapeSymbolError
		noNumber     *materials.MissingNumericValueError
		nonPositive  *materials.NonPositiveDimensionError
		badProfile   *materials.InvalidProfileError
		duplicate    *receiving.DuplicateLotNumberError
		emptyNumber  *receiving.EmptyLotNumberError
		insufficient *receiving.InsufficientLotInputError
		unknownLoc   *receiving.UnknownLocationError
		negative     *receiving.NegativeLotInputError
		invalid      validator.ValidationErrors
	)
	switch {
	case errors.As(err, &unsupported):
		return []issue{{Code: "unsupported_shape", Message: fmt.Sprintf("Неизвестная форма: %q", unsupported.Shape)}}
	case errors.As(err, &noSymbol):
		return []issue{{Code: "missing_shape_symbol", Message: "Укажите форму в начале размера: φ, H или □"}}
	case errors.As(err, &noNumber):
		return []issue{{Code: "missing_numeric_value", Message: "В размере не найдено число"}}
	case errors.As(err, &nonPositive):
		return []issue{{Code: "non_positive_dimension", Message: "Размер должен быть больше 0"}}
	case errors.As(err, &badProfile):
		return []issue{{Code: "invalid_profile", Field: badProfile.Field, Message: fmt.Sprintf("Поле %s должно быть больше 0", badProfile.Field)}}
	case errors.As(err, &duplicate):
		return []issue{{
			Code:      "duplicate_lot_number",
			LotNumber: duplicate.LotNumber,
			Position:  duplicate.Positions[len(duplicate.Positions)-1],
			Message:   fmt.Sprintf("Номер лота %s повторяется", duplicate.LotNumber),
		}}
	case errors.As(err, &emptyNumber):
		return []issue{{Code: "empty_lot_number", Position: emptyNumber.Position, Message: fmt.Sprintf("Лот #%d: не указан номер лота", emptyNumber.Position)}}
	case errors.As(err, &insufficient):
		need := "количество или вес"
		if insufficient.Policy == receiving.PolicyBoth {
			need = "количество и вес"
		}
		return []issue{{
			Code:      "insufficient_lot_input",
			Position:  insufficient.Position,
			LotNumber: insufficient.LotNumber,
			Message:   fmt.Sprintf("Лот #%d: укажите %s", insufficient.Position, need),
		}}
	case errors.As(err, &negative):
		return []issue{{
			Code:      "negative_lot_input",
			Position:  negative.Position,
			LotNumber: negative.LotNumber,
			Field:     negative.Field,
			Message:   fmt.Sprintf("Лот #%d: значение не может быть отрицательным", negative.Position),
		}}
	case errors.As(err, &unknownLoc):
		return []issue{{Code: "unknown_location", Position: unknownLoc.Position, Message: fmt.Sprintf("Лот #%d: место хранения %d не найдено", unknownLoc.Position, unknownLoc.LocationID)}}
	case errors.Is(err, receiving.ErrInvalidPurchaseMonth):
		return []issue{{Code: "invalid_purchase_month", Field: "purchase_month", Message: "Месяц закупки в формате ГГММ"}}
	case errors.Is(err, receiving.ErrEmptyBatch):
		return []issue{{Code: "empty_batch", Message: "Добавьте хотя бы один лот"}}
	case errors.As(err, &invalid):
		out := make([]issue, 0, len(invalid))
		for _, fe := range invalid {
			out = append(out, issue{
				Code:    "invalid_request",
				Field:   fieldPath(fe.Namespace()),
				Message: fmt.Sprintf("Некорректное значение (%s)", fe.Tag()),
			})
		}
		return out
	}
	return []issue{{Code: "invalid_input", Message: err.Error()}}
}

// isInputError ошибка относится к вводу пользователя, а не к хранилищу
func isInputError(err error) bool {
	list := issues(err)
	return len(list) > 0 && list[0].Code != "invalid_input"
}

// fieldPath "submitReq.Lots[0].Quantity" -> "Lots[0].Quantity"
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
