package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/metalstock/internal/domain/receiving"
)

// Telegram шлёт сводку по проведённой приёмке в админский чат
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

func NewTelegram(token string, chatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, log: log}, nil
}

func (t *Telegram) ReceiptSubmitted(_ context.Context, h receiving.Header, res receiving.Result) {
	msg := tgbotapi.NewMessage(t.chatID, ReceiptSummary(h, res))
	if _, err := t.api.Send(msg); err != nil {
		t.log.Error("send failed", "err", err)
	}
}

// ReceiptSummary текст сообщения о приёмке
func ReceiptSummary(h receiving.Header, res receiving.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Приёмка %s, %s L=%.0f мм, ρ=%.2f\n",
		h.ReceivedDate.Format("2006-01-02"), h.Profile.Dimension, h.Profile.LengthMm, h.Profile.Density)

	for i, rec := range res.Records {
		line := fmt.Sprintf("%d. %s", i+1, rec.LotNumber)
		if rec.ReceivedQuantity != nil {
			line += fmt.Sprintf(" — %d шт", *rec.ReceivedQuantity)
		}
		if rec.ReceivedWeightKg != nil {
			line += fmt.Sprintf(" — %.3f кг", *rec.ReceivedWeightKg)
		}
		sb.WriteString(line + "\n")
	}

	t := res.Totals
	fmt.Fprintf(&sb, "Итого: %d шт, %.3f кг", t.TotalQuantity, t.TotalWeightKg)
	if t.ExpectedQuantity != nil {
		fmt.Fprintf(&sb, " (заказано %d шт: %s)", *t.ExpectedQuantity, comparisonText(t.Comparison))
	}
	return sb.String()
}

func comparisonText(c receiving.Comparison) string {
	switch c {
	case receiving.ComparisonOnTarget:
		return "совпадает"
	case receiving.ComparisonOver:
		return "больше заказа"
	case receiving.ComparisonUnder:
		return "меньше заказа"
	}
	return "—"
}
