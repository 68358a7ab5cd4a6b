package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/brndagencynl/HETT-sub001/internal/money"
	"github.com/brndagencynl/HETT-sub001/internal/storage"
)

// Telegram posts submitted offers to the back-office chat. A nil *Telegram
// is a valid no-op notifier, used when no token is configured.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegram(token string, chatID int64, logger *zap.Logger) (*Telegram, error) {
	if token == "" || chatID == 0 {
		logger.Warn("Telegram notifications disabled - no token or chat ID configured")
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID, logger: logger}, nil
}

// OfferSubmitted sends the offer summary and attaches the Excel report when
// one was produced. Failures are logged, never propagated: a lost
// notification must not fail the customer's submission.
func (t *Telegram) OfferSubmitted(offer storage.Offer, excelPath string) {
	if t == nil {
		return
	}

	msg := tgbotapi.NewMessage(t.chatID, formatOffer(offer))
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error("Failed to send offer notification",
			zap.Int64("offer_id", offer.ID),
			zap.Error(err))
		return
	}

	if excelPath == "" {
		return
	}
	doc := tgbotapi.NewDocument(t.chatID, tgbotapi.FilePath(excelPath))
	doc.Caption = fmt.Sprintf("Offerte #%d", offer.ID)
	if _, err := t.bot.Send(doc); err != nil {
		t.logger.Error("Failed to send offer report",
			zap.Int64("offer_id", offer.ID),
			zap.Error(err))
	}
}

func formatOffer(offer storage.Offer) string {
	return fmt.Sprintf(
		"Nieuwe offerte #%d\n\n"+
			"%s\n"+
			"──────────────────\n"+
			"Basis: %s\n"+
			"Opties: %s\n"+
			"Totaal: %s\n"+
			"──────────────────\n"+
			"Contact: %s\n"+
			"Datum: %s",
		offer.ID,
		offer.Summary,
		money.Format(offer.BaseCents),
		money.Format(offer.OptionsCents),
		money.Format(offer.GrandCents),
		offer.Contact,
		offer.CreatedAt.Format("02.01.2006 15:04"),
	)
}
