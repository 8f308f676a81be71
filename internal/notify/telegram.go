package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/Alias1177/cryptosignal/models"
	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	_ models.Notifier = (*TelegramNotifier)(nil)
	_ models.Notifier = (*LogNotifier)(nil)
)

// Sender is the part of tgbotapi.BotAPI the notifier needs
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts recommendations to one chat
type TelegramNotifier struct {
	bot        Sender
	chatID     int64
	maxElapsed time.Duration
	logger     zerolog.Logger
}

// NewTelegramBot authorizes the bot token
func NewTelegramBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return bot, nil
}

// NewTelegramNotifier creates a notifier over an authorized bot
func NewTelegramNotifier(bot Sender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{
		bot:        bot,
		chatID:     chatID,
		maxElapsed: 15 * time.Second,
		logger:     log.With().Str("component", "telegram_notifier").Logger(),
	}
}

// Notify sends the message with a few retries
func (n *TelegramNotifier) Notify(ctx context.Context, rec *models.Recommendation, message string) error {
	msg := tgbotapi.NewMessage(n.chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	attempt := 0
	operation := func() error {
		attempt++
		_, err := n.bot.Send(msg)
		if err != nil {
			n.logger.Warn().Err(err).Int("attempt", attempt).Str("symbol", rec.Symbol).Msg("telegram send failed")
		}
		return err
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = 200 * time.Millisecond
	strategy.MaxElapsedTime = n.maxElapsed
	policy := backoff.WithContext(backoff.WithMaxRetries(strategy, 2), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("send %s to telegram: %w", rec.Symbol, err)
	}
	n.logger.Info().Str("symbol", rec.Symbol).Str("class", string(rec.Class)).Msg("signal delivered")
	return nil
}

// LogNotifier prints messages instead of sending them
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier is used for dry runs
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.With().Str("component", "log_notifier").Logger()}
}

// Notify implements models.Notifier
func (n *LogNotifier) Notify(_ context.Context, rec *models.Recommendation, message string) error {
	n.logger.Info().
		Str("symbol", rec.Symbol).
		Str("class", string(rec.Class)).
		Float64("confidence", rec.Confidence).
		Int("leverage", rec.Leverage).
		Msg(message)
	return nil
}
