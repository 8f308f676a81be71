package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Alias1177/cryptosignal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	failures int
	sent     []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.failures > 0 {
		f.failures--
		return tgbotapi.Message{}, errors.New("telegram: Too Many Requests")
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func sampleRecommendation() *models.Recommendation {
	return &models.Recommendation{
		Symbol:       "BTCUSDT",
		Class:        models.StrongLong,
		Direction:    models.DirectionLong,
		Score:        12.5,
		Confidence:   91.3,
		Leverage:     40,
		PositionSize: models.SizeLarge,
		Risk:         models.RiskVeryHigh,
		Reasons:      []string{"RSI oversold (27.0)", "5m volume spike 6.1x"},
		Price:        60150,
		Indicators:   models.IndicatorSnapshot{RSI: 27, MACD: 12.5, MACDSignal: 10.1, VolumeRatio: 6.1},
		Ticker:       &models.Ticker{Change24hPct: 2.04, High24h: 61000, Low24h: 58500, QuoteVolume24h: 1.5e9},
		CreatedAt:    time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestFormatRecommendation(t *testing.T) {
	msg := FormatRecommendation(sampleRecommendation())

	for _, want := range []string{
		"*BTCUSDT* 🟢",
		"*Signal:* STRONG\\_LONG",
		"*Confidence:* 91%",
		"*Leverage:* 40x",
		"*Price:* 60150.00",
		"24h: +2.04%",
		"Volume 24h: $1.50B",
		"RSI: 27.0 (oversold)",
		"1. RSI oversold (27.0)",
		"2. 5m volume spike 6.1x",
		"_2024-05-01 12:30 UTC_",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0.00001234", formatPrice(0.00001234))
	assert.Equal(t, "1.2345", formatPrice(1.2345))
	assert.Equal(t, "60150.00", formatPrice(60150))
}

func TestRSIZone(t *testing.T) {
	assert.Equal(t, "overbought", RSIZone(75))
	assert.Equal(t, "oversold", RSIZone(25))
	assert.Equal(t, "neutral", RSIZone(50))
}

func TestTelegramNotifierRetries(t *testing.T) {
	sender := &fakeSender{failures: 1}
	n := NewTelegramNotifier(sender, -100123)

	err := n.Notify(context.Background(), sampleRecommendation(), "hello")
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(-100123), sender.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, sender.sent[0].ParseMode)
	assert.Equal(t, "hello", sender.sent[0].Text)
}

func TestTelegramNotifierGivesUp(t *testing.T) {
	sender := &fakeSender{failures: 10}
	n := NewTelegramNotifier(sender, 1)

	err := n.Notify(context.Background(), sampleRecommendation(), "hello")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "BTCUSDT"))
	assert.Equal(t, 7, sender.failures, "one attempt plus two retries")
}
