package notify

import (
	"fmt"
	"strings"

	"github.com/Alias1177/cryptosignal/models"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// RSIZone labels the oscillator the way traders read it
func RSIZone(rsi float64) string {
	switch {
	case rsi > 70:
		return "overbought"
	case rsi < 30:
		return "oversold"
	}
	return "neutral"
}

// FormatRecommendation renders a Telegram Markdown message
func FormatRecommendation(rec *models.Recommendation) string {
	var b strings.Builder

	directionEmoji := "⚖️"
	switch rec.Direction {
	case models.DirectionLong:
		directionEmoji = "🟢"
	case models.DirectionShort:
		directionEmoji = "🔴"
	}

	b.WriteString(fmt.Sprintf("*%s* %s\n\n", escapeMarkdown(rec.Symbol), directionEmoji))
	b.WriteString(fmt.Sprintf("*Signal:* %s\n", escapeMarkdown(string(rec.Class))))
	b.WriteString(fmt.Sprintf("*Confidence:* %.0f%%\n", rec.Confidence))
	b.WriteString(fmt.Sprintf("*Score:* %.1f\n", rec.Score))
	b.WriteString(fmt.Sprintf("*Leverage:* %dx | *Size:* %s | *Risk:* %s\n\n",
		rec.Leverage, escapeMarkdown(string(rec.PositionSize)), escapeMarkdown(string(rec.Risk))))

	b.WriteString(fmt.Sprintf("*Price:* %s\n", formatPrice(rec.Price)))
	if t := rec.Ticker; t != nil {
		b.WriteString(fmt.Sprintf("24h: %+.2f%% | H %s | L %s\n", t.Change24hPct, formatPrice(t.High24h), formatPrice(t.Low24h)))
		b.WriteString(fmt.Sprintf("Volume 24h: $%s\n", formatVolume(t.QuoteVolume24h)))
	}

	ind := rec.Indicators
	b.WriteString("\n*Key Indicators:*\n")
	b.WriteString(fmt.Sprintf("RSI: %.1f (%s) | ", ind.RSI, RSIZone(ind.RSI)))
	b.WriteString(fmt.Sprintf("MACD: %.6f / %.6f\n", ind.MACD, ind.MACDSignal))
	b.WriteString(fmt.Sprintf("Volume ratio: %.2fx | Stoch: %.0f | %%B: %.0f\n", ind.VolumeRatio, ind.StochasticK, ind.BollingerPctB))

	if len(rec.Reasons) > 0 {
		b.WriteString("\n*Decision Factors:*\n")
		for i, reason := range rec.Reasons {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, escapeMarkdown(reason)))
		}
	}

	b.WriteString(fmt.Sprintf("\n_%s UTC_", rec.CreatedAt.UTC().Format("2006-01-02 15:04")))
	return b.String()
}

// formatPrice keeps more decimals for cheap coins
func formatPrice(p float64) string {
	switch {
	case p >= 1000:
		return fmt.Sprintf("%.2f", p)
	case p >= 1:
		return fmt.Sprintf("%.4f", p)
	}
	return fmt.Sprintf("%.8f", p)
}

func formatVolume(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	}
	return fmt.Sprintf("%.2f", v)
}
