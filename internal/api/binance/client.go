package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	httpClient "github.com/Alias1177/cryptosignal/internal/platform/http"
	"github.com/Alias1177/cryptosignal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public spot REST endpoint
const DefaultBaseURL = "https://api.binance.com"

// codeInvalidSymbol is returned by Binance for unknown pairs
const codeInvalidSymbol = -1121

// Client is the Binance public market data client
type Client struct {
	baseURL    string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Binance client
type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Binance API client
func NewClient(options ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: options.BaseURL,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Name:            "binance",
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetryTimeout: options.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "binance_client").Logger(),
	}
}

type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type tickerResponse struct {
	Symbol             string          `json:"symbol"`
	LastPrice          decimal.Decimal `json:"lastPrice"`
	HighPrice          decimal.Decimal `json:"highPrice"`
	LowPrice           decimal.Decimal `json:"lowPrice"`
	PriceChangePercent decimal.Decimal `json:"priceChangePercent"`
	QuoteVolume        decimal.Decimal `json:"quoteVolume"`
}

// Candles fetches the most recent klines, oldest first
func (c *Client) Candles(ctx context.Context, symbol string, tf models.Timeframe, limit int) ([]models.Candle, error) {
	symbol = models.NormalizeSymbol(symbol)
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval(tf))
	q.Set("limit", strconv.Itoa(limit))

	body, err := c.httpClient.Get(ctx, c.baseURL+"/api/v3/klines?"+q.Encode())
	if err != nil {
		return nil, c.classify(symbol, err)
	}

	candles, err := parseKlines(body)
	if err != nil {
		c.logger.Error().Err(err).Str("symbol", symbol).Msg("Error parsing klines")
		return nil, fmt.Errorf("%w: parse klines %s: %v", models.ErrUnavailable, symbol, err)
	}

	c.logger.Debug().Str("symbol", symbol).Str("interval", string(tf)).Int("count", len(candles)).Msg("Fetched candles")
	return candles, nil
}

// Ticker fetches the rolling 24h statistics
func (c *Client) Ticker(ctx context.Context, symbol string) (*models.Ticker, error) {
	symbol = models.NormalizeSymbol(symbol)
	body, err := c.httpClient.Get(ctx, c.baseURL+"/api/v3/ticker/24hr?symbol="+url.QueryEscape(symbol))
	if err != nil {
		return nil, c.classify(symbol, err)
	}

	var data tickerResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: parse ticker %s: %v", models.ErrUnavailable, symbol, err)
	}

	return &models.Ticker{
		Symbol:         symbol,
		LastPrice:      data.LastPrice.InexactFloat64(),
		High24h:        data.HighPrice.InexactFloat64(),
		Low24h:         data.LowPrice.InexactFloat64(),
		Change24hPct:   data.PriceChangePercent.InexactFloat64(),
		QuoteVolume24h: data.QuoteVolume.InexactFloat64(),
	}, nil
}

// classify maps transport failures onto the NotFound / Unavailable split
func (c *Client) classify(symbol string, err error) error {
	var statusErr *httpClient.HTTPStatusError
	if errors.As(err, &statusErr) && !statusErr.Retryable() {
		var apiErr apiError
		if json.Unmarshal(statusErr.Body, &apiErr) == nil && apiErr.Code == codeInvalidSymbol {
			return fmt.Errorf("%w: %s", models.ErrNotFound, symbol)
		}
		c.logger.Warn().Int("status", statusErr.StatusCode).Str("symbol", symbol).Str("response", string(statusErr.Body)).Msg("Binance API error")
	}
	return fmt.Errorf("%w: %s: %v", models.ErrUnavailable, symbol, err)
}

func interval(tf models.Timeframe) string {
	if tf == models.Timeframe24h {
		return "1d"
	}
	return string(tf)
}

// parseKlines decodes Binance's positional kline arrays
func parseKlines(body []byte) ([]models.Candle, error) {
	var raw [][]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	candles := make([]models.Candle, 0, len(raw))
	for i, row := range raw {
		if len(row) < 6 {
			return nil, fmt.Errorf("kline %d: %d fields", i, len(row))
		}

		var openTime int64
		if err := json.Unmarshal(row[0], &openTime); err != nil {
			return nil, fmt.Errorf("kline %d open time: %w", i, err)
		}

		var values [5]decimal.Decimal
		for j := range values {
			if err := json.Unmarshal(row[j+1], &values[j]); err != nil {
				return nil, fmt.Errorf("kline %d field %d: %w", i, j+1, err)
			}
		}

		candles = append(candles, models.Candle{
			OpenTime: time.UnixMilli(openTime).UTC(),
			Open:     values[0].InexactFloat64(),
			High:     values[1].InexactFloat64(),
			Low:      values[2].InexactFloat64(),
			Close:    values[3].InexactFloat64(),
			Volume:   values[4].InexactFloat64(),
		})
	}

	// Sort candles by open time (oldest first) and drop duplicates
	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].OpenTime.Before(candles[j].OpenTime)
	})
	out := candles[:0]
	for _, c := range candles {
		if len(out) > 0 && !c.OpenTime.After(out[len(out)-1].OpenTime) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
