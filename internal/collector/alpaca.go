package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"DivSentinel/internal/calculator"
	"DivSentinel/internal/model"
)

// DefaultAlpacaBaseURL is the production Alpaca market data host.
const DefaultAlpacaBaseURL = "https://data.alpaca.markets"

// AlpacaFetcher implements BarsFetcher against the Alpaca stock bars
// endpoint. Returned bars are already restricted to regular trading
// hours in the configured exchange timezone.
type AlpacaFetcher struct {
	BaseURL string
	Key     string
	Secret  string
	Client  *http.Client
	Loc     *time.Location

	// Now is the clock used for the future-end-date check. Overridable in
	// tests; defaults to time.Now.
	Now func() time.Time
}

// NewAlpacaFetcher creates a fetcher with optional proxy support. loc is
// the exchange timezone used for the trading-hours filter.
func NewAlpacaFetcher(key, secret, proxyURL string, loc *time.Location) *AlpacaFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlpacaFetcher{
		BaseURL: DefaultAlpacaBaseURL,
		Key:     key,
		Secret:  secret,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Loc: loc,
		Now: time.Now,
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// alpacaBar is one bar of the Alpaca response.
type alpacaBar struct {
	T  string  `json:"t"`
	O  float64 `json:"o"`
	H  float64 `json:"h"`
	L  float64 `json:"l"`
	C  float64 `json:"c"`
	V  float64 `json:"v"`
	VW float64 `json:"vw"`
}

type alpacaBarsResponse struct {
	Bars []alpacaBar `json:"bars"`
}

// FetchBars requests bars for [start, end] at the given timeframe. An end
// date in the future is rejected locally with ErrFutureEndDate before any
// call is made.
func (f *AlpacaFetcher) FetchBars(ctx context.Context, ticker string, start, end time.Time, timeframe string) ([]model.PriceBar, error) {
	if end.After(f.Now()) {
		return nil, ErrFutureEndDate
	}

	params := url.Values{}
	params.Set("start", start.UTC().Format(time.RFC3339))
	params.Set("end", end.UTC().Format(time.RFC3339))
	params.Set("timeframe", timeframe)
	endpoint := fmt.Sprintf("%s/v2/stocks/%s/bars?%s", f.BaseURL, url.PathEscape(ticker), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("bars request: %w", err)
	}
	req.Header.Set("APCA-API-KEY-ID", f.Key)
	req.Header.Set("APCA-API-SECRET-KEY", f.Secret)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bars fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bars read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Endpoint: "bars", Body: string(body)}
	}

	var payload alpacaBarsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("bars decode: %w", err)
	}

	bars := make([]model.PriceBar, 0, len(payload.Bars))
	for _, b := range payload.Bars {
		t, err := time.Parse(time.RFC3339, b.T)
		if err != nil {
			return nil, fmt.Errorf("bars parse timestamp %q: %w", b.T, err)
		}
		bars = append(bars, model.PriceBar{
			Time:   t,
			VW:     b.VW,
			Open:   b.O,
			High:   b.H,
			Low:    b.L,
			Close:  b.C,
			Volume: b.V,
		})
	}
	return calculator.FilterTradingHours(bars, f.Loc), nil
}
