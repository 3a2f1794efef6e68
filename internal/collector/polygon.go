package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guregu/null/v6"
	"golang.org/x/time/rate"

	"DivSentinel/internal/model"
)

// DefaultPolygonBaseURL is the production Polygon API host.
const DefaultPolygonBaseURL = "https://api.polygon.io"

// PolygonFetcher implements EventsFetcher against the Polygon reference
// dividends endpoint. Pages after the first are gated by a rate limiter
// so the "limited calls per minute" upstream constraint holds.
type PolygonFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client

	limiter *rate.Limiter
}

// NewPolygonFetcher creates a fetcher with optional proxy support.
// pageDelay is the minimum spacing between successive page requests; the
// first page is never delayed.
func NewPolygonFetcher(apiKey, proxyURL string, pageDelay time.Duration) *PolygonFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &PolygonFetcher{
		BaseURL: DefaultPolygonBaseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Every(pageDelay), 1),
	}
}

func (f *PolygonFetcher) Name() string { return "polygon" }

// polygonDividend is one row of the dividends response.
type polygonDividend struct {
	Ticker          string      `json:"ticker"`
	ExDividendDate  string      `json:"ex_dividend_date"`
	RecordDate      string      `json:"record_date"`
	CashAmount      float64     `json:"cash_amount"`
	DeclarationDate null.String `json:"declaration_date"`
	PayDate         null.String `json:"pay_date"`
	Frequency       null.Int    `json:"frequency"`
	DividendType    null.String `json:"dividend_type"`
}

type polygonDividendsResponse struct {
	Results []polygonDividend `json:"results"`
	NextURL string            `json:"next_url"`
}

// FetchDividendEvents walks the paginated dividends listing for ticker
// until the cursor is exhausted. Any page with a non-success status is a
// hard failure for the fetch. Cursor URLs already carrying the API key
// are used as-is; the key is appended only when absent.
func (f *PolygonFetcher) FetchDividendEvents(ctx context.Context, ticker string) ([]model.DividendEvent, error) {
	pageURL := fmt.Sprintf("%s/v3/reference/dividends?ticker=%s&apiKey=%s",
		f.BaseURL, url.QueryEscape(ticker), url.QueryEscape(f.APIKey))

	var events []model.DividendEvent
	for pageURL != "" {
		if !strings.Contains(pageURL, "apiKey=") {
			pageURL += "&apiKey=" + url.QueryEscape(f.APIKey)
		}
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("dividends rate limit wait: %w", err)
		}

		page, err := f.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		for _, row := range page.Results {
			ev, err := row.toEvent(ticker)
			if err != nil {
				log.Printf("[WARN] polygon: skip malformed dividend row for %s: %v", ticker, err)
				continue
			}
			events = append(events, ev)
		}
		pageURL = page.NextURL
	}
	return events, nil
}

func (f *PolygonFetcher) fetchPage(ctx context.Context, pageURL string) (*polygonDividendsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dividends request: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dividends fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dividends read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Endpoint: "dividends", Body: string(body)}
	}

	var page polygonDividendsResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("dividends decode: %w", err)
	}
	return &page, nil
}

func (d polygonDividend) toEvent(ticker string) (model.DividendEvent, error) {
	exDate, err := time.Parse("2006-01-02", d.ExDividendDate)
	if err != nil {
		return model.DividendEvent{}, fmt.Errorf("ex_dividend_date: %w", err)
	}
	recordDate, err := time.Parse("2006-01-02", d.RecordDate)
	if err != nil {
		return model.DividendEvent{}, fmt.Errorf("record_date: %w", err)
	}
	if d.Ticker == "" {
		d.Ticker = ticker
	}
	return model.DividendEvent{
		Ticker:          d.Ticker,
		ExDividendDate:  exDate,
		RecordDate:      recordDate,
		CashAmount:      d.CashAmount,
		DeclarationDate: d.DeclarationDate,
		PayDate:         d.PayDate,
		Frequency:       d.Frequency,
		DividendType:    d.DividendType,
	}, nil
}
