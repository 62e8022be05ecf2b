package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockScout/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public chart API.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy
// support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// rangeForDays maps a requested trading-day count onto a Yahoo range
// parameter wide enough to cover it.
func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 250:
		return "1y"
	default:
		return "2y"
	}
}

func (f *YahooFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(symbol), rangeForDays(days))

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	// Trim to requested count
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}
