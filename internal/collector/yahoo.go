package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"itisinvest/internal/model"
)

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
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

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
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

func (f *YahooFetcher) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

// chartRange maps a session count to the smallest Yahoo range covering it.
func chartRange(sessions int) string {
	switch {
	case sessions <= 5:
		return "5d"
	case sessions <= 22:
		return "1mo"
	case sessions <= 66:
		return "3mo"
	default:
		return "6mo"
	}
}

func (f *YahooFetcher) FetchCloses(ctx context.Context, symbol string, sessions int) (model.PriceObservation, error) {
	obs := model.PriceObservation{Symbol: symbol}
	if sessions < 2 {
		return obs, &FetchError{Symbol: symbol, Reason: ReasonNoData, Err: fmt.Errorf("sessions must be >= 2, got %d", sessions)}
	}

	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(symbol), chartRange(sessions))

	var chart yahooChart
	if err := f.getJSON(ctx, u, &chart); err != nil {
		return obs, &FetchError{Symbol: symbol, Reason: ReasonNetwork, Err: err}
	}
	if chart.Chart.Error != nil {
		return obs, &FetchError{Symbol: symbol, Reason: ReasonInvalidSymbol,
			Err: fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)}
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return obs, &FetchError{Symbol: symbol, Reason: ReasonNoData, Err: fmt.Errorf("yahoo: no data returned")}
	}

	quote := chart.Chart.Result[0].Indicators.Quote[0]
	closes := make([]float64, 0, len(quote.Close))
	for _, v := range quote.Close {
		c := toFloat(v)
		if c == 0 {
			continue // skip null bars (holidays etc.)
		}
		closes = append(closes, c)
	}
	if len(closes) < 2 {
		return obs, &FetchError{Symbol: symbol, Reason: ReasonNoData,
			Err: fmt.Errorf("yahoo: %d usable closes", len(closes))}
	}
	if len(closes) > sessions {
		closes = closes[len(closes)-sessions:]
	}

	obs.Closes = closes
	obs.FetchedAt = time.Now()
	return obs, nil
}

// yahooQuote is the response structure from Yahoo Finance quote API.
type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			Symbol              string  `json:"symbol"`
			ShortName           string  `json:"shortName"`
			RegularMarketVolume float64 `json:"regularMarketVolume"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v7/finance/quote?symbols=%s", url.QueryEscape(symbol))

	var q yahooQuote
	if err := f.getJSON(ctx, u, &q); err != nil {
		return model.Quote{}, &FetchError{Symbol: symbol, Reason: ReasonNetwork, Err: err}
	}
	if len(q.QuoteResponse.Result) == 0 {
		return model.Quote{}, &FetchError{Symbol: symbol, Reason: ReasonNoData, Err: fmt.Errorf("yahoo: no quote returned")}
	}
	r := q.QuoteResponse.Result[0]
	return model.Quote{Symbol: symbol, Name: r.ShortName, Volume: r.RegularMarketVolume}, nil
}

// yahooSearch is the response structure from Yahoo Finance search API.
type yahooSearch struct {
	News []struct {
		Title string `json:"title"`
	} `json:"news"`
}

func (f *YahooFetcher) FetchHeadlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v1/finance/search?q=%s&newsCount=%d&quotesCount=0",
		url.QueryEscape(symbol), limit)

	var s yahooSearch
	if err := f.getJSON(ctx, u, &s); err != nil {
		return nil, &FetchError{Symbol: symbol, Reason: ReasonNetwork, Err: err}
	}
	titles := make([]string, 0, limit)
	for _, n := range s.News {
		if n.Title == "" {
			continue
		}
		titles = append(titles, n.Title)
		if len(titles) >= limit {
			break
		}
	}
	return titles, nil
}
