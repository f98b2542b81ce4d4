package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moriq/kabuscan/internal/contracts"
)

// chartResponse mirrors the v8 chart API shape. OHLCV arrays are nullable
// per element: Yahoo emits null for halted or partial sessions.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory fetches the daily chart for the last `months` months.
// Bars without a close are dropped; the result is oldest first.
// ⭐ SSOT: チャートAPI呼び出しはこの関数だけ
func (c *Client) FetchHistory(ctx context.Context, code string, months int) (contracts.PriceSeries, error) {
	url := fmt.Sprintf("%s/%s?range=%dmo&interval=1d", c.cfg.ChartBaseURL, symbol(code), months)

	body, err := c.httpClient.GetBody(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("chart request failed: %w", err)
	}

	series, err := parseChart(body)
	if err != nil {
		return nil, fmt.Errorf("parse chart for %s: %w", code, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"code":  code,
		"count": series.Len(),
	}).Debug("Fetched price history")

	return series, nil
}

// parseChart converts the chart JSON into a price series
func parseChart(body []byte) (contracts.PriceSeries, error) {
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s (%s)",
			resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, contracts.ErrNoData
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, contracts.ErrNoData
	}
	quote := result.Indicators.Quote[0]

	series := make(contracts.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}

		bar := contracts.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		// OHLC gaps fall back to the close so the bar stays consistent
		bar.Open = deref(at(quote.Open, i), bar.Close)
		bar.High = deref(at(quote.High, i), bar.Close)
		bar.Low = deref(at(quote.Low, i), bar.Close)
		if v := at(quote.Volume, i); v != nil {
			bar.Volume = *v
		}

		series = append(series, bar)
	}

	if series.Len() == 0 {
		return nil, contracts.ErrNoData
	}
	return series, nil
}

func at[T any](s []*T, i int) *T {
	if i >= len(s) {
		return nil
	}
	return s[i]
}

func deref(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
