package yahoo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moriq/kabuscan/internal/contracts"
)

// rawValue is Yahoo's {raw, fmt} number wrapper
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResult struct {
	DefaultKeyStatistics struct {
		PriceToBook rawValue `json:"priceToBook"`
	} `json:"defaultKeyStatistics"`
	SummaryDetail struct {
		TrailingPE rawValue `json:"trailingPE"`
	} `json:"summaryDetail"`
	CalendarEvents struct {
		Earnings struct {
			EarningsDate []struct {
				Raw *int64 `json:"raw"`
			} `json:"earningsDate"`
		} `json:"earnings"`
	} `json:"calendarEvents"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchFundamentals fetches the valuation snapshot (PBR, PER). Values the
// endpoint does not carry stay nil, which scoring treats as neutral.
// ⭐ SSOT: quoteSummary API 呼び出しはこのファイルだけ
func (c *Client) FetchFundamentals(ctx context.Context, code string) (*contracts.Fundamentals, error) {
	result, err := c.fetchQuoteSummary(ctx, code, "defaultKeyStatistics,summaryDetail")
	if err != nil {
		return nil, err
	}

	fund := &contracts.Fundamentals{
		PriceToBook: result.DefaultKeyStatistics.PriceToBook.Raw,
		TrailingPE:  result.SummaryDetail.TrailingPE.Raw,
	}

	c.logger.WithFields(map[string]interface{}{
		"code":    code,
		"has_pbr": fund.HasPBR(),
		"has_per": fund.HasPER(),
	}).Debug("Fetched fundamentals")

	return fund, nil
}

func (c *Client) fetchQuoteSummary(ctx context.Context, code, modules string) (*quoteSummaryResult, error) {
	url := fmt.Sprintf("%s/%s?modules=%s", c.cfg.QuoteBaseURL, symbol(code), modules)

	body, err := c.httpClient.GetBody(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("quoteSummary request failed: %w", err)
	}

	var resp quoteSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal quoteSummary for %s: %w", code, err)
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary API error: %s (%s)",
			resp.QuoteSummary.Error.Code, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, contracts.ErrNoData
	}

	return &resp.QuoteSummary.Result[0], nil
}
