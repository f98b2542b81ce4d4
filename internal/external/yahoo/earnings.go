package yahoo

import (
	"context"
	"time"
)

// FetchEarningsDate fetches the next earnings announcement date as
// "2006-01-02", or "-" when Yahoo does not carry one. Never fails hard:
// the date is ranking-table decoration, not scoring input.
func (c *Client) FetchEarningsDate(ctx context.Context, code string) string {
	result, err := c.fetchQuoteSummary(ctx, code, "calendarEvents")
	if err != nil {
		c.logger.WithError(err).WithField("code", code).Debug("No earnings calendar")
		return "-"
	}

	dates := result.CalendarEvents.Earnings.EarningsDate
	if len(dates) == 0 || dates[0].Raw == nil {
		return "-"
	}

	return time.Unix(*dates[0].Raw, 0).UTC().Format("2006-01-02")
}
