package yahoo

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FetchName scrapes the company name from the Yahoo Finance Japan quote
// page. The JSON endpoints only carry romanized names; the quote page
// title has the Japanese one: "トヨタ自動車(株)【7203】：株価 ...".
func (c *Client) FetchName(ctx context.Context, code string) (string, error) {
	url := fmt.Sprintf("%s/%s", c.cfg.PageBaseURL, symbol(code))

	body, err := c.httpClient.GetBody(ctx, url)
	if err != nil {
		return "", fmt.Errorf("quote page request failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse quote page for %s: %w", code, err)
	}

	name := parseTitleName(doc.Find("title").First().Text())
	if name == "" {
		return "", fmt.Errorf("no company name in quote page for %s", code)
	}

	return name, nil
}

// parseTitleName cuts the page title down to the bare company name
func parseTitleName(title string) string {
	title = strings.TrimSpace(title)
	if i := strings.Index(title, "【"); i >= 0 {
		title = title[:i]
	}
	// Drop the "(株)" legal-form suffix the page titles carry
	title = strings.TrimSuffix(title, "(株)")
	title = strings.TrimPrefix(title, "(株)")
	return strings.TrimSpace(title)
}
