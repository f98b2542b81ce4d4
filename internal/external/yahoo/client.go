// Package yahoo fetches daily charts, valuation snapshots and company
// names from the public Yahoo Finance endpoints.
package yahoo

import (
	"strings"

	"github.com/moriq/kabuscan/pkg/config"
	"github.com/moriq/kabuscan/pkg/httputil"
	"github.com/moriq/kabuscan/pkg/logger"
)

// Client handles communication with Yahoo Finance
// ⭐ SSOT: Yahoo Finance API 呼び出しはこのクライアントだけ
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.YahooConfig
}

// NewClient creates a new Yahoo Finance client
func NewClient(cfg config.YahooConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// symbol maps a bare TSE code to the Yahoo ticker ("7203" -> "7203.T").
// Index symbols ("^N225") and already-suffixed tickers pass through.
func symbol(code string) string {
	if strings.HasPrefix(code, "^") || strings.Contains(code, ".") {
		return code
	}
	return code + ".T"
}
