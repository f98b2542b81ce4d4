package yahoo

import (
	"errors"
	"testing"

	"github.com/moriq/kabuscan/internal/contracts"
)

func TestParseChart(t *testing.T) {
	valid := `{"chart":{"result":[{
		"timestamp":[1767571200,1767657600,1767744000],
		"indicators":{"quote":[{
			"open":[2500.0,2520.0,null],
			"high":[2550.0,2560.0,2580.0],
			"low":[2490.0,2505.0,2530.0],
			"close":[2520.0,2545.0,2560.0],
			"volume":[1200000,1350000,null]
		}]}}],"error":null}}`

	nullClose := `{"chart":{"result":[{
		"timestamp":[1767571200,1767657600],
		"indicators":{"quote":[{
			"open":[2500.0,2520.0],
			"high":[2550.0,2560.0],
			"low":[2490.0,2505.0],
			"close":[2520.0,null],
			"volume":[1200000,1350000]
		}]}}],"error":null}}`

	apiError := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

	empty := `{"chart":{"result":[],"error":null}}`

	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"valid chart", valid, 3, false},
		{"null close dropped", nullClose, 1, false},
		{"api error", apiError, 0, true},
		{"not json", "<html>blocked</html>", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChart([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseChart() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.Len() != tt.want {
				t.Errorf("parseChart() got %d bars, want %d", got.Len(), tt.want)
			}
		})
	}

	t.Run("empty result is ErrNoData", func(t *testing.T) {
		_, err := parseChart([]byte(empty))
		if !errors.Is(err, contracts.ErrNoData) {
			t.Errorf("parseChart() error = %v, want ErrNoData", err)
		}
	})

	t.Run("null OHLC falls back to close", func(t *testing.T) {
		series, err := parseChart([]byte(valid))
		if err != nil {
			t.Fatal(err)
		}
		last := series[len(series)-1]
		if last.Open != last.Close {
			t.Errorf("null open should fall back to close, got %v", last.Open)
		}
		if last.Volume != 0 {
			t.Errorf("null volume should be 0, got %d", last.Volume)
		}
		if err := last.Validate(); err != nil {
			t.Errorf("fallback bar fails validation: %v", err)
		}
	})

	t.Run("bars are oldest first", func(t *testing.T) {
		series, err := parseChart([]byte(valid))
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(series); i++ {
			if !series[i].Date.After(series[i-1].Date) {
				t.Errorf("bar %d not after bar %d", i, i-1)
			}
		}
	})
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"7203", "7203.T"},
		{"^N225", "^N225"},
		{"7203.T", "7203.T"},
	}
	for _, tt := range tests {
		if got := symbol(tt.code); got != tt.want {
			t.Errorf("symbol(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestParseTitleName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"トヨタ自動車(株)【7203】：株価・株式情報 - Yahoo!ファイナンス", "トヨタ自動車"},
		{"ソニーグループ(株)【6758】：株価", "ソニーグループ"},
		{"日経平均株価【998407.O】：株価", "日経平均株価"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseTitleName(tt.title); got != tt.want {
			t.Errorf("parseTitleName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
