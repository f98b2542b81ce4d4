package contracts

import (
	"strings"
	"testing"
	"time"
)

func bar(date time.Time, open, high, low, close float64, volume int64) PriceBar {
	return PriceBar{Date: date, Open: open, High: high, Low: low, Close: close, Volume: volume}
}

func TestPriceBarValidate(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		bar     PriceBar
		wantErr bool
	}{
		{"valid bar", bar(day, 100, 110, 95, 105, 1000), false},
		{"high below low", bar(day, 100, 95, 110, 105, 1000), true},
		{"close above high", bar(day, 100, 110, 95, 115, 1000), true},
		{"open below low", bar(day, 90, 110, 95, 105, 1000), true},
		{"negative volume", bar(day, 100, 110, 95, 105, -1), true},
		{"doji", bar(day, 100, 100, 100, 100, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bar.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPriceSeriesHelpers(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	series := PriceSeries{
		bar(day, 100, 112, 99, 110, 500),
		bar(day.AddDate(0, 0, 1), 110, 125, 108, 120, 600),
		bar(day.AddDate(0, 0, 2), 120, 121, 112, 115, 700),
	}

	if got, ok := series.LastClose(); !ok || got != 115 {
		t.Errorf("LastClose = %v, %v, want 115", got, ok)
	}
	if _, ok := (PriceSeries{}).LastClose(); ok {
		t.Error("LastClose on empty series should report absence")
	}

	closes := series.Closes()
	if len(closes) != 3 || closes[0] != 110 || closes[2] != 115 {
		t.Errorf("Closes = %v", closes)
	}

	// Highest high over last 2 bars
	if got, ok := series.RecentHigh(2); !ok || got != 125 {
		t.Errorf("RecentHigh(2) = %v, want 125", got)
	}
	// Window longer than series falls back to the whole series
	if got, ok := series.RecentHigh(10); !ok || got != 125 {
		t.Errorf("RecentHigh(10) = %v, want 125", got)
	}
	if _, ok := (PriceSeries{}).RecentHigh(5); ok {
		t.Error("RecentHigh on empty series should report absence")
	}

	if err := series.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	series[1].Low = 130
	if err := series.Validate(); err == nil {
		t.Error("Validate should report the corrupted bar")
	}
}

func TestFundamentals(t *testing.T) {
	pbr := 0.9
	per := 12.5
	zero := 0.0
	neg := -3.0

	tests := []struct {
		name     string
		fund     *Fundamentals
		wantPBR  bool
		wantPER  bool
	}{
		{"nil", nil, false, false},
		{"empty", &Fundamentals{}, false, false},
		{"both present", &Fundamentals{PriceToBook: &pbr, TrailingPE: &per}, true, true},
		{"zero is absent", &Fundamentals{PriceToBook: &zero}, false, false},
		{"negative is absent", &Fundamentals{TrailingPE: &neg}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fund.HasPBR(); got != tt.wantPBR {
				t.Errorf("HasPBR = %v, want %v", got, tt.wantPBR)
			}
			if got := tt.fund.HasPER(); got != tt.wantPER {
				t.Errorf("HasPER = %v, want %v", got, tt.wantPER)
			}
		})
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "激アツ"},
		{80, "激アツ"},
		{79, "買い推奨"},
		{60, "買い推奨"},
		{59, "様子見"},
		{40, "様子見"},
		{39, "危険"},
		{0, "危険"},
	}

	for _, tt := range tests {
		r := ScoreResult{Score: tt.score}
		if got := r.Verdict(); got != tt.want {
			t.Errorf("Verdict(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFactorSummary(t *testing.T) {
	r := ScoreResult{Tags: []string{"激アツ", "出来高急増", "割安"}}
	if got := r.FactorSummary(); got != "激アツ、出来高急増、割安" {
		t.Errorf("FactorSummary = %q", got)
	}

	r = ScoreResult{}
	if got := r.FactorSummary(); got != "特になし" {
		t.Errorf("empty FactorSummary = %q", got)
	}
}

func TestEntryPolicyLabel(t *testing.T) {
	tests := []struct {
		policy EntryPolicy
		want   string
	}{
		{PolicyMomentumBuy, "Momentum Buy (成行)"},
		{PolicyTrendFollow, "Trend Follow (MA5)"},
		{PolicyDipBuy, "Dip Buy (MA25)"},
		{PolicyRebound, "Rebound (MA75)"},
		{PolicyBottomFishing, "Bottom Fishing"},
	}

	for _, tt := range tests {
		if got := tt.policy.Label(); got != tt.want {
			t.Errorf("Label(%s) = %q, want %q", tt.policy, got, tt.want)
		}
	}

	if got := EntryPolicy("bogus").Label(); !strings.Contains(got, "bogus") {
		t.Errorf("unknown policy label should carry the raw value, got %q", got)
	}
}
