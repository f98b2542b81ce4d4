package contracts

import (
	"fmt"
	"time"
)

// PriceBar represents one trading day of OHLCV data
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Validate checks the bar's internal consistency. A violation here is a
// programming-contract fault of the data source, not a missing-data
// condition, so it is reported as an error.
func (b PriceBar) Validate() error {
	if b.High < b.Open || b.High < b.Close {
		return fmt.Errorf("bar %s: high %.2f below open/close", b.Date.Format("2006-01-02"), b.High)
	}
	if b.Low > b.Open || b.Low > b.Close {
		return fmt.Errorf("bar %s: low %.2f above open/close", b.Date.Format("2006-01-02"), b.Low)
	}
	if b.Volume < 0 {
		return fmt.Errorf("bar %s: negative volume %d", b.Date.Format("2006-01-02"), b.Volume)
	}
	return nil
}

// PriceSeries is a chronological sequence of daily bars for one ticker.
// Index 0 is the oldest bar, the last element is the most recent.
type PriceSeries []PriceBar

// Len returns the number of bars
func (s PriceSeries) Len() int {
	return len(s)
}

// Last returns the most recent bar
func (s PriceSeries) Last() (PriceBar, bool) {
	if len(s) == 0 {
		return PriceBar{}, false
	}
	return s[len(s)-1], true
}

// LastClose returns the most recent closing price
func (s PriceSeries) LastClose() (float64, bool) {
	bar, ok := s.Last()
	if !ok {
		return 0, false
	}
	return bar.Close, true
}

// Closes extracts the closing-price sequence, oldest first
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close
	}
	return closes
}

// RecentHigh returns the highest high over the last n bars.
// Uses the whole series when it is shorter than n.
func (s PriceSeries) RecentHigh(n int) (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	start := len(s) - n
	if start < 0 {
		start = 0
	}
	high := s[start].High
	for _, b := range s[start+1:] {
		if b.High > high {
			high = b.High
		}
	}
	return high, true
}

// Validate checks every bar in the series
func (s PriceSeries) Validate() error {
	for _, b := range s {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Fundamentals is a point-in-time valuation snapshot.
// Nil pointers mean the value is unknown, which scoring treats as neutral.
type Fundamentals struct {
	PriceToBook *float64 `json:"price_to_book,omitempty"` // PBR
	TrailingPE  *float64 `json:"trailing_pe,omitempty"`   // PER
}

// HasPBR reports whether a positive price-to-book ratio is available
func (f *Fundamentals) HasPBR() bool {
	return f != nil && f.PriceToBook != nil && *f.PriceToBook > 0
}

// HasPER reports whether a positive trailing P/E is available
func (f *Fundamentals) HasPER() bool {
	return f != nil && f.TrailingPE != nil && *f.TrailingPE > 0
}
