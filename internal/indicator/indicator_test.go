package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/moriq/kabuscan/internal/contracts"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// flatSeries builds n identical bars priced at close with fixed volume
func flatSeries(n int, close float64, volume int64) contracts.PriceSeries {
	series := make(contracts.PriceSeries, n)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := range series {
		series[i] = contracts.PriceBar{
			Date:   day.AddDate(0, 0, i),
			Open:   close,
			High:   close,
			Low:    close,
			Close:  close,
			Volume: volume,
		}
	}
	return series
}

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name   string
		window int
		want   float64
		valid  bool
	}{
		{"window 5", 5, 8.0, true},
		{"window 10", 10, 5.5, true},
		{"window 11 too long", 11, 0, false},
		{"window 1", 1, 10.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SMA(closes, tt.window)
			if got.Valid != tt.valid {
				t.Fatalf("SMA(%d).Valid = %v, want %v", tt.window, got.Valid, tt.valid)
			}
			if got.Valid && !almostEqual(got.Float64, tt.want) {
				t.Errorf("SMA(%d) = %v, want %v", tt.window, got.Float64, tt.want)
			}
		})
	}
}

func TestSMAAt(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// 3-wide window ending 2 bars back: mean(6,7,8)
	got := SMAAt(closes, 3, 2)
	if !got.Valid || !almostEqual(got.Float64, 7.0) {
		t.Errorf("SMAAt(3, 2) = %+v, want 7.0", got)
	}

	// not enough history for window+back
	if got := SMAAt(closes, 9, 2); got.Valid {
		t.Errorf("SMAAt(9, 2) should be undefined, got %v", got.Float64)
	}
}

func TestEMA_SeededAtFirstValue(t *testing.T) {
	// Constant input stays constant regardless of period
	ema := EMA([]float64{5, 5, 5, 5, 5}, 3)
	for i, v := range ema {
		if !almostEqual(v, 5.0) {
			t.Fatalf("EMA[%d] = %v, want 5.0", i, v)
		}
	}

	// Hand-computed recursion: alpha = 2/(3+1) = 0.5, seed = first value
	ema = EMA([]float64{2, 4, 8}, 3)
	want := []float64{2, 3, 5.5}
	for i := range want {
		if !almostEqual(ema[i], want[i]) {
			t.Errorf("EMA[%d] = %v, want %v", i, ema[i], want[i])
		}
	}
}

func TestRSI(t *testing.T) {
	t.Run("all gains saturates at 100", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		got := RSI(closes, 14)
		if !got.Valid || got.Float64 != 100.0 {
			t.Errorf("RSI = %+v, want 100", got)
		}
	})

	t.Run("dead flat is undefined", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 1000
		}
		if got := RSI(closes, 14); got.Valid {
			t.Errorf("RSI on flat series should be undefined, got %v", got.Float64)
		}
	})

	t.Run("mixed gains and losses", func(t *testing.T) {
		// 14 diffs alternating +2/-1: gains 14, losses 7, RS = 2
		closes := []float64{100}
		for i := 0; i < 7; i++ {
			closes = append(closes, closes[len(closes)-1]+2)
			closes = append(closes, closes[len(closes)-1]-1)
		}
		got := RSI(closes, 14)
		want := 100.0 - 100.0/(1.0+2.0)
		if !got.Valid || !almostEqual(got.Float64, want) {
			t.Errorf("RSI = %+v, want %v", got, want)
		}
	})

	t.Run("too short is undefined", func(t *testing.T) {
		if got := RSI([]float64{1, 2, 3}, 14); got.Valid {
			t.Error("RSI with 3 closes should be undefined")
		}
	})

	t.Run("always within [0, 100]", func(t *testing.T) {
		closes := []float64{100}
		for i := 0; i < 40; i++ {
			if i%3 == 0 {
				closes = append(closes, closes[len(closes)-1]*0.93)
			} else {
				closes = append(closes, closes[len(closes)-1]*1.04)
			}
		}
		got := RSI(closes, 14)
		if !got.Valid || got.Float64 < 0 || got.Float64 > 100 {
			t.Errorf("RSI out of range: %+v", got)
		}
	})
}

func TestMACD(t *testing.T) {
	t.Run("flat series has zero MACD", func(t *testing.T) {
		closes := make([]float64, 40)
		for i := range closes {
			closes[i] = 500
		}
		macd, sig := MACD(closes, 12, 26, 9)
		if !macd.Valid || !sig.Valid {
			t.Fatal("MACD should be defined with 40 bars")
		}
		if !almostEqual(macd.Float64, 0) || !almostEqual(sig.Float64, 0) {
			t.Errorf("flat MACD = %v / %v, want 0 / 0", macd.Float64, sig.Float64)
		}
	})

	t.Run("uptrend has positive MACD above signal", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100 + float64(i)*2
		}
		macd, sig := MACD(closes, 12, 26, 9)
		if !macd.Valid || macd.Float64 <= 0 {
			t.Errorf("uptrend MACD = %+v, want positive", macd)
		}
		if !sig.Valid || sig.Float64 <= 0 {
			t.Errorf("uptrend signal = %+v, want positive", sig)
		}
	})

	t.Run("too short is undefined", func(t *testing.T) {
		macd, sig := MACD(make([]float64, 20), 12, 26, 9)
		if macd.Valid || sig.Valid {
			t.Error("MACD with 20 bars should be undefined")
		}
	})
}

func TestBollinger(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 990
		} else {
			closes[i] = 1010
		}
	}

	t.Run("position at midline is 0.5", func(t *testing.T) {
		mid := SMA(closes, 20)
		_, _, pos := Bollinger(closes, 20, 2, mid.Float64)
		if !pos.Valid || !almostEqual(pos.Float64, 0.5) {
			t.Errorf("position at midline = %+v, want 0.5", pos)
		}
	})

	t.Run("bands straddle the mean", func(t *testing.T) {
		upper, lower, _ := Bollinger(closes, 20, 2, 1000)
		if !upper.Valid || !lower.Valid {
			t.Fatal("bands should be defined")
		}
		if upper.Float64 <= 1000 || lower.Float64 >= 1000 {
			t.Errorf("bands %v / %v do not straddle 1000", upper.Float64, lower.Float64)
		}
	})

	t.Run("zero variance has no position", func(t *testing.T) {
		flat := make([]float64, 20)
		for i := range flat {
			flat[i] = 700
		}
		upper, lower, pos := Bollinger(flat, 20, 2, 700)
		if pos.Valid {
			t.Error("position on zero-variance window should be undefined")
		}
		if !almostEqual(upper.Float64, 700) || !almostEqual(lower.Float64, 700) {
			t.Errorf("flat bands = %v / %v, want 700 / 700", upper.Float64, lower.Float64)
		}
	})
}

func TestATR(t *testing.T) {
	t.Run("flat series has zero range", func(t *testing.T) {
		got := ATR(flatSeries(20, 1000, 100), 14)
		if !got.Valid || !almostEqual(got.Float64, 0) {
			t.Errorf("flat ATR = %+v, want 0", got)
		}
	})

	t.Run("constant daily range", func(t *testing.T) {
		series := flatSeries(20, 1000, 100)
		for i := range series {
			series[i].High = 1010
			series[i].Low = 990
		}
		got := ATR(series, 14)
		if !got.Valid || !almostEqual(got.Float64, 20) {
			t.Errorf("ATR = %+v, want 20", got)
		}
	})

	t.Run("gap up uses previous close", func(t *testing.T) {
		series := flatSeries(16, 100, 10)
		last := &series[15]
		// Gap: prev close 100, bar trades 150-155
		last.Open, last.High, last.Low, last.Close = 150, 155, 150, 152
		got := ATR(series, 14)
		// 13 zero ranges + one TR of max(5, 55, 50) = 55
		want := 55.0 / 14.0
		if !got.Valid || !almostEqual(got.Float64, want) {
			t.Errorf("ATR = %+v, want %v", got, want)
		}
	})

	t.Run("too short is undefined", func(t *testing.T) {
		if got := ATR(flatSeries(14, 1000, 0), 14); got.Valid {
			t.Error("ATR with 14 bars should be undefined (needs prev close)")
		}
	})
}

func TestHistoricalVolatility(t *testing.T) {
	t.Run("flat series has zero volatility", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 1000
		}
		got := HistoricalVolatility(closes, 20)
		if !got.Valid || !almostEqual(got.Float64, 0) {
			t.Errorf("flat HV = %+v, want 0", got)
		}
	})

	t.Run("volatile series is positive", func(t *testing.T) {
		closes := []float64{100}
		for i := 0; i < 30; i++ {
			if i%2 == 0 {
				closes = append(closes, closes[len(closes)-1]*1.03)
			} else {
				closes = append(closes, closes[len(closes)-1]*0.97)
			}
		}
		got := HistoricalVolatility(closes, 20)
		if !got.Valid || got.Float64 <= 0 {
			t.Errorf("HV = %+v, want positive", got)
		}
	})

	t.Run("too short is undefined", func(t *testing.T) {
		if got := HistoricalVolatility(make([]float64, 20), 20); got.Valid {
			t.Error("HV with 20 closes should be undefined (needs 21)")
		}
	})
}

func TestVolumeRatio(t *testing.T) {
	tests := []struct {
		name    string
		volumes []int64
		want    float64
	}{
		{"constant volume", []int64{100, 100, 100, 100, 100}, 1.0},
		{"double the average", []int64{50, 50, 50, 50, 200}, 200.0 / 80.0},
		{"zero average defaults neutral", []int64{0, 0, 0, 0, 0}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := flatSeries(len(tt.volumes), 1000, 0)
			for i, v := range tt.volumes {
				series[i].Volume = v
			}
			got := VolumeRatio(series, len(tt.volumes))
			if !almostEqual(got, tt.want) {
				t.Errorf("VolumeRatio = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("short history defaults neutral", func(t *testing.T) {
		if got := VolumeRatio(flatSeries(10, 1000, 100), 25); got != 1.0 {
			t.Errorf("VolumeRatio on short series = %v, want 1.0", got)
		}
	})
}

func TestIchimoku(t *testing.T) {
	// Linear ramp: close i = 100+i, high = close+1, low = close-1
	series := make(contracts.PriceSeries, 90)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := range series {
		c := 100.0 + float64(i)
		series[i] = contracts.PriceBar{
			Date: day.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100,
		}
	}

	// tenkan: bars 81..89 → highs 182..190, lows 180..188 → (190+180)/2
	if got := Tenkan(series); !got.Valid || !almostEqual(got.Float64, 185) {
		t.Errorf("Tenkan = %+v, want 185", got)
	}

	// kijun: bars 64..89 → (190+163)/2
	if got := Kijun(series); !got.Valid || !almostEqual(got.Float64, 176.5) {
		t.Errorf("Kijun = %+v, want 176.5", got)
	}

	// senkouA shifted 26 back: tenkan(55..63)=159, kijun(38..63)=150.5
	if got := SenkouA(series); !got.Valid || !almostEqual(got.Float64, 154.75) {
		t.Errorf("SenkouA = %+v, want 154.75", got)
	}

	// senkouB shifted 26 back: 52-bar window 12..63 → (164+111)/2
	if got := SenkouB(series); !got.Valid || !almostEqual(got.Float64, 137.5) {
		t.Errorf("SenkouB = %+v, want 137.5", got)
	}

	// A > B in an uptrend, so the cloud top is span A
	set := Compute(series)
	if top := set.KumoTop(); !top.Valid || !almostEqual(top.Float64, 154.75) {
		t.Errorf("KumoTop = %+v, want 154.75", top)
	}
	if bottom := set.KumoBottom(); !bottom.Valid || !almostEqual(bottom.Float64, 137.5) {
		t.Errorf("KumoBottom = %+v, want 137.5", bottom)
	}
}

func TestIchimoku_ShortSeries(t *testing.T) {
	series := flatSeries(40, 1000, 100)

	if got := Tenkan(series); !got.Valid {
		t.Error("Tenkan should be defined with 40 bars")
	}
	// senkouB needs 52+26 bars
	if got := SenkouB(series); got.Valid {
		t.Error("SenkouB should be undefined with 40 bars")
	}
}

func TestDailyReturn(t *testing.T) {
	got := DailyReturn([]float64{100, 96})
	if !got.Valid || !almostEqual(got.Float64, -4.0) {
		t.Errorf("DailyReturn = %+v, want -4.0", got)
	}

	if got := DailyReturn([]float64{100}); got.Valid {
		t.Error("DailyReturn with one close should be undefined")
	}
}

func TestCompute_ShortSeriesDegradesToAbsence(t *testing.T) {
	set := Compute(flatSeries(10, 1000, 100))

	if set.MA25.Valid || set.MA75.Valid || set.RSI14.Valid || set.ATR14.Valid {
		t.Error("long-window indicators should be undefined with 10 bars")
	}
	if !set.MA5.Valid {
		t.Error("MA5 should be defined with 10 bars")
	}
	if set.VolumeRatio != 1.0 {
		t.Errorf("VolumeRatio = %v, want neutral 1.0", set.VolumeRatio)
	}
}

func TestMA25Slope(t *testing.T) {
	// Rising closes: MA25 today > MA25 five bars ago
	series := make(contracts.PriceSeries, 60)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := range series {
		c := 1000.0 + float64(i)*2
		series[i] = contracts.PriceBar{Date: day.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1}
	}

	set := Compute(series)
	slope := set.MA25Slope()
	if !slope.Valid || slope.Float64 <= 0 {
		t.Errorf("MA25Slope = %+v, want positive", slope)
	}

	// Flat series has zero slope, still defined
	set = Compute(flatSeries(60, 1000, 1))
	slope = set.MA25Slope()
	if !slope.Valid || !almostEqual(slope.Float64, 0) {
		t.Errorf("flat MA25Slope = %+v, want 0", slope)
	}
}

func TestValue(t *testing.T) {
	if got := Defined(3.5).Or(1); got != 3.5 {
		t.Errorf("Defined.Or = %v, want 3.5", got)
	}
	if got := Undefined().Or(1); got != 1 {
		t.Errorf("Undefined.Or = %v, want fallback 1", got)
	}
	if Undefined().GreaterThan(Defined(1)) || Defined(2).GreaterThan(Undefined()) {
		t.Error("comparisons with undefined must be false")
	}
	if !Defined(2).GreaterThan(Defined(1)) {
		t.Error("2 > 1 expected")
	}
}
