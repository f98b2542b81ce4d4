package indicator

import (
	"math"

	"github.com/moriq/kabuscan/internal/contracts"
)

// annualization factor: 250営業日
const tradingDaysPerYear = 250

// ATR computes the average true range over the last `period` bars as a
// simple rolling mean. Each true range uses the previous close, so
// period+1 bars are required.
func ATR(series contracts.PriceSeries, period int) Value {
	if period <= 0 || len(series) < period+1 {
		return Undefined()
	}

	var sum float64
	start := len(series) - period
	for i := start; i < len(series); i++ {
		bar := series[i]
		prevClose := series[i-1].Close

		tr := bar.High - bar.Low
		if hc := math.Abs(bar.High - prevClose); hc > tr {
			tr = hc
		}
		if lc := math.Abs(bar.Low - prevClose); lc > tr {
			tr = lc
		}
		sum += tr
	}

	return Defined(sum / float64(period))
}

// HistoricalVolatility computes the annualized standard deviation of
// log returns over the last `window` returns, as a percentage.
func HistoricalVolatility(closes []float64, window int) Value {
	if window < 2 || len(closes) < window+1 {
		return Undefined()
	}

	returns := make([]float64, 0, window)
	start := len(closes) - window
	for i := start; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return Undefined()
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}

	std := rollingStd(returns, window)
	if !std.Valid {
		return Undefined()
	}

	return Defined(std.Float64 * math.Sqrt(tradingDaysPerYear) * 100)
}

// VolumeRatio is the latest volume over the 25-bar average volume
// (current bar included). Defined as 1.0 when the average is zero or the
// history is too short, per the neutral-volume convention.
func VolumeRatio(series contracts.PriceSeries, window int) float64 {
	if len(series) == 0 || window <= 0 || len(series) < window {
		return 1.0
	}

	var sum int64
	for _, b := range series[len(series)-window:] {
		sum += b.Volume
	}
	avg := float64(sum) / float64(window)
	if avg <= 0 {
		return 1.0
	}

	return float64(series[len(series)-1].Volume) / avg
}

// DailyReturn is the latest close-over-close return in percent
func DailyReturn(closes []float64) Value {
	if len(closes) < 2 {
		return Undefined()
	}
	prev := closes[len(closes)-2]
	if prev == 0 {
		return Undefined()
	}
	return Defined((closes[len(closes)-1] - prev) / prev * 100)
}
