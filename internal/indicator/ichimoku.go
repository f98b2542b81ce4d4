package indicator

import "github.com/moriq/kabuscan/internal/contracts"

// Ichimoku lookback windows (一目均衡表 9, 26, 52)
const (
	tenkanWindow  = 9
	kijunWindow   = 26
	senkouBWindow = 52
	cloudShift    = 26
)

// Tenkan is the conversion line: midpoint of the 9-bar high/low range
func Tenkan(series contracts.PriceSeries) Value {
	return midpointAt(series, tenkanWindow, 0)
}

// Kijun is the base line: midpoint of the 26-bar high/low range
func Kijun(series contracts.PriceSeries) Value {
	return midpointAt(series, kijunWindow, 0)
}

// SenkouA is leading span A as already shifted to today: the tenkan/kijun
// midpoint computed 26 bars back.
func SenkouA(series contracts.PriceSeries) Value {
	tenkan := midpointAt(series, tenkanWindow, cloudShift)
	kijun := midpointAt(series, kijunWindow, cloudShift)
	if !tenkan.Valid || !kijun.Valid {
		return Undefined()
	}
	return Defined((tenkan.Float64 + kijun.Float64) / 2)
}

// SenkouB is leading span B as already shifted to today: the 52-bar
// high/low midpoint computed 26 bars back.
func SenkouB(series contracts.PriceSeries) Value {
	return midpointAt(series, senkouBWindow, cloudShift)
}

// midpointAt returns (max(high)+min(low))/2 over the `window` bars ending
// `back` bars before the latest one
func midpointAt(series contracts.PriceSeries, window, back int) Value {
	if len(series) < window+back {
		return Undefined()
	}

	end := len(series) - back
	bars := series[end-window : end]

	high := bars[0].High
	low := bars[0].Low
	for _, b := range bars[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return Defined((high + low) / 2)
}
