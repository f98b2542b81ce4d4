// Package indicator provides the pure technical-indicator computations the
// scoring engine and strategy deriver are built on. All functions operate on
// an already-fetched price series and perform no I/O; indicators whose
// lookback exceeds the available history come back undefined instead of a
// fabricated zero.
package indicator

import "github.com/moriq/kabuscan/internal/contracts"

// Standard lookback windows, matching the daily-chart convention of
// Japanese retail trading (5日/25日/75日線).
const (
	MAShortWindow  = 5
	MAMidWindow    = 25
	MALongWindow   = 75
	SlopeLookback  = 5
	RSIPeriod      = 14
	ATRPeriod      = 14
	BollingerWin   = 20
	BollingerSigma = 2.0
	MACDFast       = 12
	MACDSlow       = 26
	MACDSignalWin  = 9
	VolumeWindow   = 25
	HVWindow       = 20
)

// Set is the immutable bundle of indicator values computed once per
// (ticker, series) pair.
type Set struct {
	MA5      Value `json:"ma5"`
	MA25     Value `json:"ma25"`
	MA75     Value `json:"ma75"`
	MA25Prev Value `json:"ma25_prev"` // MA25 as of 5 bars ago

	ATR14      Value `json:"atr14"`
	MACD       Value `json:"macd"`
	MACDSignal Value `json:"macd_signal"`

	BBUpper    Value `json:"bb_upper"`
	BBLower    Value `json:"bb_lower"`
	BBPosition Value `json:"bb_position"` // 0=lower band, 1=upper band

	Tenkan  Value `json:"tenkan"`
	Kijun   Value `json:"kijun"`
	SenkouA Value `json:"senkou_a"` // already shifted to today
	SenkouB Value `json:"senkou_b"`

	RSI14       Value   `json:"rsi14"`
	VolumeRatio float64 `json:"volume_ratio"` // always defined, 1.0 neutral
	HV20        Value   `json:"hv20"`
	DailyReturn Value   `json:"daily_return"` // percent, close over close
}

// Compute derives the full indicator set from a price series
func Compute(series contracts.PriceSeries) Set {
	closes := series.Closes()

	var price float64
	if len(closes) > 0 {
		price = closes[len(closes)-1]
	}

	set := Set{
		MA5:         SMA(closes, MAShortWindow),
		MA25:        SMA(closes, MAMidWindow),
		MA75:        SMA(closes, MALongWindow),
		MA25Prev:    SMAAt(closes, MAMidWindow, SlopeLookback),
		ATR14:       ATR(series, ATRPeriod),
		Tenkan:      Tenkan(series),
		Kijun:       Kijun(series),
		SenkouA:     SenkouA(series),
		SenkouB:     SenkouB(series),
		RSI14:       RSI(closes, RSIPeriod),
		VolumeRatio: VolumeRatio(series, VolumeWindow),
		HV20:        HistoricalVolatility(closes, HVWindow),
		DailyReturn: DailyReturn(closes),
	}

	set.MACD, set.MACDSignal = MACD(closes, MACDFast, MACDSlow, MACDSignalWin)
	set.BBUpper, set.BBLower, set.BBPosition = Bollinger(closes, BollingerWin, BollingerSigma, price)

	return set
}

// KumoTop is the upper edge of the cloud: max(senkouA, senkouB)
func (s Set) KumoTop() Value {
	if !s.SenkouA.Valid || !s.SenkouB.Valid {
		return Undefined()
	}
	if s.SenkouA.Float64 >= s.SenkouB.Float64 {
		return s.SenkouA
	}
	return s.SenkouB
}

// KumoBottom is the lower edge of the cloud: min(senkouA, senkouB)
func (s Set) KumoBottom() Value {
	if !s.SenkouA.Valid || !s.SenkouB.Valid {
		return Undefined()
	}
	if s.SenkouA.Float64 <= s.SenkouB.Float64 {
		return s.SenkouA
	}
	return s.SenkouB
}

// MA25Slope is the 5-bar MA25 slope in percent, undefined without history
func (s Set) MA25Slope() Value {
	if !s.MA25.Valid || !s.MA25Prev.Valid || s.MA25Prev.Float64 == 0 {
		return Undefined()
	}
	return Defined((s.MA25.Float64 - s.MA25Prev.Float64) / s.MA25Prev.Float64 * 100)
}
