package indicator

import "math"

// Bollinger computes the 20-bar, 2σ Bollinger Bands at the latest bar and
// the band position of `price`: 0 at the lower band, 1 at the upper band.
// The position may leave [0,1] when price breaks out of the bands.
func Bollinger(closes []float64, window int, sigma float64, price float64) (upper, lower, position Value) {
	mid := SMA(closes, window)
	std := rollingStd(closes, window)
	if !mid.Valid || !std.Valid {
		return Undefined(), Undefined(), Undefined()
	}

	up := mid.Float64 + sigma*std.Float64
	lo := mid.Float64 - sigma*std.Float64

	width := up - lo
	if width <= 0 {
		// Zero-variance window has no band to position against
		return Defined(up), Defined(lo), Undefined()
	}

	return Defined(up), Defined(lo), Defined((price - lo) / width)
}

// rollingStd is the sample standard deviation of the last `window` values
func rollingStd(values []float64, window int) Value {
	if window < 2 || len(values) < window {
		return Undefined()
	}

	tail := values[len(values)-window:]
	var sum float64
	for _, v := range tail {
		sum += v
	}
	mean := sum / float64(window)

	var sq float64
	for _, v := range tail {
		d := v - mean
		sq += d * d
	}
	return Defined(math.Sqrt(sq / float64(window-1)))
}
