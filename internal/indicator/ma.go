package indicator

// SMA returns the simple moving average of the last `window` values.
// Undefined when fewer than `window` values exist.
func SMA(values []float64, window int) Value {
	return SMAAt(values, window, 0)
}

// SMAAt returns the SMA of the `window` values ending `back` bars before
// the most recent one. SMAAt(v, 25, 5) is the MA25 as of five bars ago,
// used for the MA25 slope.
func SMAAt(values []float64, window, back int) Value {
	if window <= 0 || len(values) < window+back {
		return Undefined()
	}

	end := len(values) - back
	var sum float64
	for _, v := range values[end-window : end] {
		sum += v
	}
	return Defined(sum / float64(window))
}

// EMA returns the exponential moving average series with α = 2/(N+1),
// seeded at the first value. The caller reads the last element for the
// latest EMA; the full series is needed to derive the MACD signal line.
func EMA(values []float64, period int) []float64 {
	if len(values) == 0 || period <= 0 {
		return nil
	}

	alpha := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}
