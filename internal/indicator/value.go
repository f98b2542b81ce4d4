package indicator

// Value is an indicator result that may be undefined. Indicators whose
// lookback window exceeds the available history are undefined, and
// downstream scoring treats them as absent rather than zero.
type Value struct {
	Float64 float64 `json:"value"`
	Valid   bool    `json:"valid"`
}

// Defined wraps a computed value
func Defined(v float64) Value {
	return Value{Float64: v, Valid: true}
}

// Undefined is the absent value
func Undefined() Value {
	return Value{}
}

// Or returns the value, or fallback when undefined
func (v Value) Or(fallback float64) float64 {
	if !v.Valid {
		return fallback
	}
	return v.Float64
}

// GreaterThan reports v > other; false when either side is undefined
func (v Value) GreaterThan(other Value) bool {
	return v.Valid && other.Valid && v.Float64 > other.Float64
}
