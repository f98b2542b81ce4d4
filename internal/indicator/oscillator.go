package indicator

// RSI computes the relative strength index over the last `period` one-bar
// differences, using simple rolling means of gains and losses (not the
// exponential Wilder smoothing). Saturates at 100 when the average loss is
// zero. A dead-flat window (no gains and no losses) is undefined rather
// than 100: there is no strength to measure.
func RSI(closes []float64, period int) Value {
	if period <= 0 || len(closes) < period+1 {
		return Undefined()
	}

	var gains, losses float64
	start := len(closes) - period
	for i := start; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	if gains == 0 && losses == 0 {
		return Undefined()
	}
	if losses == 0 {
		return Defined(100.0)
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	rs := avgGain / avgLoss
	return Defined(100.0 - 100.0/(1.0+rs))
}

// MACD computes the MACD line (EMA12 − EMA26) and its 9-period EMA signal
// line, both at the latest bar. Requires at least `slow` bars so the
// smoothing has settled past its seed.
func MACD(closes []float64, fast, slow, signal int) (macd, sig Value) {
	if len(closes) < slow {
		return Undefined(), Undefined()
	}

	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}

	signalLine := EMA(line, signal)
	return Defined(line[len(line)-1]), Defined(signalLine[len(signalLine)-1])
}
