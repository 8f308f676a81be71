package calculate

// RSISeries computes Wilder's RSI for every close. The first window changes seed the
// average gain and loss with a simple mean, after which each average is smoothed as
// avg = (avg*(window-1) + change) / window. Elements without enough history read 50.
func RSISeries(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = 50
	}
	if window <= 0 || len(closes) < window+1 {
		return out
	}

	var gains, losses float64
	for i := 1; i <= window; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(window)
	avgLoss := losses / float64(window)
	out[window] = rsiFromAverages(avgGain, avgLoss)

	for i := window + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return out
}

// RSI returns the latest RSI value, 50 on insufficient history
func RSI(closes []float64, window int) float64 {
	series := RSISeries(closes, window)
	if len(series) == 0 {
		return 50
	}
	return series[len(series)-1]
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			// flat series
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return clamp(100-(100/(1+rs)), 0, 100)
}
