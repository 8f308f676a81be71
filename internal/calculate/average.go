package calculate

// Average calculates simple average
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, value := range values {
		sum += value
	}

	return sum / float64(len(values))
}

// SMA returns the trailing mean for every element. Until a full window is available
// the mean of the values seen so far is used.
func SMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		size := i + 1
		if size > window {
			size = window
		}
		out[i] = sum / float64(size)
	}
	return out
}

// SMALast is the mean of the trailing window, or of all values when fewer exist
func SMALast(values []float64, window int) float64 {
	if window <= 0 || len(values) == 0 {
		return 0
	}
	if len(values) > window {
		values = values[len(values)-window:]
	}
	return Average(values)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
