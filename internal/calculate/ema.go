package calculate

// EMA computes an exponentially weighted mean with alpha = 2/(span+1).
//
// Weights are renormalised over the observed history instead of seeding with an SMA:
// y[t] = sum((1-a)^i * x[t-i]) / sum((1-a)^i), so y[0] = x[0] and early values are
// not biased towards the seed.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	if span < 1 {
		span = 1
	}

	alpha := 2.0 / float64(span+1)
	decay := 1 - alpha
	var num, den float64
	for i, v := range values {
		num = v + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}
	return out
}
