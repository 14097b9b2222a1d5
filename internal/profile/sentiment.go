package profile

// Aggregator folds per-token sentiment signals into a single scalar.
// Tokens with no usable signal are excluded before the aggregator runs.
type Aggregator func(signals []float64) float64

// SumNonZero is the canonical aggregation: the sum of all non-zero signals.
// Zero-valued signals are skipped so they do not dilute the aggregate.
func SumNonZero(signals []float64) float64 {
	var total float64
	for _, s := range signals {
		if s != 0 {
			total += s
		}
	}
	return total
}

// MeanNonZero averages the non-zero signals. Returns 0 when no signal survives.
func MeanNonZero(signals []float64) float64 {
	var total float64
	var n int
	for _, s := range signals {
		if s != 0 {
			total += s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
