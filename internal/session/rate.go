package session

// Rates is the fixed ordered set of playback rates. Cycling moves
// forward through the set and wraps to the first.
var Rates = []float64{1, 1.25, 1.5, 2}

// NextRate returns the rate following r in the cycle. An unrecognized
// rate resets to the first.
func NextRate(r float64) float64 {
	for i, rate := range Rates {
		if rate == r {
			return Rates[(i+1)%len(Rates)]
		}
	}
	return Rates[0]
}
