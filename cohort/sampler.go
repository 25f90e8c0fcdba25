package cohort

import (
	"math/rand"

	"github.com/bitmark-inc/synthetic-panel/schema"
)

// weightedChoice draws one value of d. d must have been validated.
func weightedChoice(rng *rand.Rand, d schema.Distribution) string {
	u := rng.Float64()

	var cumulative float64
	for _, c := range d {
		cumulative += c.Weight
		if u < cumulative {
			return c.Value
		}
	}

	// rounding can leave u just above the last cumulative weight
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Weight > 0 {
			return d[i].Value
		}
	}
	return d[len(d)-1].Value
}
