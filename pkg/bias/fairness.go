package bias

import (
	"math/rand"
	"sync"
)

// defaultFairnessSource draws placeholder samples from fixed ranges.
//
// demographic parity in [0.7, 0.9), equal opportunity in [0.75, 0.95),
// disparate impact in [0.8, 1.2). These ranges are the stand-in contract
// until a real computation over approval outcome data exists.
type defaultFairnessSource struct{}

var fairnessRand = struct {
	sync.Mutex
	*rand.Rand
}{Rand: rand.New(rand.NewSource(rand.Int63()))}

func (defaultFairnessSource) Sample() Fairness {
	fairnessRand.Lock()
	defer fairnessRand.Unlock()

	uniform := func(lo, hi float64) float64 {
		return lo + (hi-lo)*fairnessRand.Float64()
	}
	return Fairness{
		DemographicParity: uniform(0.70, 0.90),
		EqualOpportunity:  uniform(0.75, 0.95),
		DisparateImpact:   uniform(0.80, 1.20),
	}
}

// FixedFairness always returns the same sample. For tests and for
// deployments preferring stable placeholder values.
type FixedFairness Fairness

func (f FixedFairness) Sample() Fairness {
	return Fairness(f)
}
