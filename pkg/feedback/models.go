package feedback

import (
	"context"
	"math"
	"sync"

	"github.com/pronas-suite/aicore/pkg/capability"
	"github.com/pronas-suite/aicore/pkg/domain"
	xe "github.com/pronas-suite/aicore/pkg/errors"
)

// defaultApprovalProbability is answered while no classifier has been
// fitted yet.
const defaultApprovalProbability = 0.75

const (
	fitLearningRate = 0.1
	fitEpochs       = 200
)

// Models holds the approval-probability classifier and the bias anomaly
// model, refitted by the retraining task.
//
// Zero value is "not loaded": the readiness check fails until Load runs.
// Safe for concurrent use; requests read under a shared lock while
// retraining swaps the fitted parameters under the exclusive one.
type Models struct {
	mu     sync.RWMutex
	loaded bool

	fitted  bool
	scale   scaler
	weights []float64
	offset  float64

	anomalyCenter    []float64
	anomalyThreshold float64
}

var _ capability.ReadinessChecker = &Models{}

func NewModels() *Models {
	return &Models{}
}

// Load marks the models servable. Persisted parameters would be read
// here; without any, the defaults answer until the first retrain.
func (m *Models) Load() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = true
}

// Ready fails while Load has not run.
func (m *Models) Ready(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return xe.Wrap(capability.ErrNotReady)
	}
	return nil
}

// ApprovalProbability scores how likely p is to be approved, from the
// fitted classifier, or the fixed default while unfitted.
func (m *Models) ApprovalProbability(p domain.ProjectStructure) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.fitted {
		return defaultApprovalProbability
	}

	z := m.offset
	for i, v := range m.scale.normalize(Extract(p)) {
		z += m.weights[i] * v
	}
	return 1 / (1 + math.Exp(-z))
}

// Anomalous reports whether p sits unusually far from the feedback the
// models were fitted on. Always false while unfitted.
func (m *Models) Anomalous(p domain.ProjectStructure) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.fitted {
		return false
	}
	return distance(m.scale.normalize(Extract(p)), m.anomalyCenter) > m.anomalyThreshold
}

// Fit refits both models from feature samples and their approval
// outcomes. The previous parameters stay in place when samples is empty.
func (m *Models) Fit(samples [][]float64, approved []bool) error {
	if len(samples) == 0 {
		return xe.New("no trainable samples")
	}
	if len(samples) != len(approved) {
		return xe.New("samples and outcomes differ in length")
	}

	scale := fitScaler(samples)
	normalized := make([][]float64, len(samples))
	for i, sample := range samples {
		normalized[i] = scale.normalize(sample)
	}

	weights, offset := fitLogistic(normalized, approved)
	center, threshold := fitAnomaly(normalized)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.scale = scale
	m.weights = weights
	m.offset = offset
	m.anomalyCenter = center
	m.anomalyThreshold = threshold
	m.fitted = true
	return nil
}

// fitLogistic runs plain batch gradient descent for a logistic
// regression over normalized samples.
func fitLogistic(samples [][]float64, approved []bool) ([]float64, float64) {
	weights := make([]float64, FeatureCount)
	offset := 0.0
	n := float64(len(samples))

	for epoch := 0; epoch < fitEpochs; epoch++ {
		gradW := make([]float64, FeatureCount)
		gradB := 0.0

		for i, sample := range samples {
			z := offset
			for j, v := range sample {
				z += weights[j] * v
			}
			predicted := 1 / (1 + math.Exp(-z))

			target := 0.0
			if approved[i] {
				target = 1.0
			}
			residual := predicted - target

			for j, v := range sample {
				gradW[j] += residual * v
			}
			gradB += residual
		}

		for j := range weights {
			weights[j] -= fitLearningRate * gradW[j] / n
		}
		offset -= fitLearningRate * gradB / n
	}

	return weights, offset
}

// fitAnomaly centers on the sample mean; the threshold is the mean
// distance plus two standard deviations.
func fitAnomaly(samples [][]float64) ([]float64, float64) {
	center := make([]float64, FeatureCount)
	for _, sample := range samples {
		for i, v := range sample {
			center[i] += v
		}
	}
	n := float64(len(samples))
	for i := range center {
		center[i] /= n
	}

	meanDist := 0.0
	distances := make([]float64, len(samples))
	for i, sample := range samples {
		distances[i] = distance(sample, center)
		meanDist += distances[i]
	}
	meanDist /= n

	variance := 0.0
	for _, d := range distances {
		variance += (d - meanDist) * (d - meanDist)
	}
	deviation := math.Sqrt(variance / n)

	return center, meanDist + 2*deviation
}

func distance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
