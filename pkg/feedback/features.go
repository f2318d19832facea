package feedback

import (
	"math"

	"github.com/pronas-suite/aicore/pkg/domain"
)

// FeatureCount is the length of the vector Extract yields.
const FeatureCount = 6

var typeEncoding = map[domain.ProjectType]float64{
	domain.ProjectResearch:    0,
	domain.ProjectDevelopment: 1,
	domain.ProjectTraining:    2,
}

// Extract maps a project structure onto the fixed feature vector the
// scoring models consume: justification length, specific objective
// count, budget total, timeline and team sizes, and a categorical
// encoding of the project type.
func Extract(p domain.ProjectStructure) []float64 {
	encoded, ok := typeEncoding[p.Type]
	if !ok {
		encoded = typeEncoding[domain.ProjectDevelopment]
	}

	return []float64{
		float64(len(p.Justification)),
		float64(len(p.Objectives.Specific)),
		p.Budget.Total,
		float64(len(p.Timeline)),
		float64(len(p.Team)),
		encoded,
	}
}

// scaler normalizes features to zero mean and unit variance, fitted on
// a training sample.
type scaler struct {
	mean []float64
	std  []float64
}

func fitScaler(samples [][]float64) scaler {
	mean := make([]float64, FeatureCount)
	std := make([]float64, FeatureCount)

	for _, sample := range samples {
		for i, v := range sample {
			mean[i] += v
		}
	}
	n := float64(len(samples))
	for i := range mean {
		mean[i] /= n
	}

	for _, sample := range samples {
		for i, v := range sample {
			d := v - mean[i]
			std[i] += d * d
		}
	}
	for i := range std {
		std[i] = math.Sqrt(std[i] / n)
	}

	return scaler{mean: mean, std: std}
}

func (s scaler) normalize(sample []float64) []float64 {
	normalized := make([]float64, len(sample))
	for i, v := range sample {
		if s.std[i] == 0 {
			normalized[i] = 0
			continue
		}
		normalized[i] = (v - s.mean[i]) / s.std[i]
	}
	return normalized
}
