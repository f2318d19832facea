package bias

import (
	kbias "github.com/pronas-suite/aicore/pkg/bias"
	"github.com/pronas-suite/aicore/pkg/utils/slices"
)

type Pattern struct {
	Type        string  `json:"type"`
	Detected    bool    `json:"detected"`
	Score       float64 `json:"score"`
	Description string  `json:"description,omitempty"`
}

type FairnessMetrics struct {
	DemographicParity float64 `json:"demographic_parity"`
	EqualOpportunity  float64 `json:"equal_opportunity"`
	DisparateImpact   float64 `json:"disparate_impact"`
}

type Report struct {
	BiasDetected    bool            `json:"bias_detected"`
	BiasScore       float64         `json:"bias_score"`
	Patterns        []Pattern       `json:"patterns"`
	Recommendations []string        `json:"recommendations"`
	FairnessMetrics FairnessMetrics `json:"fairness_metrics"`
}

// DetectRequest is the raw field view of a project to be analyzed.
type DetectRequest struct {
	InstitutionType    string  `json:"institution_type,omitempty"`
	Region             string  `json:"region,omitempty"`
	SpecificObjectives int     `json:"specific_objectives,omitempty"`
	BudgetTotal        float64 `json:"budget_total,omitempty"`
	TimelineEntries    int     `json:"timeline_entries,omitempty"`
	TeamSize           int     `json:"team_size,omitempty"`
}

func (r DetectRequest) Subject() kbias.Subject {
	return kbias.Subject{
		InstitutionType:    r.InstitutionType,
		Region:             r.Region,
		SpecificObjectives: r.SpecificObjectives,
		BudgetTotal:        r.BudgetTotal,
		TimelineEntries:    r.TimelineEntries,
		TeamSize:           r.TeamSize,
	}
}

func ComposeReport(report kbias.Report) Report {
	return Report{
		BiasDetected: report.BiasDetected,
		BiasScore:    report.BiasScore,
		Patterns: slices.Map(report.Patterns, func(p kbias.Pattern) Pattern {
			return Pattern{
				Type:        p.Type.String(),
				Detected:    p.Detected,
				Score:       p.Score,
				Description: p.Description,
			}
		}),
		Recommendations: report.Recommendations,
		FairnessMetrics: FairnessMetrics{
			DemographicParity: report.Fairness.DemographicParity,
			EqualOpportunity:  report.Fairness.EqualOpportunity,
			DisparateImpact:   report.Fairness.DisparateImpact,
		},
	}
}
