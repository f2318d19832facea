// Package projects has the wire representation of synthesized project
// structures and of the generation/suggestion/validation operations.
package projects

import (
	"encoding/json"
	"time"

	apibias "github.com/pronas-suite/aicore/pkg/api/types/bias"
	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/utils/slices"
)

// SeedData is user-provided seed input for synthesis.
//
// Optional fields are pointers or empty strings; "key absent" and "empty"
// are treated the same.
type SeedData struct {
	Title         string   `json:"title,omitempty"`
	Budget        *float64 `json:"budget,omitempty"`
	MainObjective string   `json:"main_objective,omitempty"`
	Context       string   `json:"context,omitempty"`
	Foundation    string   `json:"foundation,omitempty"`
	Impacts       string   `json:"impacts,omitempty"`
	Beneficiaries string   `json:"beneficiaries,omitempty"`
}

type GenerateRequest struct {
	InstitutionId   string   `json:"institution_id"`
	InstitutionType string   `json:"institution_type,omitempty"`
	Region          string   `json:"region,omitempty"`
	ProjectType     string   `json:"project_type"`
	Documents       []string `json:"documents,omitempty"`
	Guidelines      []string `json:"guidelines,omitempty"`
	SeedData        SeedData `json:"seed_data"`
}

type Objectives struct {
	General  string   `json:"general"`
	Specific []string `json:"specific"`
}

type Methodology struct {
	Approach   string   `json:"approach"`
	Phases     []string `json:"phases"`
	Techniques []string `json:"techniques"`
}

type BudgetItem struct {
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

type Budget struct {
	Total        float64                 `json:"total"`
	Distribution map[string]float64      `json:"distribution"`
	Items        map[string][]BudgetItem `json:"items"`
	Currency     string                  `json:"currency"`
}

type TimelinePhase struct {
	Phase        string   `json:"phase"`
	StartMonth   int      `json:"start_month"`
	EndMonth     int      `json:"end_month"`
	Deliverables []string `json:"deliverables"`
}

type TeamMember struct {
	Role           string `json:"role"`
	Quantity       int    `json:"quantity"`
	HoursPerWeek   int    `json:"hours_per_week"`
	Qualifications string `json:"qualifications"`
}

type Resources struct {
	Infrastructure []string `json:"infrastructure"`
	Technology     []string `json:"technology"`
	Partnerships   []string `json:"partnerships"`
}

type EvaluationMetric struct {
	Indicator   string  `json:"indicator"`
	Target      float64 `json:"target"`
	Measurement string  `json:"measurement"`
	Frequency   string  `json:"frequency"`
}

type Sustainability struct {
	Financial     []string `json:"financial"`
	Institutional []string `json:"institutional"`
	Social        []string `json:"social"`
}

type Risk struct {
	Risk        string `json:"risk"`
	Probability string `json:"probability"`
	Impact      string `json:"impact"`
	Mitigation  string `json:"mitigation"`
}

// Detail is the wire representation of a synthesized project structure.
type Detail struct {
	Id                string             `json:"id"`
	InstitutionId     string             `json:"institution_id"`
	Type              string             `json:"type"`
	Title             string             `json:"title"`
	Justification     string             `json:"justification"`
	Objectives        Objectives         `json:"objectives"`
	Methodology       Methodology        `json:"methodology"`
	Budget            Budget             `json:"budget"`
	Timeline          []TimelinePhase    `json:"timeline"`
	Team              []TeamMember       `json:"team"`
	Resources         Resources          `json:"resources"`
	ExpectedResults   []string           `json:"expected_results"`
	EvaluationMetrics []EvaluationMetric `json:"evaluation_metrics"`
	Sustainability    Sustainability     `json:"sustainability"`
	Risks             []Risk             `json:"risks"`
	QualityScore      float64            `json:"quality_score"`
	Confidence        float64            `json:"confidence"`
	GeneratedAt       time.Time          `json:"generated_at"`
}

func ComposeDetail(p domain.ProjectStructure) Detail {
	distribution := map[string]float64{}
	for category, value := range p.Budget.Distribution {
		distribution[category.String()] = value
	}
	items := map[string][]BudgetItem{}
	for category, categoryItems := range p.Budget.Items {
		items[category.String()] = slices.Map(
			categoryItems,
			func(i domain.BudgetItem) BudgetItem {
				return BudgetItem{Description: i.Description, Value: i.Value}
			},
		)
	}

	return Detail{
		Id:            p.Id,
		InstitutionId: p.InstitutionId,
		Type:          p.Type.String(),
		Title:         p.Title,
		Justification: p.Justification,
		Objectives: Objectives{
			General:  p.Objectives.General,
			Specific: p.Objectives.Specific,
		},
		Methodology: Methodology{
			Approach:   p.Methodology.Approach,
			Phases:     p.Methodology.Phases,
			Techniques: p.Methodology.Techniques,
		},
		Budget: Budget{
			Total:        p.Budget.Total,
			Distribution: distribution,
			Items:        items,
			Currency:     p.Budget.Currency,
		},
		Timeline: slices.Map(p.Timeline, func(t domain.TimelinePhase) TimelinePhase {
			return TimelinePhase{
				Phase:        t.Phase,
				StartMonth:   t.StartMonth,
				EndMonth:     t.EndMonth,
				Deliverables: t.Deliverables,
			}
		}),
		Team: slices.Map(p.Team, func(m domain.TeamMember) TeamMember {
			return TeamMember{
				Role:           m.Role,
				Quantity:       m.Quantity,
				HoursPerWeek:   m.HoursPerWeek,
				Qualifications: m.Qualifications,
			}
		}),
		Resources: Resources{
			Infrastructure: p.Resources.Infrastructure,
			Technology:     p.Resources.Technology,
			Partnerships:   p.Resources.Partnerships,
		},
		ExpectedResults: p.ExpectedResults,
		EvaluationMetrics: slices.Map(
			p.EvaluationMetrics,
			func(m domain.EvaluationMetric) EvaluationMetric {
				return EvaluationMetric{
					Indicator:   m.Indicator,
					Target:      m.Target,
					Measurement: m.Measurement,
					Frequency:   m.Frequency,
				}
			},
		),
		Sustainability: Sustainability{
			Financial:     p.Sustainability.Financial,
			Institutional: p.Sustainability.Institutional,
			Social:        p.Sustainability.Social,
		},
		Risks: slices.Map(p.Risks, func(r domain.Risk) Risk {
			return Risk{
				Risk:        r.Risk,
				Probability: r.Probability,
				Impact:      r.Impact,
				Mitigation:  r.Mitigation,
			}
		}),
		QualityScore: p.QualityScore,
		Confidence:   p.Confidence,
		GeneratedAt:  p.GeneratedAt,
	}
}

type GenerateResponse struct {
	ProjectId  string            `json:"project_id"`
	Structure  Detail            `json:"structure"`
	BiasReport apibias.Report    `json:"bias_report"`
	Artifacts  map[string]string `json:"artifacts,omitempty"`
	Confidence float64           `json:"confidence"`
}

type Suggestion struct {
	Field          string   `json:"field"`
	CurrentValue   string   `json:"current_value"`
	SuggestedValue string   `json:"suggested_value"`
	Confidence     float64  `json:"confidence"`
	Reasoning      string   `json:"reasoning"`
	ChangesMade    []string `json:"changes_made,omitempty"`
}

type SuggestRequest struct {
	ProjectId     string            `json:"project_id"`
	CurrentFields map[string]string `json:"current_fields"`
}

type SuggestResponse struct {
	Suggestions         []Suggestion `json:"suggestions"`
	ApprovalProbability float64      `json:"approval_probability"`
	SimilarCount        int          `json:"similar_count"`
}

type ValidateRequest struct {
	ProjectId string            `json:"project_id"`
	Fields    map[string]string `json:"fields"`
}

type Issue struct {
	Section string `json:"section"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ValidateResponse struct {
	Compliant       bool    `json:"compliant"`
	Score           float64 `json:"score"`
	Issues          []Issue `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

type FeedbackRequest struct {
	ProjectId    string          `json:"project_id"`
	FeedbackType string          `json:"feedback_type"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

type FeedbackResponse struct {
	Accepted            bool `json:"accepted"`
	PendingCount        int  `json:"pending_count"`
	RetrainingScheduled bool `json:"retraining_scheduled"`
}

type ExtractRequest struct {
	Document string `json:"document"`
}

type ExtractTable struct {
	Name string     `json:"name,omitempty"`
	Rows [][]string `json:"rows"`
}

type ExtractResponse struct {
	Text   string         `json:"text"`
	Tables []ExtractTable `json:"tables,omitempty"`
}
