package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrUnknownProjectType = errors.New("unknown project type")

type ProjectType string

var (
	ProjectResearch    ProjectType = "research"
	ProjectDevelopment ProjectType = "development"
	ProjectTraining    ProjectType = "training"
)

func (p ProjectType) String() string {
	return string(p)
}

// AsProjectType validates s as a known project type.
//
// Unknown values are returned as-is with ErrUnknownProjectType so callers
// can decide between rejecting and falling back to a default.
func AsProjectType(s string) (ProjectType, error) {
	switch ProjectType(s) {
	case ProjectResearch:
		return ProjectResearch, nil
	case ProjectDevelopment:
		return ProjectDevelopment, nil
	case ProjectTraining:
		return ProjectTraining, nil
	default:
		return ProjectType(s), fmt.Errorf("%w: %s", ErrUnknownProjectType, s)
	}
}

type BudgetCategory string

var (
	BudgetHumanResources BudgetCategory = "human_resources"
	BudgetEquipment      BudgetCategory = "equipment"
	BudgetMaterials      BudgetCategory = "materials"
	BudgetServices       BudgetCategory = "services"
	BudgetIndirectCosts  BudgetCategory = "indirect_costs"
)

func (b BudgetCategory) String() string {
	return string(b)
}

type BudgetItem struct {
	Description string
	Value       float64
}

type Budget struct {
	Total        float64
	Distribution map[BudgetCategory]float64
	Items        map[BudgetCategory][]BudgetItem
	Currency     string
}

// Consistent checks that the distribution sums to Total and that itemized
// values sum to their category's distribution share, both within relative
// tolerance tol.
func (b Budget) Consistent(tol float64) error {
	var distributed float64
	for _, v := range b.Distribution {
		distributed += v
	}
	if !withinTolerance(distributed, b.Total, tol) {
		return fmt.Errorf(
			"budget distribution (%f) does not sum to total (%f)",
			distributed, b.Total,
		)
	}

	for category, items := range b.Items {
		var itemized float64
		for _, item := range items {
			itemized += item.Value
		}
		if !withinTolerance(itemized, b.Distribution[category], tol) {
			return fmt.Errorf(
				"items of %s (%f) do not sum to its distribution share (%f)",
				category, itemized, b.Distribution[category],
			)
		}
	}
	return nil
}

func withinTolerance(a, b, tol float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return true
	}
	return math.Abs(a-b) <= tol*scale
}

type ProjectObjectives struct {
	General  string
	Specific []string
}

type Methodology struct {
	Approach   string
	Phases     []string
	Techniques []string
}

type TimelinePhase struct {
	Phase        string
	StartMonth   int
	EndMonth     int
	Deliverables []string
}

type TeamMember struct {
	Role           string
	Quantity       int
	HoursPerWeek   int
	Qualifications string
}

type Resources struct {
	Infrastructure []string
	Technology     []string
	Partnerships   []string
}

type EvaluationMetric struct {
	Indicator   string
	Target      float64
	Measurement string
	Frequency   string
}

type Sustainability struct {
	Financial     []string
	Institutional []string
	Social        []string
}

type Risk struct {
	Risk        string
	Probability string
	Impact      string
	Mitigation  string
}

// ProjectStructure is the complete synthesized proposal record.
//
// Created once per generation request by the synthesizer. QualityScore and
// Confidence are in [0, 1].
type ProjectStructure struct {
	Id            string
	InstitutionId string
	Type          ProjectType

	Title             string
	Justification     string
	Objectives        ProjectObjectives
	Methodology       Methodology
	Budget            Budget
	Timeline          []TimelinePhase
	Team              []TeamMember
	Resources         Resources
	ExpectedResults   []string
	EvaluationMetrics []EvaluationMetric
	Sustainability    Sustainability
	Risks             []Risk

	QualityScore float64
	Confidence   float64
	GeneratedAt  time.Time
}

// TeamHeadcount is the total number of people over all roles.
func (p ProjectStructure) TeamHeadcount() int {
	total := 0
	for _, member := range p.Team {
		total += member.Quantity
	}
	return total
}
