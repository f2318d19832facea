// Package synthesis builds a complete project structure from structured
// guidelines, seed input and the template catalog.
package synthesis

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/utils/slices"
)

// SeedInput is the user-provided starting point for a synthesis.
// Every field is optional.
type SeedInput struct {
	Title         string
	Budget        *float64
	MainObjective string
	Context       string
	Foundation    string
	Impacts       string
	Beneficiaries string
}

const (
	fallbackTitle = "Projeto PRONAS/PCD"

	// coherenceScore stands in for a coherence model which is not
	// integrated yet.
	coherenceScore = 0.85

	synthesisConfidence = 0.85
)

// budget split per category, as fractions of the total.
var budgetSplit = map[domain.BudgetCategory]float64{
	domain.BudgetHumanResources: 0.40,
	domain.BudgetEquipment:      0.20,
	domain.BudgetMaterials:      0.15,
	domain.BudgetServices:       0.15,
	domain.BudgetIndirectCosts:  0.10,
}

// line items per category. Fractions of each category sum to the
// category's own split so the itemized budget stays consistent.
var budgetLineItems = map[domain.BudgetCategory][]struct {
	Description string
	Fraction    float64
}{
	domain.BudgetHumanResources: {
		{Description: "Coordenador do Projeto", Fraction: 0.15},
		{Description: "Pesquisadores", Fraction: 0.15},
		{Description: "Equipe de Apoio", Fraction: 0.10},
	},
	domain.BudgetEquipment: {
		{Description: "Equipamentos de Informática", Fraction: 0.10},
		{Description: "Equipamentos Especializados", Fraction: 0.10},
	},
	domain.BudgetMaterials: {
		{Description: "Material de Consumo", Fraction: 0.08},
		{Description: "Material Didático", Fraction: 0.07},
	},
	domain.BudgetServices: {
		{Description: "Consultoria Especializada", Fraction: 0.08},
		{Description: "Serviços de Terceiros", Fraction: 0.07},
	},
	domain.BudgetIndirectCosts: {
		{Description: "Custos Administrativos", Fraction: 0.10},
	},
}

type Synthesizer struct {
	catalog Catalog
	now     func() time.Time
	newId   func(now time.Time) string
}

type Option func(*Synthesizer) *Synthesizer

func WithCatalog(c Catalog) Option {
	return func(s *Synthesizer) *Synthesizer {
		s.catalog = c
		return s
	}
}

// WithNow fixes the clock. For tests.
func WithNow(now func() time.Time) Option {
	return func(s *Synthesizer) *Synthesizer {
		s.now = now
		return s
	}
}

func New(options ...Option) *Synthesizer {
	s := &Synthesizer{
		catalog: DefaultCatalog(),
		now:     time.Now,
		newId: func(now time.Time) string {
			return fmt.Sprintf(
				"proj_%d_%s", now.UnixNano(), uuid.NewString()[:8],
			)
		},
	}
	for _, option := range options {
		s = option(s)
	}
	return s
}

// Synthesize builds a complete internally consistent project structure.
//
// Everything except the generated id and timestamp is a deterministic
// function of the guidelines, the seed input and the catalog. It does
// not persist anything.
func (s *Synthesizer) Synthesize(
	institutionId string,
	projectType domain.ProjectType,
	g domain.Guidelines,
	seed SeedInput,
) domain.ProjectStructure {
	now := s.now()

	p := domain.ProjectStructure{
		Id:            s.newId(now),
		InstitutionId: institutionId,
		Type:          projectType,

		Title:         s.title(seed, g),
		Justification: s.justification(seed, g),
		Objectives:    s.objectives(g),
		Methodology:   s.methodology(projectType),
		Budget:        s.budget(seed),
		Timeline:      s.timeline(projectType),
		Team: slices.Map(s.catalog.Team, func(t TeamTemplate) domain.TeamMember {
			return domain.TeamMember{
				Role:           t.Role,
				Quantity:       t.Quantity,
				HoursPerWeek:   t.HoursPerWeek,
				Qualifications: t.Qualifications,
			}
		}),
		Resources: domain.Resources{
			Infrastructure: s.catalog.Resources.Infrastructure,
			Technology:     s.catalog.Resources.Technology,
			Partnerships:   s.catalog.Resources.Partnerships,
		},
		ExpectedResults: s.catalog.ExpectedResults,
		EvaluationMetrics: slices.Map(s.catalog.Metrics, func(m MetricTemplate) domain.EvaluationMetric {
			return domain.EvaluationMetric{
				Indicator:   m.Indicator,
				Target:      m.Target,
				Measurement: m.Measurement,
				Frequency:   m.Frequency,
			}
		}),
		Sustainability: domain.Sustainability{
			Financial:     s.catalog.Sustainability.Financial,
			Institutional: s.catalog.Sustainability.Institutional,
			Social:        s.catalog.Sustainability.Social,
		},
		Risks: slices.Map(s.catalog.Risks, func(r RiskTemplate) domain.Risk {
			return domain.Risk{
				Risk:        r.Risk,
				Probability: r.Probability,
				Impact:      r.Impact,
				Mitigation:  r.Mitigation,
			}
		}),

		Confidence:  synthesisConfidence,
		GeneratedAt: now,
	}

	p.QualityScore = QualityScore(p)
	return p
}

func (s *Synthesizer) title(seed SeedInput, g domain.Guidelines) string {
	if seed.Title != "" {
		return seed.Title
	}
	if len(g.Objectives) != 0 {
		return "Projeto para " + truncate(g.Objectives[0].Text, 100)
	}
	return fallbackTitle
}

func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

func (s *Synthesizer) justification(seed SeedInput, g domain.Guidelines) string {
	orDefault := func(value, fallback string) string {
		if value != "" {
			return value
		}
		return fallback
	}

	paragraphs := []string{
		fmt.Sprintf(
			"Este projeto se justifica pela necessidade de %s, considerando %s. "+
				"A relevância desta iniciativa está fundamentada em %s, "+
				"atendendo aos requisitos estabelecidos pelo PRONAS/PCD.",
			orDefault(seed.MainObjective, "desenvolver soluções inovadoras"),
			orDefault(seed.Context, "o cenário atual de inclusão"),
			orDefault(seed.Foundation, "evidências científicas e demandas sociais"),
		),
	}

	if len(g.Requirements) != 0 {
		lines := []string{"Este projeto atende aos seguintes requisitos:"}
		for _, req := range g.Requirements {
			lines = append(lines, "- "+req.Text)
			if len(lines) == 6 {
				break
			}
		}
		paragraphs = append(paragraphs, strings.Join(lines, "\n"))
	}

	paragraphs = append(paragraphs, fmt.Sprintf(
		"O impacto esperado inclui %s, beneficiando diretamente %s pessoas com deficiência.",
		orDefault(seed.Impacts, "melhorias significativas na qualidade de vida"),
		orDefault(seed.Beneficiaries, "1000"),
	))

	return strings.Join(paragraphs, "\n\n")
}

func (s *Synthesizer) objectives(g domain.Guidelines) domain.ProjectObjectives {
	general := s.catalog.DefaultGeneralObjective
	if len(g.Objectives) != 0 {
		general = g.Objectives[0].Text
	}

	specific := []string{}
	for _, o := range g.Objectives[min(1, len(g.Objectives)):] {
		specific = append(specific, o.Text)
		if len(specific) == 3 {
			break
		}
	}
	if len(specific) == 0 {
		specific = s.catalog.DefaultSpecificObjectives
	}

	return domain.ProjectObjectives{General: general, Specific: specific}
}

func (s *Synthesizer) methodology(projectType domain.ProjectType) domain.Methodology {
	m := s.catalog.MethodologyFor(projectType)
	return domain.Methodology{
		Approach:   m.Approach,
		Phases:     m.Phases,
		Techniques: m.Techniques,
	}
}

func (s *Synthesizer) budget(seed SeedInput) domain.Budget {
	total := s.catalog.DefaultBudget
	if seed.Budget != nil {
		total = *seed.Budget
	}

	distribution := map[domain.BudgetCategory]float64{}
	for category, fraction := range budgetSplit {
		distribution[category] = total * fraction
	}

	items := map[domain.BudgetCategory][]domain.BudgetItem{}
	for category, lines := range budgetLineItems {
		for _, line := range lines {
			items[category] = append(items[category], domain.BudgetItem{
				Description: line.Description,
				Value:       total * line.Fraction,
			})
		}
	}

	return domain.Budget{
		Total:        total,
		Distribution: distribution,
		Items:        items,
		Currency:     "BRL",
	}
}

func (s *Synthesizer) timeline(projectType domain.ProjectType) []domain.TimelinePhase {
	duration := s.catalog.DurationFor(projectType)
	phaseDuration := duration / len(s.catalog.PhaseNames)

	phases := make([]domain.TimelinePhase, len(s.catalog.PhaseNames))
	for i, name := range s.catalog.PhaseNames {
		phases[i] = domain.TimelinePhase{
			Phase:      name,
			StartMonth: i*phaseDuration + 1,
			EndMonth:   (i + 1) * phaseDuration,
			Deliverables: []string{
				"Relatório de " + name,
				"Indicadores de " + name,
				"Documentação de " + name,
			},
		}
	}
	return phases
}

// QualityScore is the mean of three sub-scores: field completeness,
// detail level, and the coherence placeholder. Each sub-score is in
// [0, 1] and weighted equally; nothing is hidden in the composition.
func QualityScore(p domain.ProjectStructure) float64 {
	filled := 0
	for _, present := range []bool{
		p.Title != "",
		p.Justification != "",
		p.Objectives.General != "" || len(p.Objectives.Specific) != 0,
		p.Methodology.Approach != "",
		p.Budget.Total > 0,
		len(p.Timeline) != 0,
		len(p.ExpectedResults) != 0,
	} {
		if present {
			filled += 1
		}
	}
	completeness := float64(filled) / 7

	detail := 0.0
	if len([]rune(p.Justification)) > 500 {
		detail += 0.25
	}
	if len(p.Objectives.Specific) >= 3 {
		detail += 0.25
	}
	if len(p.Budget.Items) != 0 {
		detail += 0.25
	}
	if len(p.Timeline) >= 4 {
		detail += 0.25
	}

	return (completeness + detail + coherenceScore) / 3
}
