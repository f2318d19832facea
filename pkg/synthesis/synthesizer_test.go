package synthesis_test

import (
	"strings"
	"testing"
	"time"

	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/synthesis"
	"github.com/pronas-suite/aicore/pkg/utils/pointer"
)

func TestSynthesizer_Synthesize(t *testing.T) {
	t.Run("when type is training with a 200000 budget, it should yield 12 months in 6 phases and 80000 for human resources", func(t *testing.T) {
		s := synthesis.New()
		p := s.Synthesize(
			"inst-1", domain.ProjectTraining,
			domain.Guidelines{},
			synthesis.SeedInput{Budget: pointer.Ref(200_000.0)},
		)

		if len(p.Timeline) != 6 {
			t.Fatalf("timeline: got %d phases, want 6", len(p.Timeline))
		}
		for i, phase := range p.Timeline {
			if phase.EndMonth-phase.StartMonth != 1 {
				t.Errorf(
					"phase #%d: months %d..%d, want a 2 month span",
					i, phase.StartMonth, phase.EndMonth,
				)
			}
		}
		if last := p.Timeline[5].EndMonth; last != 12 {
			t.Errorf("total duration: got %d months, want 12", last)
		}

		hr := p.Budget.Distribution[domain.BudgetHumanResources]
		if hr != 80_000 {
			t.Errorf("human resources share: got %f, want 80000", hr)
		}
	})

	t.Run("the budget should be internally consistent for any total", func(t *testing.T) {
		s := synthesis.New()
		for _, total := range []float64{100_000, 333_333.33, 500_000, 1_234_567.89} {
			p := s.Synthesize(
				"inst-1", domain.ProjectResearch,
				domain.Guidelines{},
				synthesis.SeedInput{Budget: pointer.Ref(total)},
			)
			if err := p.Budget.Consistent(1e-6); err != nil {
				t.Errorf("total %f: %v", total, err)
			}
			if p.Budget.Total != total {
				t.Errorf("total: got %f, want %f", p.Budget.Total, total)
			}
		}
	})

	t.Run("timeline phases should be monotonically increasing and non-overlapping for every known type", func(t *testing.T) {
		s := synthesis.New()
		for _, projectType := range []domain.ProjectType{
			domain.ProjectResearch, domain.ProjectDevelopment, domain.ProjectTraining,
		} {
			p := s.Synthesize("inst-1", projectType, domain.Guidelines{}, synthesis.SeedInput{})
			if len(p.Timeline) != 6 {
				t.Fatalf("%s: got %d phases, want 6", projectType, len(p.Timeline))
			}
			for i, phase := range p.Timeline {
				if phase.StartMonth > phase.EndMonth {
					t.Errorf("%s phase #%d: starts after it ends", projectType, i)
				}
				if i == 0 {
					continue
				}
				if phase.StartMonth != p.Timeline[i-1].EndMonth+1 {
					t.Errorf(
						"%s phase #%d: starts at %d, previous ended at %d",
						projectType, i, phase.StartMonth, p.Timeline[i-1].EndMonth,
					)
				}
			}
		}
	})

	t.Run("title should fall back from seed to first objective to the fixed label", func(t *testing.T) {
		s := synthesis.New()

		withSeed := s.Synthesize(
			"inst-1", domain.ProjectDevelopment,
			domain.Guidelines{Objectives: []domain.Fact{{Text: "ampliar o acesso"}}},
			synthesis.SeedInput{Title: "Título informado"},
		)
		if withSeed.Title != "Título informado" {
			t.Errorf("title: got %s", withSeed.Title)
		}

		fromObjective := s.Synthesize(
			"inst-1", domain.ProjectDevelopment,
			domain.Guidelines{Objectives: []domain.Fact{{Text: "ampliar o acesso"}}},
			synthesis.SeedInput{},
		)
		if fromObjective.Title != "Projeto para ampliar o acesso" {
			t.Errorf("title: got %s", fromObjective.Title)
		}

		fallback := s.Synthesize(
			"inst-1", domain.ProjectDevelopment, domain.Guidelines{}, synthesis.SeedInput{},
		)
		if fallback.Title != "Projeto PRONAS/PCD" {
			t.Errorf("title: got %s", fallback.Title)
		}
	})

	t.Run("objectives should come from guidelines when present, defaults otherwise", func(t *testing.T) {
		s := synthesis.New()

		g := domain.Guidelines{Objectives: []domain.Fact{
			{Text: "objetivo geral"},
			{Text: "específico 1"}, {Text: "específico 2"},
			{Text: "específico 3"}, {Text: "específico 4"},
		}}
		p := s.Synthesize("inst-1", domain.ProjectDevelopment, g, synthesis.SeedInput{})
		if p.Objectives.General != "objetivo geral" {
			t.Errorf("general: got %s", p.Objectives.General)
		}
		if len(p.Objectives.Specific) != 3 {
			t.Errorf("specific: got %d, want 3", len(p.Objectives.Specific))
		}

		empty := s.Synthesize("inst-1", domain.ProjectDevelopment, domain.Guidelines{}, synthesis.SeedInput{})
		if len(empty.Objectives.Specific) != 4 {
			t.Errorf("default specific: got %d, want 4", len(empty.Objectives.Specific))
		}
		if empty.Objectives.General == "" {
			t.Error("default general objective is empty")
		}
	})

	t.Run("two calls should yield distinct ids but identical deterministic fields", func(t *testing.T) {
		frozen := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		s := synthesis.New(synthesis.WithNow(func() time.Time { return frozen }))

		a := s.Synthesize("inst-1", domain.ProjectResearch, domain.Guidelines{}, synthesis.SeedInput{})
		b := s.Synthesize("inst-1", domain.ProjectResearch, domain.Guidelines{}, synthesis.SeedInput{})

		if a.Id == b.Id {
			t.Errorf("ids collide: %s", a.Id)
		}
		if a.Title != b.Title || a.Justification != b.Justification ||
			a.Budget.Total != b.Budget.Total || a.QualityScore != b.QualityScore {
			t.Error("deterministic fields differ between calls")
		}
		if !a.GeneratedAt.Equal(frozen) {
			t.Errorf("generated at: got %s", a.GeneratedAt)
		}
	})

	t.Run("quality score should reflect completeness, detail and the coherence placeholder", func(t *testing.T) {
		s := synthesis.New()
		p := s.Synthesize("inst-1", domain.ProjectDevelopment, domain.Guidelines{}, synthesis.SeedInput{})

		// all 7 fields filled, justification > 500 chars, >= 3 specific
		// objectives, itemized budget, 6 timeline phases:
		// (1.0 + 1.0 + 0.85) / 3
		want := (1.0 + 1.0 + 0.85) / 3
		if p.QualityScore != want {
			t.Errorf("quality score: got %f, want %f", p.QualityScore, want)
		}
		if p.Confidence != 0.85 {
			t.Errorf("confidence: got %f, want 0.85", p.Confidence)
		}
	})

	t.Run("the justification detail threshold should count characters, not bytes", func(t *testing.T) {
		// 450 runes of "ã" are 900 bytes; still below the 500-character bar
		short := domain.ProjectStructure{Justification: strings.Repeat("ã", 450)}
		long := domain.ProjectStructure{Justification: strings.Repeat("ã", 501)}

		base := (1.0/7 + 0.0 + 0.85) / 3
		if got := synthesis.QualityScore(short); got != base {
			t.Errorf("quality score: got %f, want %f", got, base)
		}
		detailed := (1.0/7 + 0.25 + 0.85) / 3
		if got := synthesis.QualityScore(long); got != detailed {
			t.Errorf("quality score: got %f, want %f", got, detailed)
		}
	})
}

func TestCatalog(t *testing.T) {
	t.Run("unknown project types should fall back to the development methodology and default duration", func(t *testing.T) {
		c := synthesis.DefaultCatalog()

		unknown := domain.ProjectType("outreach")
		if got := c.DurationFor(unknown); got != 18 {
			t.Errorf("duration: got %d, want 18", got)
		}
		m := c.MethodologyFor(unknown)
		if m.Approach != c.Methodologies["development"].Approach {
			t.Errorf("approach: got %s", m.Approach)
		}
	})

	t.Run("a yaml file should override only the sections it names", func(t *testing.T) {
		c, err := synthesis.LoadCatalog("./testdata/catalog.yaml")
		if err != nil {
			t.Fatal(err)
		}

		if got := c.DurationFor(domain.ProjectTraining); got != 6 {
			t.Errorf("training duration: got %d, want 6 from file", got)
		}
		if c.DefaultBudget != 250000 {
			t.Errorf("default budget: got %f, want 250000 from file", c.DefaultBudget)
		}

		// untouched sections keep their built-in values
		if len(c.PhaseNames) != 6 {
			t.Errorf("phase names: got %d, want 6", len(c.PhaseNames))
		}
		if len(c.Risks) == 0 {
			t.Error("risks: lost the built-in entries")
		}
	})
}
