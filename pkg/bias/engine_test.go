package bias_test

import (
	"context"
	"testing"

	"github.com/pronas-suite/aicore/pkg/bias"
	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/utils/cmp"
)

func patternByType(t *testing.T, report bias.Report, typ bias.PatternType) bias.Pattern {
	t.Helper()
	for _, p := range report.Patterns {
		if p.Type == typ {
			return p
		}
	}
	t.Fatalf("pattern %s is not in report", typ)
	return bias.Pattern{}
}

func TestAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("when nothing deviates, it flags nothing and score is exactly zero", func(t *testing.T) {
		testee := bias.New(bias.WithFairnessSource(bias.FixedFairness{}))

		report := testee.Analyze(ctx, bias.Subject{
			InstitutionType:    "hospital", // 0.70 vs mean 0.575: deviation 0.125 <= 0.15
			Region:             "nordeste", // 0.15 vs 0.20: deviation 0.05 <= 0.10
			SpecificObjectives: 3,
			BudgetTotal:        1_500_000, // 0.45 in [0.4, 0.6]: not flagged
			TimelineEntries:    6,
			TeamSize:           9,
		})

		if report.BiasDetected {
			t.Error("bias detected unexpectedly")
		}
		if report.BiasScore != 0 {
			t.Errorf("bias score should be exactly 0, got %f", report.BiasScore)
		}
		if len(report.Recommendations) != 0 {
			t.Errorf("unexpected recommendations: %v", report.Recommendations)
		}
		if len(report.Patterns) != 4 {
			t.Errorf("all four patterns should be reported: %d", len(report.Patterns))
		}
	})

	t.Run("a sudeste project flags the geographic pattern with score 0.25", func(t *testing.T) {
		testee := bias.New(bias.WithFairnessSource(bias.FixedFairness{}))

		report := testee.Analyze(ctx, bias.Subject{
			InstitutionType: "hospital",
			Region:          "sudeste",
			BudgetTotal:     1_500_000,
		})

		geo := patternByType(t, report, bias.PatternGeographic)
		if !geo.Detected {
			t.Fatal("geographic pattern is not flagged")
		}
		if delta := geo.Score - 0.25; delta < -1e-9 || 1e-9 < delta {
			t.Errorf("unmatch score: (actual, expected) = (%f, 0.25)", geo.Score)
		}
		if !report.BiasDetected {
			t.Error("report should flag bias")
		}
	})

	t.Run("complexity flags only when at least 3 factors hold, with fixed score 0.3", func(t *testing.T) {
		testee := bias.New(bias.WithFairnessSource(bias.FixedFairness{}))

		twoFactors := testee.Analyze(ctx, bias.Subject{
			SpecificObjectives: 6,         // factor
			BudgetTotal:        1_500_000, // factor (also budget range 0.45: not flagged)
			TimelineEntries:    6,
			TeamSize:           9,
		})
		if patternByType(t, twoFactors, bias.PatternComplexity).Detected {
			t.Error("complexity flagged with only 2 factors")
		}

		threeFactors := testee.Analyze(ctx, bias.Subject{
			SpecificObjectives: 6,
			BudgetTotal:        1_500_000,
			TimelineEntries:    9, // factor
			TeamSize:           9,
		})
		complexity := patternByType(t, threeFactors, bias.PatternComplexity)
		if !complexity.Detected {
			t.Error("complexity is not flagged with 3 factors")
		}
		if complexity.Score != 0.3 {
			t.Errorf("unmatch score: (actual, expected) = (%f, 0.3)", complexity.Score)
		}
	})

	t.Run("budget ranges with skewed approval rates are flagged", func(t *testing.T) {
		testee := bias.New(bias.WithFairnessSource(bias.FixedFairness{}))

		for _, testcase := range []struct {
			total         float64
			expectFlagged bool
			expectedScore float64
		}{
			{total: 50_000, expectFlagged: true, expectedScore: 0.15},  // rate 0.35
			{total: 250_000, expectFlagged: true, expectedScore: 0.15}, // rate 0.65
			{total: 750_000, expectFlagged: true, expectedScore: 0.20}, // rate 0.70
			{total: 2_000_000, expectFlagged: false},                   // rate 0.45
		} {
			report := testee.Analyze(ctx, bias.Subject{BudgetTotal: testcase.total})
			budget := patternByType(t, report, bias.PatternBudget)
			if budget.Detected != testcase.expectFlagged {
				t.Errorf(
					"total %f: (actual, expected) = (%v, %v)",
					testcase.total, budget.Detected, testcase.expectFlagged,
				)
				continue
			}
			if !testcase.expectFlagged {
				continue
			}
			if delta := budget.Score - testcase.expectedScore; delta < -1e-9 || 1e-9 < delta {
				t.Errorf(
					"total %f: unmatch score (actual, expected) = (%f, %f)",
					testcase.total, budget.Score, testcase.expectedScore,
				)
			}
		}
	})

	t.Run("it is a pure function of its input, up to fairness sampling", func(t *testing.T) {
		testee := bias.New(bias.WithFairnessSource(bias.FixedFairness{
			DemographicParity: 0.8, EqualOpportunity: 0.85, DisparateImpact: 1.0,
		}))

		subject := bias.SubjectOf(
			domain.ProjectStructure{
				Objectives: domain.ProjectObjectives{
					Specific: []string{"a", "b", "c", "d", "e", "f"},
				},
				Budget: domain.Budget{Total: 2_000_000},
				Timeline: []domain.TimelinePhase{
					{}, {}, {}, {}, {}, {}, {}, {}, {},
				},
				Team: []domain.TeamMember{{Quantity: 11}},
			},
			"ngo", "norte",
		)

		first := testee.Analyze(ctx, subject)
		second := testee.Analyze(ctx, subject)

		if first.BiasDetected != second.BiasDetected {
			t.Error("bias_detected differs between identical calls")
		}
		if first.BiasScore != second.BiasScore {
			t.Error("bias_score differs between identical calls")
		}
		if !cmp.SliceEqWith(
			first.Patterns, second.Patterns,
			func(a, b bias.Pattern) bool { return a == b },
		) {
			t.Error("patterns differ between identical calls")
		}
		if !cmp.SliceEq(first.Recommendations, second.Recommendations) {
			t.Error("recommendations differ between identical calls")
		}

		// recommendations come one-to-one from flagged patterns
		flagged := 0
		for _, p := range first.Patterns {
			if p.Detected {
				flagged += 1
			}
		}
		if len(first.Recommendations) != flagged {
			t.Errorf(
				"recommendations should map one-to-one to flagged patterns: (%d, %d)",
				len(first.Recommendations), flagged,
			)
		}
	})

	t.Run("fairness samples stay in their contract ranges", func(t *testing.T) {
		testee := bias.New()
		for i := 0; i < 32; i++ {
			report := testee.Analyze(ctx, bias.Subject{})
			f := report.Fairness
			if f.DemographicParity < 0.70 || 0.90 < f.DemographicParity {
				t.Errorf("demographic parity out of range: %f", f.DemographicParity)
			}
			if f.EqualOpportunity < 0.75 || 0.95 < f.EqualOpportunity {
				t.Errorf("equal opportunity out of range: %f", f.EqualOpportunity)
			}
			if f.DisparateImpact < 0.80 || 1.20 < f.DisparateImpact {
				t.Errorf("disparate impact out of range: %f", f.DisparateImpact)
			}
		}
	})
}
