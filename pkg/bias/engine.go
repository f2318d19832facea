// Package bias evaluates a candidate project structure along four
// independent fairness dimensions (institutional, geographic, complexity,
// budget) and aggregates them into a Report.
//
// A Report is derived and disposable: it is recomputed on demand and never
// treated as authoritative state.
package bias

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/pronas-suite/aicore/pkg/domain"
)

type PatternType string

var (
	PatternInstitutional PatternType = "institutional"
	PatternGeographic    PatternType = "geographic"
	PatternComplexity    PatternType = "complexity"
	PatternBudget        PatternType = "budget"
)

func (p PatternType) String() string {
	return string(p)
}

// Pattern is the outcome of one detector.
type Pattern struct {
	Type        PatternType
	Detected    bool
	Score       float64
	Description string
}

// Fairness carries auxiliary statistical indicators reported alongside
// bias patterns.
//
// The current values are placeholder samples drawn from fixed ranges; they
// legitimately vary between calls on identical input. The field set and
// value ranges are the interface contract to keep when a real computation
// over approval outcome data replaces the sampling.
type Fairness struct {
	DemographicParity float64
	EqualOpportunity  float64
	DisparateImpact   float64
}

type Report struct {
	BiasDetected    bool
	BiasScore       float64
	Patterns        []Pattern
	Recommendations []string
	Fairness        Fairness
}

// Subject is the raw field view of a project under analysis.
type Subject struct {
	InstitutionType    string
	Region             string
	SpecificObjectives int
	BudgetTotal        float64
	TimelineEntries    int
	TeamSize           int
}

// SubjectOf projects a synthesized structure onto the fields the detectors
// read. Institution type and region are not part of ProjectStructure; they
// come from the requesting institution's record.
func SubjectOf(p domain.ProjectStructure, institutionType string, region string) Subject {
	return Subject{
		InstitutionType:    institutionType,
		Region:             region,
		SpecificObjectives: len(p.Objectives.Specific),
		BudgetTotal:        p.Budget.Total,
		TimelineEntries:    len(p.Timeline),
		TeamSize:           p.TeamHeadcount(),
	}
}

// FairnessSource yields fairness metric samples.
type FairnessSource interface {
	Sample() Fairness
}

type budgetRange struct {
	min          float64
	max          float64 // +Inf for the open-ended range
	approvalRate float64
}

// Engine runs the four detectors.
//
// The detector tables are known historical patterns; override them with
// options when real outcome data is available.
type Engine struct {
	approvalRates map[string]float64
	regionShares  map[string]float64
	budgetRanges  []budgetRange
	fairness      FairnessSource
	logger        *log.Logger
}

type Option func(*Engine) *Engine

func WithFairnessSource(src FairnessSource) Option {
	return func(e *Engine) *Engine {
		e.fairness = src
		return e
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) *Engine {
		e.logger = l
		return e
	}
}

func WithApprovalRates(rates map[string]float64) Option {
	return func(e *Engine) *Engine {
		e.approvalRates = rates
		return e
	}
}

func WithRegionShares(shares map[string]float64) Option {
	return func(e *Engine) *Engine {
		e.regionShares = shares
		return e
	}
}

func New(options ...Option) *Engine {
	e := &Engine{
		approvalRates: map[string]float64{
			"university": 0.75,
			"hospital":   0.70,
			"ngo":        0.45,
			"private":    0.40,
		},
		regionShares: map[string]float64{
			"sudeste":      0.45,
			"sul":          0.25,
			"nordeste":     0.15,
			"centro-oeste": 0.10,
			"norte":        0.05,
		},
		budgetRanges: []budgetRange{
			{0, 100_000, 0.35},
			{100_000, 500_000, 0.65},
			{500_000, 1_000_000, 0.70},
			{1_000_000, math.Inf(+1), 0.45},
		},
		fairness: defaultFairnessSource{},
		logger:   log.Default(),
	}
	for _, opt := range options {
		e = opt(e)
	}
	return e
}

// Analyze runs all four detectors unconditionally and concurrently.
//
// A failing detector never aborts the others: it contributes
// (detected=false, score=0) and a warning is logged.
//
// Aggregate BiasScore is the arithmetic mean over flagged patterns only,
// and exactly 0 when none is flagged.
func (e *Engine) Analyze(ctx context.Context, s Subject) Report {
	detectors := []func(Subject) Pattern{
		e.detectInstitutional,
		e.detectGeographic,
		e.detectComplexity,
		e.detectBudget,
	}

	patterns := make([]Pattern, len(detectors))
	wg := sync.WaitGroup{}
	for nth, detect := range detectors {
		wg.Add(1)
		go func(nth int, detect func(Subject) Pattern) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					e.logger.Printf("[WARN] bias detector #%d failed: %v", nth, r)
					patterns[nth] = Pattern{Type: patternTypeAt(nth)}
				}
			}()
			patterns[nth] = detect(s)
		}(nth, detect)
	}
	wg.Wait()

	report := Report{Patterns: patterns}

	flaggedSum, flaggedCount := 0.0, 0
	for _, p := range patterns {
		if !p.Detected {
			continue
		}
		flaggedSum += p.Score
		flaggedCount += 1
		report.Recommendations = append(
			report.Recommendations, recommendationFor(p.Type),
		)
	}
	if flaggedCount != 0 {
		report.BiasDetected = true
		report.BiasScore = flaggedSum / float64(flaggedCount)
	}

	report.Fairness = e.fairness.Sample()

	return report
}

func patternTypeAt(nth int) PatternType {
	order := []PatternType{
		PatternInstitutional, PatternGeographic, PatternComplexity, PatternBudget,
	}
	return order[nth]
}

func (e *Engine) detectInstitutional(s Subject) Pattern {
	result := Pattern{Type: PatternInstitutional}

	var mean float64
	for _, rate := range e.approvalRates {
		mean += rate
	}
	mean /= float64(len(e.approvalRates))

	rate, known := e.approvalRates[strings.ToLower(s.InstitutionType)]
	if !known {
		return result
	}

	if deviation := math.Abs(rate - mean); deviation > 0.15 {
		side := "below"
		if rate > mean {
			side = "above"
		}
		result.Detected = true
		result.Score = deviation
		result.Description = fmt.Sprintf(
			"institutions of type %q have an approval rate %s the average",
			s.InstitutionType, side,
		)
	}
	return result
}

func (e *Engine) detectGeographic(s Subject) Pattern {
	result := Pattern{Type: PatternGeographic}

	expected := 1.0 / float64(len(e.regionShares))

	actual, known := e.regionShares[strings.ToLower(s.Region)]
	if !known {
		return result
	}

	if deviation := math.Abs(actual - expected); deviation > 0.10 {
		side := "under"
		if actual > expected {
			side = "over"
		}
		result.Detected = true
		result.Score = deviation
		result.Description = fmt.Sprintf(
			"region %q is %s-represented among approved projects",
			s.Region, side,
		)
	}
	return result
}

func (e *Engine) detectComplexity(s Subject) Pattern {
	result := Pattern{Type: PatternComplexity}

	complexity := 0
	if s.SpecificObjectives > 5 {
		complexity += 1
	}
	if s.BudgetTotal > 1_000_000 {
		complexity += 1
	}
	if s.TimelineEntries > 8 {
		complexity += 1
	}
	if s.TeamSize > 10 {
		complexity += 1
	}

	if complexity >= 3 {
		result.Detected = true
		result.Score = 0.3
		result.Description = "highly complex projects tend to receive differential treatment"
	}
	return result
}

func (e *Engine) detectBudget(s Subject) Pattern {
	result := Pattern{Type: PatternBudget}

	for _, r := range e.budgetRanges {
		if s.BudgetTotal < r.min || r.max <= s.BudgetTotal {
			continue
		}
		if 0.4 <= r.approvalRate && r.approvalRate <= 0.6 {
			break
		}
		side := "low"
		if r.approvalRate > 0.6 {
			side = "high"
		}
		result.Detected = true
		result.Score = math.Abs(r.approvalRate - 0.5)
		result.Description = fmt.Sprintf(
			"projects budgeted between %.0f and %.0f have a %s approval rate",
			r.min, r.max, side,
		)
		break
	}
	return result
}

func recommendationFor(t PatternType) string {
	switch t {
	case PatternInstitutional:
		return "review evaluation criteria to keep equity across institution types"
	case PatternGeographic:
		return "align the project with the expected geographic distribution, or justify the regional concentration"
	case PatternComplexity:
		return "simplify the project structure or split it into smaller phases"
	case PatternBudget:
		return "review the budget against ranges with balanced approval rates, or justify the amounts in detail"
	default:
		return ""
	}
}
