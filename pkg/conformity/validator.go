// Package conformity scores proposal sections against guideline rules
// and rewrites weak text by blending it with approved examples.
package conformity

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pronas-suite/aicore/pkg/capability"
	"github.com/pronas-suite/aicore/pkg/domain"
)

// minimum word counts per section. Sections not listed here have no
// length rule.
var minWords = map[string]int{
	"justification": 200,
	"objectives":    50,
	"methodology":   150,
}

type Issue struct {
	Type    string
	Message string
}

type Result struct {
	Section     string
	Score       float64
	Issues      []Issue
	Suggestions []string
}

type Validator struct {
	sentiment capability.SentimentClassifier
	logger    *log.Logger
}

type ValidatorOption func(*Validator) *Validator

func WithValidatorLogger(l *log.Logger) ValidatorOption {
	return func(v *Validator) *Validator {
		v.logger = l
		return v
	}
}

func NewValidator(sentiment capability.SentimentClassifier, options ...ValidatorOption) *Validator {
	v := &Validator{
		sentiment: sentiment,
		logger:    log.Default(),
	}
	for _, option := range options {
		v = option(v)
	}
	return v
}

// ValidateSection scores content against the guideline rules for
// section. The score starts at 1.0 and loses 0.2 for a too-short text,
// 0.1 per missing required keyword (checked against the top 10 guideline
// keywords), and 0.1 for a negative tone, clamped to [0, 1]. Each
// deduction appends an issue and, where applicable, a suggestion.
//
// A failed sentiment call deducts nothing; it logs a warning and the
// validation still succeeds.
func (v *Validator) ValidateSection(
	ctx context.Context, section string, content string, g domain.Guidelines,
) Result {
	result := Result{
		Section:     section,
		Issues:      []Issue{},
		Suggestions: []string{},
	}
	deduction := 0.0

	wordCount := len(strings.Fields(content))
	if minimum, ok := minWords[section]; ok && wordCount < minimum {
		result.Issues = append(result.Issues, Issue{
			Type: "length",
			Message: fmt.Sprintf(
				"%s deve ter pelo menos %d palavras (atual: %d)",
				section, minimum, wordCount,
			),
		})
		result.Suggestions = append(
			result.Suggestions,
			fmt.Sprintf("Expanda %s com mais detalhes e justificativas", section),
		)
		deduction += 0.2
	}

	lower := strings.ToLower(content)
	missing := []string{}
	for _, keyword := range g.TopKeywords(10) {
		if !strings.Contains(lower, strings.ToLower(keyword)) {
			missing = append(missing, keyword)
		}
	}
	if len(missing) != 0 {
		result.Issues = append(result.Issues, Issue{
			Type: "keywords",
			Message: "Palavras-chave ausentes: " +
				strings.Join(missing[:min(5, len(missing))], ", "),
		})
		result.Suggestions = append(
			result.Suggestions,
			"Inclua termos relevantes como: "+
				strings.Join(missing[:min(3, len(missing))], ", "),
		)
		deduction += 0.1 * float64(len(missing))
	}

	sentiment, err := v.sentiment.Classify(ctx, head(content, 512))
	if err != nil {
		v.logger.Printf("[WARN] sentiment classification failed: %v", err)
	} else if sentiment.Negative() {
		result.Issues = append(result.Issues, Issue{
			Type:    "tone",
			Message: "Tom do texto pode ser melhorado para ser mais positivo e construtivo",
		})
		deduction += 0.1
	}

	result.Score = clamp01(1.0 - deduction)
	return result
}

func head(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
