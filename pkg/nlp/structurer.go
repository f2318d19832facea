// Package nlp turns raw guideline text into structured, classified facts.
//
// Classification is keyword-triggered: each sentence is matched against
// Portuguese marker lists for requirements, objectives and restrictions,
// in that order, and the first match wins. Sentences matching nothing
// are dropped from the structured output but still feed the keyword set.
package nlp

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/pronas-suite/aicore/pkg/capability"
	"github.com/pronas-suite/aicore/pkg/domain"
)

var (
	requirementMarkers = []string{
		"deve", "deverá", "obrigatório", "necessário",
		"requisito", "exigido", "precisa", "essencial",
	}
	objectiveMarkers = []string{
		"objetivo", "meta", "finalidade", "propósito",
		"visa", "busca", "pretende", "almeja",
	}
	restrictionMarkers = []string{
		"não pode", "proibido", "vedado", "limitado",
		"restrição", "impedido", "exceto", "salvo",
	}

	obligationMarkers   = []string{"deve", "obrigatório"}
	highPriorityMarkers = []string{"principal", "fundamental", "prioritário", "crítico"}
	lowPriorityMarkers  = []string{"secundário", "opcional", "desejável"}
)

// stopwords are common Portuguese function words excluded from the
// keyword set.
var stopwords = map[string]struct{}{
	"para": {}, "como": {}, "pela": {}, "pelo": {}, "pelos": {}, "pelas": {},
	"este": {}, "esta": {}, "esse": {}, "essa": {}, "isso": {}, "isto": {},
	"aquele": {}, "aquela": {}, "onde": {}, "quando": {}, "porque": {},
	"mais": {}, "menos": {}, "muito": {}, "toda": {}, "todo": {},
	"todas": {}, "todos": {}, "pode": {}, "deve": {}, "seja": {},
	"serão": {}, "sobre": {}, "entre": {}, "após": {}, "antes": {},
	"cada": {}, "seus": {}, "suas": {}, "pelo menos": {},
}

type Structurer struct {
	embedder capability.Embedder
	tagger   capability.EntityTagger
	logger   *log.Logger
}

type Option func(*Structurer) *Structurer

// WithEntityTagger sets the named-entity capability. Without it, facts
// carry no entity spans.
func WithEntityTagger(t capability.EntityTagger) Option {
	return func(s *Structurer) *Structurer {
		s.tagger = t
		return s
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Structurer) *Structurer {
		s.logger = l
		return s
	}
}

func New(embedder capability.Embedder, options ...Option) *Structurer {
	s := &Structurer{
		embedder: embedder,
		logger:   log.Default(),
	}
	for _, option := range options {
		s = option(s)
	}
	return s
}

var sentenceBoundary = regexp.MustCompile(`[.!?\n]+`)

// SplitSentences cuts text at sentence-final punctuation and newlines.
func SplitSentences(text string) []string {
	sentences := []string{}
	for _, s := range sentenceBoundary.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Process classifies each sentence of texts into a guideline fact and
// collects keywords and entities across all inputs.
//
// Embedding and entity tagging are best-effort: when either capability
// fails for a sentence, the sentence is kept without that annotation
// and a warning is logged. A fact without an embedding is excluded from
// later similarity comparison by its consumers.
func (s *Structurer) Process(ctx context.Context, texts []string) (domain.Guidelines, error) {
	g := domain.Guidelines{
		Requirements: []domain.Fact{},
		Objectives:   []domain.Fact{},
		Restrictions: []domain.Fact{},
		Keywords:     []string{},
		Entities:     []domain.EntitySpan{},
	}

	seenKeywords := map[string]struct{}{}

	for _, text := range texts {
		if s.tagger != nil {
			entities, err := s.tagger.Tag(ctx, text)
			if err != nil {
				s.logger.Printf("[WARN] entity tagging failed: %v", err)
			} else {
				g.Entities = append(g.Entities, entities...)
			}
		}

		for _, sentence := range SplitSentences(text) {
			lower := strings.ToLower(sentence)

			for _, token := range strings.Fields(lower) {
				token = strings.Trim(token, `,;:"'()[]`)
				if len([]rune(token)) <= 3 {
					continue
				}
				if _, stop := stopwords[token]; stop {
					continue
				}
				if _, seen := seenKeywords[token]; seen {
					continue
				}
				seenKeywords[token] = struct{}{}
				g.Keywords = append(g.Keywords, token)
			}

			kind, ok := classify(lower)
			if !ok {
				continue
			}

			fact := domain.Fact{Text: sentence, Kind: kind}
			switch kind {
			case domain.KindRequirement:
				fact.Mandatory = containsAny(lower, obligationMarkers)
			case domain.KindObjective:
				fact.Priority = priorityOf(lower)
			case domain.KindRestriction:
				fact.RestrictionType = restrictionTypeOf(lower)
				if strings.Contains(lower, "vedado") {
					fact.Severity = domain.PriorityHigh
				} else {
					fact.Severity = domain.PriorityMedium
				}
			}

			embedding, err := s.embedder.Embed(ctx, sentence)
			if err != nil {
				s.logger.Printf("[WARN] embedding failed, keeping fact without vector: %v", err)
			} else {
				fact.Embedding = embedding
			}

			switch kind {
			case domain.KindRequirement:
				g.Requirements = append(g.Requirements, fact)
			case domain.KindObjective:
				g.Objectives = append(g.Objectives, fact)
			case domain.KindRestriction:
				g.Restrictions = append(g.Restrictions, fact)
			}
		}
	}

	return g, nil
}

// classify assigns a sentence to at most one fact kind. Order matters:
// requirement markers shadow objective markers which shadow restriction
// markers.
func classify(lower string) (domain.FactKind, bool) {
	switch {
	case containsAny(lower, requirementMarkers):
		return domain.KindRequirement, true
	case containsAny(lower, objectiveMarkers):
		return domain.KindObjective, true
	case containsAny(lower, restrictionMarkers):
		return domain.KindRestriction, true
	default:
		return "", false
	}
}

func priorityOf(lower string) domain.Priority {
	switch {
	case containsAny(lower, highPriorityMarkers):
		return domain.PriorityHigh
	case containsAny(lower, lowPriorityMarkers):
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}

func restrictionTypeOf(lower string) domain.RestrictionType {
	switch {
	case strings.Contains(lower, "orçamento") || strings.Contains(lower, "valor"):
		return domain.RestrictionBudget
	case strings.Contains(lower, "prazo") || strings.Contains(lower, "tempo"):
		return domain.RestrictionTimeline
	case strings.Contains(lower, "equipe") || strings.Contains(lower, "profissional"):
		return domain.RestrictionTeam
	default:
		return domain.RestrictionGeneral
	}
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
