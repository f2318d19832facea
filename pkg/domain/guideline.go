package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownFactKind = errors.New("unknown guideline fact kind")

// kind of a classified guideline sentence.
type FactKind string

var (
	KindRequirement FactKind = "requirement"
	KindObjective   FactKind = "objective"
	KindRestriction FactKind = "restriction"
)

func (k FactKind) String() string {
	return string(k)
}

func AsFactKind(s string) (FactKind, error) {
	switch FactKind(s) {
	case KindRequirement:
		return KindRequirement, nil
	case KindObjective:
		return KindObjective, nil
	case KindRestriction:
		return KindRestriction, nil
	default:
		return FactKind(s), fmt.Errorf("%w: %s", ErrUnknownFactKind, s)
	}
}

type Priority string

var (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) String() string {
	return string(p)
}

type RestrictionType string

var (
	RestrictionBudget   RestrictionType = "budget"
	RestrictionTimeline RestrictionType = "timeline"
	RestrictionTeam     RestrictionType = "team"
	RestrictionGeneral  RestrictionType = "general"
)

func (r RestrictionType) String() string {
	return string(r)
}

// one named entity found in a guideline sentence.
//
// Start and End are rune offsets into the sentence the span was found in.
type EntitySpan struct {
	Text  string
	Label string
	Start int
	End   int
}

// Fact is one classified, embedded guideline sentence.
//
// Immutable once produced by the structurer.
//
// Embedding is nil when the embedding capability failed for this sentence;
// such Facts are excluded from similarity comparison but kept otherwise.
type Fact struct {
	Text string
	Kind FactKind

	// requirement only. true when an obligation-strength marker is present.
	Mandatory bool

	// objective only.
	Priority Priority

	// restriction only.
	RestrictionType RestrictionType

	// restriction only. high when a hard-prohibition marker is present.
	Severity Priority

	Entities  []EntitySpan
	Embedding []float32
}

// HasEmbedding reports whether this fact can take part in similarity search.
func (f Fact) HasEmbedding() bool {
	return len(f.Embedding) != 0
}

// Guidelines is the structured output of processing a batch of guideline
// texts: facts grouped by kind, plus keywords and entities drawn from the
// whole batch.
type Guidelines struct {
	Version      string
	Requirements []Fact
	Objectives   []Fact
	Restrictions []Fact
	Keywords     []string
	Entities     []EntitySpan
}

// TopKeywords returns up to n keywords, in extraction order.
func (g Guidelines) TopKeywords(n int) []string {
	if len(g.Keywords) <= n {
		return g.Keywords
	}
	return g.Keywords[:n]
}

// Empty reports whether nothing structured was extracted.
func (g Guidelines) Empty() bool {
	return len(g.Requirements) == 0 &&
		len(g.Objectives) == 0 &&
		len(g.Restrictions) == 0 &&
		len(g.Keywords) == 0
}
