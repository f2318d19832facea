package nlp

import (
	"context"
	"sync"

	"github.com/pronas-suite/aicore/pkg/domain"
)

// Loader yields the current guideline set, typically by reading the
// configured guideline texts and running them through a Structurer.
type Loader func(ctx context.Context) (domain.Guidelines, error)

// GuidelineCache holds the most recently loaded guideline version and
// serves it from memory until Invalidate is called.
//
// Population is lazy and happens at most once at a time: concurrent
// first readers block until the single load finishes, and no reader
// ever observes a partially built guideline set.
type GuidelineCache struct {
	mu     sync.RWMutex
	loaded bool
	cached domain.Guidelines
	loader Loader
}

func NewGuidelineCache(loader Loader) *GuidelineCache {
	return &GuidelineCache{loader: loader}
}

// Get returns the cached guidelines, loading them on first access.
func (c *GuidelineCache) Get(ctx context.Context) (domain.Guidelines, error) {
	c.mu.RLock()
	if c.loaded {
		g := c.cached
		c.mu.RUnlock()
		return g, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.cached, nil
	}

	g, err := c.loader(ctx)
	if err != nil {
		return domain.Guidelines{}, err
	}
	c.cached = g
	c.loaded = true
	return g, nil
}

// Invalidate drops the cached value. The next Get reloads.
func (c *GuidelineCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.cached = domain.Guidelines{}
}

// DefaultGuidelines is the built-in guideline set served when no
// guideline source is configured.
func DefaultGuidelines() domain.Guidelines {
	return domain.Guidelines{
		Version: "2024.1",
		Keywords: []string{
			"inclusão", "acessibilidade", "deficiência", "reabilitação",
			"tecnologia assistiva", "autonomia", "qualidade de vida",
			"direitos", "cidadania", "participação social",
		},
		Requirements: []domain.Fact{
			{Text: "Atender pessoas com deficiência", Kind: domain.KindRequirement, Mandatory: true},
			{Text: "Seguir normas de acessibilidade", Kind: domain.KindRequirement, Mandatory: true},
			{Text: "Apresentar indicadores mensuráveis", Kind: domain.KindRequirement},
			{Text: "Garantir sustentabilidade do projeto", Kind: domain.KindRequirement},
		},
		Objectives: []domain.Fact{},
		Restrictions: []domain.Fact{
			{
				Text: "Não discriminar por tipo de deficiência",
				Kind: domain.KindRestriction, RestrictionType: domain.RestrictionGeneral,
				Severity: domain.PriorityMedium,
			},
			{
				Text: "Não exceder limite orçamentário estabelecido",
				Kind: domain.KindRestriction, RestrictionType: domain.RestrictionBudget,
				Severity: domain.PriorityMedium,
			},
			{
				Text: "Não duplicar serviços existentes",
				Kind: domain.KindRestriction, RestrictionType: domain.RestrictionGeneral,
				Severity: domain.PriorityMedium,
			},
		},
		Entities: []domain.EntitySpan{},
	}
}
