package conformity

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/pronas-suite/aicore/pkg/capability"
	kdb "github.com/pronas-suite/aicore/pkg/db"
)

// similarity window for candidate examples: close enough to be
// relevant, not a near-duplicate. Bounds are exclusive.
const (
	candidateFloor = 0.5
	candidateCeil  = 0.95

	// original sentences more similar than this to any reference
	// sentence are dropped during the merge.
	duplicateThreshold = 0.85

	// merged sentences shorter than this many words are dropped.
	minMergedWords = 5

	fallbackConfidence = 0.6
)

// boilerplate phrases appended by the fallback enhancement pass.
var enhancements = map[string][]string{
	"justification": {
		"considerando as diretrizes do PRONAS/PCD",
		"atendendo às necessidades da população com deficiência",
		"promovendo inclusão e acessibilidade",
	},
	"objectives": {
		"de forma mensurável e alcançável",
		"com indicadores claros de sucesso",
		"alinhado às políticas públicas vigentes",
	},
	"methodology": {
		"seguindo metodologia científica rigorosa",
		"com validação por especialistas",
		"garantindo replicabilidade e sustentabilidade",
	},
}

// key terms the change summary reports when they newly appear.
var keyTerms = []string{"objetivo", "meta", "requisito", "diretriz", "inclusão"}

// ExampleSource yields reference texts from approved projects.
type ExampleSource interface {
	ExamplesFor(ctx context.Context, field string, limit int) ([]kdb.FieldExample, error)
}

type Improvement struct {
	ImprovedText string
	Confidence   float64
	Reasoning    string
	ChangesMade  []string
}

type Improver struct {
	embedder     capability.Embedder
	examples     ExampleSource
	exampleLimit int
	logger       *log.Logger
}

type ImproverOption func(*Improver) *Improver

func WithImproverLogger(l *log.Logger) ImproverOption {
	return func(i *Improver) *Improver {
		i.logger = l
		return i
	}
}

func WithExampleLimit(n int) ImproverOption {
	return func(i *Improver) *Improver {
		i.exampleLimit = n
		return i
	}
}

func NewImprover(embedder capability.Embedder, examples ExampleSource, options ...ImproverOption) *Improver {
	i := &Improver{
		embedder:     embedder,
		examples:     examples,
		exampleLimit: 10,
		logger:       log.Default(),
	}
	for _, option := range options {
		i = option(i)
	}
	return i
}

// Improve rewrites text by merging it with the most similar approved
// example of the same field type. Candidates must sit strictly inside
// the similarity window; when none qualifies, a generic enhancement
// pass appends field-specific boilerplate instead.
//
// On a capability failure the original text comes back unchanged with
// zero confidence; the caller's request still succeeds.
func (i *Improver) Improve(ctx context.Context, text string, fieldType string) Improvement {
	improved, err := i.improve(ctx, text, fieldType)
	if err != nil {
		i.logger.Printf("[WARN] text improvement failed: %v", err)
		return Improvement{
			ImprovedText: text,
			Confidence:   0.0,
			Reasoning:    "Erro ao processar melhorias",
			ChangesMade:  []string{},
		}
	}
	return improved
}

type candidate struct {
	projectId  string
	text       string
	similarity float64
}

func (i *Improver) improve(ctx context.Context, text string, fieldType string) (Improvement, error) {
	textEmbedding, err := i.embedder.Embed(ctx, text)
	if err != nil {
		return Improvement{}, err
	}

	examples, err := i.examples.ExamplesFor(ctx, fieldType, i.exampleLimit)
	if err != nil {
		return Improvement{}, err
	}

	candidates := []candidate{}
	for _, example := range examples {
		exampleEmbedding, err := i.embedder.Embed(ctx, example.Text)
		if err != nil {
			i.logger.Printf("[WARN] skipping example of %s: %v", example.ProjectId, err)
			continue
		}
		similarity := CosineSimilarity(textEmbedding, exampleEmbedding)
		if candidateFloor < similarity && similarity < candidateCeil {
			candidates = append(candidates, candidate{
				projectId:  example.ProjectId,
				text:       example.Text,
				similarity: similarity,
			})
		}
	}

	if len(candidates) == 0 {
		enhanced := enhance(text, fieldType)
		return Improvement{
			ImprovedText: enhanced,
			Confidence:   fallbackConfidence,
			Reasoning:    "Melhorias gerais aplicadas baseadas em boas práticas",
			ChangesMade:  identifyChanges(text, enhanced),
		}, nil
	}

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].similarity > candidates[b].similarity
	})
	best := candidates[0]

	merged, err := i.merge(ctx, text, best.text, fieldType)
	if err != nil {
		return Improvement{}, err
	}

	return Improvement{
		ImprovedText: merged,
		Confidence:   best.similarity,
		Reasoning: fmt.Sprintf(
			"Baseado em projeto aprovado similar (ID: %s) com %.0f%% de similaridade",
			best.projectId, best.similarity*100,
		),
		ChangesMade: identifyChanges(text, merged),
	}, nil
}

// merge keeps the original sentences which add something the reference
// does not already say, framed by the reference's opening and closing
// where the field type calls for it.
func (i *Improver) merge(ctx context.Context, original, reference, fieldType string) (string, error) {
	originalSents := splitSentences(original)
	referenceSents := splitSentences(reference)

	referenceEmbeddings := make([][]float32, len(referenceSents))
	for n, sent := range referenceSents {
		embedding, err := i.embedder.Embed(ctx, sent)
		if err != nil {
			return "", err
		}
		referenceEmbeddings[n] = embedding
	}

	merged := []string{}
	if len(referenceSents) != 0 && fieldType == "justification" {
		merged = append(merged, referenceSents[0])
	}

	for _, sent := range originalSents {
		if len(strings.Fields(sent)) <= minMergedWords {
			continue
		}
		embedding, err := i.embedder.Embed(ctx, sent)
		if err != nil {
			return "", err
		}

		unique := true
		for _, refEmbedding := range referenceEmbeddings {
			if CosineSimilarity(embedding, refEmbedding) > duplicateThreshold {
				unique = false
				break
			}
		}
		if unique {
			merged = append(merged, sent)
		}
	}

	if len(referenceSents) != 0 &&
		(fieldType == "justification" || fieldType == "objectives") {
		merged = append(merged, referenceSents[len(referenceSents)-1])
	}

	return CleanText(strings.Join(merged, " ")), nil
}

func enhance(text string, fieldType string) string {
	enhanced := text
	lower := strings.ToLower(text)
	for _, phrase := range enhancements[fieldType] {
		if !strings.Contains(lower, phrase) {
			enhanced += ", " + phrase
		}
	}
	return CleanText(enhanced)
}

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

func splitSentences(text string) []string {
	sentences := []string{}
	for _, s := range sentenceEnd.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s+".")
		}
	}
	return sentences
}

// CleanText normalizes whitespace and punctuation, capitalizes the
// first letter and guarantees sentence-final punctuation.
func CleanText(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	text = strings.ReplaceAll(text, " ,", ",")
	text = strings.ReplaceAll(text, " .", ".")
	text = strings.ReplaceAll(text, ",,", ",")
	text = strings.ReplaceAll(text, "..", ".")

	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	text = string(runes)

	if last := runes[len(runes)-1]; last != '.' && last != '!' && last != '?' {
		text += "."
	}
	return text
}

// identifyChanges summarizes what the rewrite did: a word-count delta
// beyond 10 words, and key terms the improved text introduces.
func identifyChanges(original, improved string) []string {
	changes := []string{}

	delta := len(strings.Fields(improved)) - len(strings.Fields(original))
	if delta > 10 {
		changes = append(changes, fmt.Sprintf("Texto expandido em %d palavras", delta))
	} else if delta < -10 {
		changes = append(changes, fmt.Sprintf("Texto reduzido em %d palavras", -delta))
	}

	originalLower := strings.ToLower(original)
	improvedLower := strings.ToLower(improved)
	added := []string{}
	for _, term := range keyTerms {
		if strings.Contains(improvedLower, term) && !strings.Contains(originalLower, term) {
			added = append(added, term)
		}
	}
	if len(added) != 0 {
		changes = append(changes, "Adicionados termos-chave: "+strings.Join(added, ", "))
	}

	return changes
}
