// Package capability declares the external model/processing collaborators
// the pipeline consumes: embedding, sentiment classification, entity
// tagging, text extraction (OCR) and document rendering.
//
// They are interfaces, not implementations: the models behind them are
// owned by other services. A capability which is not loaded yet answers
// ErrNotReady through its readiness check rather than failing silently.
package capability

import (
	"context"
	"errors"

	"github.com/pronas-suite/aicore/pkg/domain"
)

var ErrNotReady = errors.New("capability is not ready")

// Sentiment is a sentiment classification outcome.
type Sentiment struct {
	Label string
	Score float64
}

// Negative reports whether the label counts as a negative tone.
func (s Sentiment) Negative() bool {
	switch s.Label {
	case "1 star", "2 stars", "negative":
		return true
	default:
		return false
	}
}

type Embedder interface {
	// Embed returns the embedding vector of text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (Sentiment, error)
}

type EntityTagger interface {
	// Tag returns named entity spans found in text.
	Tag(ctx context.Context, text string) ([]domain.EntitySpan, error)
}

// Table is tabular data extracted from a document.
type Table struct {
	Name string
	Rows [][]string
}

type TextExtractor interface {
	// ExtractText returns the plain text of the document behind handle.
	ExtractText(ctx context.Context, document string) (string, error)

	// ExtractTables returns tabular data found in the document.
	ExtractTables(ctx context.Context, document string) ([]Table, error)
}

type Renderer interface {
	// Render turns a finished structure into user-facing artifacts,
	// one handle per requested format.
	Render(ctx context.Context, p domain.ProjectStructure, formats []string) (map[string]string, error)
}

// ReadinessChecker is implemented by capabilities which load models.
type ReadinessChecker interface {
	// Ready returns nil when the capability can serve, or an error
	// (wrapping ErrNotReady when applicable) describing why not.
	Ready(ctx context.Context) error
}
