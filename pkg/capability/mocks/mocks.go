package mocks

import (
	"context"
	"errors"

	"github.com/pronas-suite/aicore/pkg/capability"
	"github.com/pronas-suite/aicore/pkg/domain"
)

type Embedder struct {
	Impl struct {
		Embed func(context.Context, string) ([]float32, error)
	}
	Calls struct {
		Embed CallLog[struct{ Text string }]
	}
}

func NewEmbedder() *Embedder {
	return &Embedder{}
}

var _ capability.Embedder = &Embedder{}

func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Calls.Embed = append(m.Calls.Embed, struct{ Text string }{Text: text})
	if m.Impl.Embed != nil {
		return m.Impl.Embed(ctx, text)
	}
	panic(errors.New("it should not be called"))
}

type SentimentClassifier struct {
	Impl struct {
		Classify func(context.Context, string) (capability.Sentiment, error)
	}
	Calls struct {
		Classify CallLog[struct{ Text string }]
	}
}

func NewSentimentClassifier() *SentimentClassifier {
	return &SentimentClassifier{}
}

var _ capability.SentimentClassifier = &SentimentClassifier{}

func (m *SentimentClassifier) Classify(ctx context.Context, text string) (capability.Sentiment, error) {
	m.Calls.Classify = append(m.Calls.Classify, struct{ Text string }{Text: text})
	if m.Impl.Classify != nil {
		return m.Impl.Classify(ctx, text)
	}
	panic(errors.New("it should not be called"))
}

type EntityTagger struct {
	Impl struct {
		Tag func(context.Context, string) ([]domain.EntitySpan, error)
	}
	Calls struct {
		Tag CallLog[struct{ Text string }]
	}
}

func NewEntityTagger() *EntityTagger {
	return &EntityTagger{}
}

var _ capability.EntityTagger = &EntityTagger{}

func (m *EntityTagger) Tag(ctx context.Context, text string) ([]domain.EntitySpan, error) {
	m.Calls.Tag = append(m.Calls.Tag, struct{ Text string }{Text: text})
	if m.Impl.Tag != nil {
		return m.Impl.Tag(ctx, text)
	}
	panic(errors.New("it should not be called"))
}

type TextExtractor struct {
	Impl struct {
		ExtractText   func(context.Context, string) (string, error)
		ExtractTables func(context.Context, string) ([]capability.Table, error)
	}
	Calls struct {
		ExtractText   CallLog[struct{ Document string }]
		ExtractTables CallLog[struct{ Document string }]
	}
}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

var _ capability.TextExtractor = &TextExtractor{}

func (m *TextExtractor) ExtractText(ctx context.Context, document string) (string, error) {
	m.Calls.ExtractText = append(m.Calls.ExtractText, struct{ Document string }{Document: document})
	if m.Impl.ExtractText != nil {
		return m.Impl.ExtractText(ctx, document)
	}
	panic(errors.New("it should not be called"))
}

func (m *TextExtractor) ExtractTables(ctx context.Context, document string) ([]capability.Table, error) {
	m.Calls.ExtractTables = append(m.Calls.ExtractTables, struct{ Document string }{Document: document})
	if m.Impl.ExtractTables != nil {
		return m.Impl.ExtractTables(ctx, document)
	}
	panic(errors.New("it should not be called"))
}

type Renderer struct {
	Impl struct {
		Render func(context.Context, domain.ProjectStructure, []string) (map[string]string, error)
	}
	Calls struct {
		Render CallLog[struct {
			Structure domain.ProjectStructure
			Formats   []string
		}]
	}
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

var _ capability.Renderer = &Renderer{}

func (m *Renderer) Render(ctx context.Context, p domain.ProjectStructure, formats []string) (map[string]string, error) {
	m.Calls.Render = append(m.Calls.Render, struct {
		Structure domain.ProjectStructure
		Formats   []string
	}{Structure: p, Formats: formats})
	if m.Impl.Render != nil {
		return m.Impl.Render(ctx, p, formats)
	}
	panic(errors.New("it should not be called"))
}

type ReadinessChecker struct {
	Impl struct {
		Ready func(context.Context) error
	}
	Calls struct {
		Ready CallLog[struct{}]
	}
}

func NewReadinessChecker() *ReadinessChecker {
	return &ReadinessChecker{}
}

var _ capability.ReadinessChecker = &ReadinessChecker{}

func (m *ReadinessChecker) Ready(ctx context.Context) error {
	m.Calls.Ready = append(m.Calls.Ready, struct{}{})
	if m.Impl.Ready != nil {
		return m.Impl.Ready(ctx)
	}
	panic(errors.New("it should not be called"))
}
