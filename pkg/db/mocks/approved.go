package mocks

import (
	"context"
	"errors"

	kdb "github.com/pronas-suite/aicore/pkg/db"
	"github.com/pronas-suite/aicore/pkg/domain"
)

type ApprovedInterface struct {
	Impl struct {
		ExamplesFor  func(context.Context, string, int) ([]kdb.FieldExample, error)
		CountSimilar func(context.Context, domain.ProjectType) (int, error)
	}
	Calls struct {
		ExamplesFor CallLog[struct {
			Field string
			Limit int
		}]
		CountSimilar CallLog[struct{ ProjectType domain.ProjectType }]
	}
}

func NewApprovedInterface() *ApprovedInterface {
	return &ApprovedInterface{}
}

var _ kdb.ApprovedInterface = &ApprovedInterface{}

func (m *ApprovedInterface) ExamplesFor(ctx context.Context, field string, limit int) ([]kdb.FieldExample, error) {
	m.Calls.ExamplesFor = append(m.Calls.ExamplesFor, struct {
		Field string
		Limit int
	}{Field: field, Limit: limit})
	if m.Impl.ExamplesFor != nil {
		return m.Impl.ExamplesFor(ctx, field, limit)
	}
	panic(errors.New("it should not be called"))
}

func (m *ApprovedInterface) CountSimilar(ctx context.Context, projectType domain.ProjectType) (int, error) {
	m.Calls.CountSimilar = append(m.Calls.CountSimilar, struct{ ProjectType domain.ProjectType }{ProjectType: projectType})
	if m.Impl.CountSimilar != nil {
		return m.Impl.CountSimilar(ctx, projectType)
	}
	panic(errors.New("it should not be called"))
}
