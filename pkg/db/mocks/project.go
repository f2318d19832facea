package mocks

import (
	"context"
	"errors"

	kdb "github.com/pronas-suite/aicore/pkg/db"
	"github.com/pronas-suite/aicore/pkg/domain"
)

type ProjectInterface struct {
	Impl struct {
		Register func(context.Context, domain.ProjectStructure) error
		Get      func(context.Context, string) (domain.ProjectStructure, error)
	}
	Calls struct {
		Register CallLog[struct{ Project domain.ProjectStructure }]
		Get      CallLog[struct{ ProjectId string }]
	}
}

func NewProjectInterface() *ProjectInterface {
	return &ProjectInterface{}
}

var _ kdb.ProjectInterface = &ProjectInterface{}

func (m *ProjectInterface) Register(ctx context.Context, p domain.ProjectStructure) error {
	m.Calls.Register = append(m.Calls.Register, struct{ Project domain.ProjectStructure }{Project: p})
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, p)
	}
	panic(errors.New("it should not be called"))
}

func (m *ProjectInterface) Get(ctx context.Context, projectId string) (domain.ProjectStructure, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ ProjectId string }{ProjectId: projectId})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, projectId)
	}
	panic(errors.New("it should not be called"))
}
