package mocks

import (
	"context"
	"errors"
	"time"

	kdb "github.com/pronas-suite/aicore/pkg/db"
	"github.com/pronas-suite/aicore/pkg/domain"
)

type FeedbackInterface struct {
	Impl struct {
		Append     func(context.Context, domain.FeedbackEntry) error
		CountSince func(context.Context, time.Time) (int, error)
		ScanSince  func(context.Context, time.Time, func(domain.FeedbackEntry) error) error
	}
	Calls struct {
		Append     CallLog[struct{ Entry domain.FeedbackEntry }]
		CountSince CallLog[struct{ Since time.Time }]
		ScanSince  CallLog[struct{ Since time.Time }]
	}
}

func NewFeedbackInterface() *FeedbackInterface {
	return &FeedbackInterface{}
}

var _ kdb.FeedbackInterface = &FeedbackInterface{}

func (m *FeedbackInterface) Append(ctx context.Context, entry domain.FeedbackEntry) error {
	m.Calls.Append = append(m.Calls.Append, struct{ Entry domain.FeedbackEntry }{Entry: entry})
	if m.Impl.Append != nil {
		return m.Impl.Append(ctx, entry)
	}
	panic(errors.New("it should not be called"))
}

func (m *FeedbackInterface) CountSince(ctx context.Context, since time.Time) (int, error) {
	m.Calls.CountSince = append(m.Calls.CountSince, struct{ Since time.Time }{Since: since})
	if m.Impl.CountSince != nil {
		return m.Impl.CountSince(ctx, since)
	}
	panic(errors.New("it should not be called"))
}

func (m *FeedbackInterface) ScanSince(ctx context.Context, since time.Time, handler func(domain.FeedbackEntry) error) error {
	m.Calls.ScanSince = append(m.Calls.ScanSince, struct{ Since time.Time }{Since: since})
	if m.Impl.ScanSince != nil {
		return m.Impl.ScanSince(ctx, since, handler)
	}
	panic(errors.New("it should not be called"))
}
