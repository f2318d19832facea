// Package db declares the persistence interfaces of the proposal
// pipeline. Implementations live in subpackages (postgres, mocks).
package db

import (
	"context"
	"errors"
	"time"

	"github.com/pronas-suite/aicore/pkg/domain"
)

var (
	// ErrMissing means the requested record is not found.
	ErrMissing = errors.New("record is missing")

	// ErrAlreadyExists means a record with the same identity is registered.
	ErrAlreadyExists = errors.New("record already exists")
)

type Database interface {
	Projects() ProjectInterface
	Approved() ApprovedInterface
	Feedback() FeedbackInterface
	Close() error
}

type ProjectInterface interface {
	// Register stores a newly synthesized project structure.
	//
	// Returns ErrAlreadyExists (wrapped) when the project id is taken.
	Register(ctx context.Context, p domain.ProjectStructure) error

	// Get returns the project structure with projectId.
	//
	// Returns ErrMissing (wrapped) when no such project is registered.
	Get(ctx context.Context, projectId string) (domain.ProjectStructure, error)
}

// FieldExample is a reference text for one proposal field, taken from a
// project which passed evaluation.
type FieldExample struct {
	ProjectId string
	Field     string
	Text      string
}

type ApprovedInterface interface {
	// ExamplesFor returns up to limit reference texts of field from
	// approved projects, most recent first.
	ExamplesFor(ctx context.Context, field string, limit int) ([]FieldExample, error)

	// CountSimilar returns how many approved projects share projectType.
	CountSimilar(ctx context.Context, projectType domain.ProjectType) (int, error)
}

type FeedbackInterface interface {
	// Append adds an entry to the feedback ledger. The ledger is
	// append-only; entries are never updated nor removed.
	Append(ctx context.Context, entry domain.FeedbackEntry) error

	// CountSince returns how many entries arrived at or after since.
	CountSince(ctx context.Context, since time.Time) (int, error)

	// ScanSince calls handler for each entry at or after since, in
	// arrival order. A handler error stops the scan and is returned.
	ScanSince(ctx context.Context, since time.Time, handler func(domain.FeedbackEntry) error) error
}
