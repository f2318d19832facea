package mocks

import (
	kdb "github.com/pronas-suite/aicore/pkg/db"
)

type Database struct {
	ProjectsImpl *ProjectInterface
	ApprovedImpl *ApprovedInterface
	FeedbackImpl *FeedbackInterface
}

func NewDatabase() *Database {
	return &Database{
		ProjectsImpl: NewProjectInterface(),
		ApprovedImpl: NewApprovedInterface(),
		FeedbackImpl: NewFeedbackInterface(),
	}
}

var _ kdb.Database = &Database{}

func (m *Database) Projects() kdb.ProjectInterface {
	return m.ProjectsImpl
}

func (m *Database) Approved() kdb.ApprovedInterface {
	return m.ApprovedImpl
}

func (m *Database) Feedback() kdb.FeedbackInterface {
	return m.FeedbackImpl
}

func (m *Database) Close() error {
	return nil
}
