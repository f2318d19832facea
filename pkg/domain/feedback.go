package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrEmptyFeedback = errors.New("feedback entry misses project id or type")

// FeedbackEntry is one outcome feedback record.
//
// Append-only: created on every feedback submission, never mutated,
// periodically consumed (not deleted) by retraining.
type FeedbackEntry struct {
	ProjectId    string
	FeedbackType string
	Payload      json.RawMessage
	Timestamp    time.Time
}

// NewFeedbackEntry validates the shape once at the ingestion boundary.
func NewFeedbackEntry(projectId string, feedbackType string, payload json.RawMessage) (FeedbackEntry, error) {
	if projectId == "" || feedbackType == "" {
		return FeedbackEntry{}, ErrEmptyFeedback
	}
	if payload == nil {
		payload = json.RawMessage("{}")
	}
	return FeedbackEntry{
		ProjectId:    projectId,
		FeedbackType: feedbackType,
		Payload:      payload,
		Timestamp:    time.Now(),
	}, nil
}
