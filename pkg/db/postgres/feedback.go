package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	kdb "github.com/pronas-suite/aicore/pkg/db"
	"github.com/pronas-suite/aicore/pkg/domain"
	xe "github.com/pronas-suite/aicore/pkg/errors"
)

type feedbackPG struct {
	pool *pgxpool.Pool
}

var _ kdb.FeedbackInterface = &feedbackPG{}

func (f *feedbackPG) Append(ctx context.Context, entry domain.FeedbackEntry) error {
	_, err := f.pool.Exec(
		ctx,
		`
		insert into "feedback" ("project_id", "feedback_type", "payload", "created_at")
		values ($1, $2, $3, $4)
		`,
		entry.ProjectId, entry.FeedbackType, []byte(entry.Payload), entry.Timestamp,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (f *feedbackPG) CountSince(ctx context.Context, since time.Time) (int, error) {
	count := 0
	err := f.pool.QueryRow(
		ctx,
		`select count(*) from "feedback" where "created_at" >= $1`,
		since,
	).Scan(&count)
	if err != nil {
		return 0, xe.Wrap(err)
	}
	return count, nil
}

func (f *feedbackPG) ScanSince(ctx context.Context, since time.Time, handler func(domain.FeedbackEntry) error) error {
	rows, err := f.pool.Query(
		ctx,
		`
		select "project_id", "feedback_type", "payload", "created_at" from "feedback"
		where "created_at" >= $1
		order by "id"
		`,
		since,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		entry := domain.FeedbackEntry{}
		payload := []byte{}
		if err := rows.Scan(&entry.ProjectId, &entry.FeedbackType, &payload, &entry.Timestamp); err != nil {
			return xe.Wrap(err)
		}
		entry.Payload = payload
		if err := handler(entry); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return xe.Wrap(err)
	}
	return nil
}
