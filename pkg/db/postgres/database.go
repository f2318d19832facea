// Package postgres implements the db interfaces on PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	kdb "github.com/pronas-suite/aicore/pkg/db"
	xe "github.com/pronas-suite/aicore/pkg/errors"
)

type database struct {
	pool     *pgxpool.Pool
	projects kdb.ProjectInterface
	approved kdb.ApprovedInterface
	feedback kdb.FeedbackInterface
}

var _ kdb.Database = &database{}

// New connects to the database at url and makes sure the tables it
// needs exist.
func New(ctx context.Context, url string) (kdb.Database, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	if err := ensureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &database{
		pool:     pool,
		projects: &projectPG{pool: pool},
		approved: &approvedPG{pool: pool},
		feedback: &feedbackPG{pool: pool},
	}, nil
}

func (d *database) Projects() kdb.ProjectInterface {
	return d.projects
}

func (d *database) Approved() kdb.ApprovedInterface {
	return d.approved
}

func (d *database) Feedback() kdb.FeedbackInterface {
	return d.feedback
}

func (d *database) Close() error {
	d.pool.Close()
	return nil
}
