package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	kdb "github.com/pronas-suite/aicore/pkg/db"
	"github.com/pronas-suite/aicore/pkg/domain"
	xe "github.com/pronas-suite/aicore/pkg/errors"
)

// approvedPG reads the approved-project catalog. Rows are registered by
// the evaluation system, not by this service.
type approvedPG struct {
	pool *pgxpool.Pool
}

var _ kdb.ApprovedInterface = &approvedPG{}

func (a *approvedPG) ExamplesFor(ctx context.Context, field string, limit int) ([]kdb.FieldExample, error) {
	rows, err := a.pool.Query(
		ctx,
		`
		select "project_id", "field", "text" from "approved_example"
		where "field" = $1
		order by "registered_at" desc
		limit $2
		`,
		field, limit,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	examples := []kdb.FieldExample{}
	for rows.Next() {
		ex := kdb.FieldExample{}
		if err := rows.Scan(&ex.ProjectId, &ex.Field, &ex.Text); err != nil {
			return nil, xe.Wrap(err)
		}
		examples = append(examples, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return examples, nil
}

func (a *approvedPG) CountSimilar(ctx context.Context, projectType domain.ProjectType) (int, error) {
	count := 0
	err := a.pool.QueryRow(
		ctx,
		`select count(*) from "approved_project" where "project_type" = $1`,
		projectType.String(),
	).Scan(&count)
	if err != nil {
		return 0, xe.Wrap(err)
	}
	return count, nil
}
