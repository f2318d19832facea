package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	kdb "github.com/pronas-suite/aicore/pkg/db"
	"github.com/pronas-suite/aicore/pkg/domain"
	xe "github.com/pronas-suite/aicore/pkg/errors"
)

type projectPG struct {
	pool *pgxpool.Pool
}

var _ kdb.ProjectInterface = &projectPG{}

func (p *projectPG) Register(ctx context.Context, proj domain.ProjectStructure) error {
	structure, err := json.Marshal(proj)
	if err != nil {
		return xe.Wrap(err)
	}

	_, err = p.pool.Exec(
		ctx,
		`
		insert into "project" (
			"project_id", "institution_id", "project_type",
			"structure", "quality_score", "confidence", "generated_at"
		) values ($1, $2, $3, $4, $5, $6, $7)
		`,
		proj.Id, proj.InstitutionId, proj.Type.String(),
		structure, proj.QualityScore, proj.Confidence, proj.GeneratedAt,
	)
	if err != nil {
		pgerr := &pgconn.PgError{}
		if errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
			return xe.Wrap(Duplicated{Table: "project", Identity: proj.Id})
		}
		return xe.Wrap(err)
	}
	return nil
}

func (p *projectPG) Get(ctx context.Context, projectId string) (domain.ProjectStructure, error) {
	structure := []byte{}
	err := p.pool.QueryRow(
		ctx,
		`select "structure" from "project" where "project_id" = $1`,
		projectId,
	).Scan(&structure)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ProjectStructure{}, xe.Wrap(
			Missing{Table: "project", Identity: projectId},
		)
	}
	if err != nil {
		return domain.ProjectStructure{}, xe.Wrap(err)
	}

	proj := domain.ProjectStructure{}
	if err := json.Unmarshal(structure, &proj); err != nil {
		return domain.ProjectStructure{}, xe.Wrap(err)
	}
	return proj, nil
}
