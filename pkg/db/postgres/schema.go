package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	xe "github.com/pronas-suite/aicore/pkg/errors"
)

var schema = []string{
	`create table if not exists "project" (
		"project_id" varchar(128) primary key,
		"institution_id" varchar(128) not null,
		"project_type" varchar(32) not null,
		"structure" jsonb not null,
		"quality_score" double precision not null,
		"confidence" double precision not null,
		"generated_at" timestamp with time zone not null default now()
	)`,
	`create index if not exists "idx_project_type" on "project" ("project_type")`,

	`create table if not exists "approved_project" (
		"project_id" varchar(128) primary key,
		"project_type" varchar(32) not null,
		"registered_at" timestamp with time zone not null default now()
	)`,
	`create index if not exists "idx_approved_project_type" on "approved_project" ("project_type")`,

	`create table if not exists "approved_example" (
		"id" bigserial primary key,
		"project_id" varchar(128) not null,
		"field" varchar(64) not null,
		"text" text not null,
		"registered_at" timestamp with time zone not null default now()
	)`,
	`create index if not exists "idx_approved_example_field" on "approved_example" ("field", "registered_at" desc)`,

	`create table if not exists "feedback" (
		"id" bigserial primary key,
		"project_id" varchar(128) not null,
		"feedback_type" varchar(64) not null,
		"payload" jsonb,
		"created_at" timestamp with time zone not null default now()
	)`,
	`create index if not exists "idx_feedback_created_at" on "feedback" ("created_at")`,
}

// ensureSchema creates the tables this package reads and writes.
// Every statement is idempotent.
func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, ddl := range schema {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return xe.Wrap(err)
		}
	}
	return nil
}
