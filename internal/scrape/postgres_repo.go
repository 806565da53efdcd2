package scrape

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, run *Run) error {
	const sql = `
		INSERT INTO scrape_runs (id, requested_by, status, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, sql, run.ID, run.RequestedBy, string(run.Status), run.CreatedAt)
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE scrape_runs SET
			status = $1,
			job_id = $2,
			error = $3,
			finished_at = $4
		WHERE id = $5`

	tag, err := r.db.Exec(ctx, sql, string(run.Status), run.JobID, run.Error, run.FinishedAt, run.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRunNotFound
	}
	return nil
}

const selectRun = `
	SELECT id::text, requested_by, status, job_id, error, created_at, finished_at
	FROM scrape_runs`

func scanRun(row pgx.Row) (Run, error) {
	var run Run
	var status string
	err := row.Scan(&run.ID, &run.RequestedBy, &status, &run.JobID, &run.Error, &run.CreatedAt, &run.FinishedAt)
	run.Status = Status(status)
	return run, err
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Run, error) {
	run, err := scanRun(r.db.QueryRow(ctx, selectRun+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	return run, err
}

func (r *PostgresRepo) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.Query(ctx, selectRun+` ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
