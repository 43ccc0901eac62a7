package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/hoshino0112/github-issue-exporter/internal/domain"
	"github.com/hoshino0112/github-issue-exporter/internal/storage"
)

// postgresArchive implements the Archive interface for PostgreSQL
type postgresArchive struct {
	db *sql.DB
}

// NewPostgresArchive creates a new PostgreSQL archive instance
func NewPostgresArchive(connStr string) (storage.Archive, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	a := &postgresArchive{db: db}
	if err := a.Migrate(context.Background()); err != nil {
		return nil, err
	}

	return a, nil
}

// Migrate runs database migrations
func (a *postgresArchive) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS export_runs (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		repo TEXT NOT NULL,
		issues INTEGER NOT NULL,
		pull_requests INTEGER NOT NULL,
		outfile TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_export_runs_repo ON export_runs(owner, repo);
	CREATE INDEX IF NOT EXISTS idx_export_runs_created_at ON export_runs(created_at);
	`

	_, err := a.db.ExecContext(ctx, schema)
	return err
}

// SaveRun records a completed export
func (a *postgresArchive) SaveRun(ctx context.Context, run *domain.ExportRun) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO export_runs (id, owner, repo, issues, pull_requests, outfile, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.Owner, run.Repo, run.Issues, run.PullRequests, run.Outfile, run.CreatedAt)
	return err
}

// ListRuns returns recorded runs, newest first
func (a *postgresArchive) ListRuns(ctx context.Context, repo string) ([]*domain.ExportRun, error) {
	query := `
		SELECT id, owner, repo, issues, pull_requests, outfile, created_at
		FROM export_runs
		ORDER BY created_at DESC
	`
	args := []interface{}{}
	if repo != "" {
		query = `
			SELECT id, owner, repo, issues, pull_requests, outfile, created_at
			FROM export_runs
			WHERE repo = $1
			ORDER BY created_at DESC
		`
		args = append(args, repo)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.ExportRun
	for rows.Next() {
		run := &domain.ExportRun{}
		if err := rows.Scan(&run.ID, &run.Owner, &run.Repo, &run.Issues, &run.PullRequests, &run.Outfile, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database connection
func (a *postgresArchive) Close() error {
	return a.db.Close()
}
