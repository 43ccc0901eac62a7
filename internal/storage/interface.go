package storage

import (
	"context"

	"github.com/hoshino0112/github-issue-exporter/internal/domain"
)

// Archive is the abstract interface for the export-run history
type Archive interface {
	// SaveRun records a completed export
	SaveRun(ctx context.Context, run *domain.ExportRun) error

	// ListRuns returns recorded runs, newest first. An empty repo
	// matches every repository.
	ListRuns(ctx context.Context, repo string) ([]*domain.ExportRun, error)

	// Migration
	Migrate(ctx context.Context) error

	// Connection management
	Close() error
}
