package exporter

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hoshino0112/github-issue-exporter/internal/domain"
	"github.com/hoshino0112/github-issue-exporter/internal/githubapi"
	"github.com/hoshino0112/github-issue-exporter/internal/storage"
)

// Exporter fetches a repository's issues and writes them to a local file
type Exporter struct {
	api     githubapi.API
	baseURL string
	archive storage.Archive
	logger  *log.Logger
}

// Options controls a single export run
type Options struct {
	// Outfile is the destination path. Empty means <repo>.json.
	Outfile string

	// IncludePullRequests adds the prs category to the bundle
	IncludePullRequests bool

	// IgnoreClosed drops closed entities before writing
	IgnoreClosed bool
}

// New creates an Exporter. The archive may be nil, in which case runs
// are not recorded.
func New(api githubapi.API, baseURL string, archive storage.Archive, logger *log.Logger) *Exporter {
	return &Exporter{
		api:     api,
		baseURL: baseURL,
		archive: archive,
		logger:  logger,
	}
}

// Run exports the issues (and optionally pull requests) of the
// repository at repoURL. An export that would produce an empty bundle
// writes nothing: clobbering a previous export file with an empty
// document helps nobody.
func (e *Exporter) Run(ctx context.Context, repoURL string, opts Options) error {
	owner, repo, err := githubapi.ParseOwnerAndRepo(e.baseURL, repoURL)
	if err != nil {
		return err
	}

	issues, err := e.api.FetchIssues(ctx, owner, repo)
	if err != nil {
		return fmt.Errorf("failed to fetch issues: %w", err)
	}

	bundle := domain.Bundle{Issues: issues}
	if opts.IncludePullRequests {
		prs, err := e.api.FetchPullRequests(ctx, owner, repo)
		if err != nil {
			return fmt.Errorf("failed to fetch pull requests: %w", err)
		}
		if prs == nil {
			prs = []domain.PullRequest{}
		}
		bundle.PullRequests = prs
	}
	if opts.IgnoreClosed {
		bundle = dropClosed(bundle)
	}

	e.logger.Printf("found %d issues in GH repo %s", len(bundle.Issues), repo)

	if bundle.Empty() {
		e.logger.Printf("warning: no issues found, not writing anything")
		return nil
	}

	outfile := opts.Outfile
	if outfile == "" {
		outfile = repo + ".json"
	}

	data, err := bundle.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	if err := os.WriteFile(outfile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outfile, err)
	}
	e.logger.Printf("issues written to file %s", outfile)

	e.recordRun(ctx, owner, repo, bundle, outfile)
	return nil
}

// recordRun stores the run in the archive. Archive failures do not fail
// the export: the file is already on disk.
func (e *Exporter) recordRun(ctx context.Context, owner, repo string, bundle domain.Bundle, outfile string) {
	if e.archive == nil {
		return
	}
	run := &domain.ExportRun{
		ID:           uuid.New().String(),
		Owner:        owner,
		Repo:         repo,
		Issues:       len(bundle.Issues),
		PullRequests: len(bundle.PullRequests),
		Outfile:      outfile,
		CreatedAt:    time.Now(),
	}
	if err := e.archive.SaveRun(ctx, run); err != nil {
		e.logger.Printf("warning: failed to record export run: %v", err)
	}
}

// dropClosed filters closed entities out of the bundle, keeping order
func dropClosed(bundle domain.Bundle) domain.Bundle {
	filtered := domain.Bundle{Issues: []domain.Issue{}}
	for _, issue := range bundle.Issues {
		if issue.State != domain.StateClosed {
			filtered.Issues = append(filtered.Issues, issue)
		}
	}
	if bundle.PullRequests != nil {
		filtered.PullRequests = []domain.PullRequest{}
		for _, pr := range bundle.PullRequests {
			if pr.State != domain.StateClosed {
				filtered.PullRequests = append(filtered.PullRequests, pr)
			}
		}
	}
	return filtered
}
