package importer

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hoshino0112/github-issue-exporter/internal/domain"
	apperrors "github.com/hoshino0112/github-issue-exporter/internal/errors"
	"github.com/hoshino0112/github-issue-exporter/internal/githubapi"
)

// Importer creates the issues of a local export file that are missing
// from a remote repository
type Importer struct {
	api     githubapi.API
	baseURL string
	logger  *log.Logger
}

// Options controls a single import run
type Options struct {
	// IgnoreClosed drops closed local issues from the candidate set
	IgnoreClosed bool

	// DeleteMissing would delete remote issues absent from the local
	// file. Declared in the CLI contract but not implemented: there is
	// no agreed reconciliation-with-deletion behavior yet.
	DeleteMissing bool
}

// New creates an Importer
func New(api githubapi.API, baseURL string, logger *log.Logger) *Importer {
	return &Importer{
		api:     api,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Run imports the issues of issuesFile that are not present in the
// repository at repoURL. Creation calls run sequentially and the first
// rejected call aborts the run: a partial import with unclear error
// attribution is worse than stopping early.
func (imp *Importer) Run(ctx context.Context, repoURL, issuesFile string, opts Options) error {
	if opts.DeleteMissing {
		return apperrors.NewUnsupported("issue deletion is not implemented, run without --delete-issues")
	}

	// Validate the local file before any network call so a malformed
	// file cannot surface mid-run, after remote mutation started.
	local, err := LoadIssues(issuesFile)
	if err != nil {
		return err
	}

	owner, repo, err := githubapi.ParseOwnerAndRepo(imp.baseURL, repoURL)
	if err != nil {
		return err
	}

	remote, err := imp.api.FetchIssues(ctx, owner, repo)
	if err != nil {
		return fmt.Errorf("failed to fetch remote issues: %w", err)
	}

	if opts.IgnoreClosed {
		local = dropClosed(local)
	}

	imp.logger.Printf("found %d issues in GH repo %s", len(remote), repo)
	imp.logger.Printf("found %d issues in file %s", len(local), issuesFile)

	missing := Missing(local, remote)
	imp.logger.Printf("%d issues to import", len(missing))

	for _, issue := range missing {
		if err := imp.api.CreateIssue(ctx, owner, repo, issue); err != nil {
			return fmt.Errorf("failed to import issue %q: %w", issue.Title, err)
		}
		imp.logger.Printf("imported issue %s", issue.Title)
	}
	return nil
}

// Missing returns the local issues whose content identity is absent from
// remote. Identity is the title+body key, never the remote-assigned
// number. Local order is preserved and duplicate identities collapsed,
// so one run always issues the same creations in the same order.
func Missing(local, remote []domain.Issue) []domain.Issue {
	present := make(map[domain.IdentityKey]bool, len(remote))
	for _, issue := range remote {
		present[issue.IdentityKey()] = true
	}

	var missing []domain.Issue
	for _, issue := range local {
		key := issue.IdentityKey()
		if present[key] {
			continue
		}
		present[key] = true
		missing = append(missing, issue)
	}
	return missing
}

// LoadIssues reads issues from a local export file. Both the bundle
// document and the legacy bare array of issues are accepted.
func LoadIssues(filename string) ([]domain.Issue, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	bundle, err := domain.DecodeBundle(data)
	if err != nil {
		return nil, apperrors.NewInvalidFileFormat(filename, err)
	}
	return bundle.Issues, nil
}

// dropClosed filters closed issues, keeping order
func dropClosed(issues []domain.Issue) []domain.Issue {
	var open []domain.Issue
	for _, issue := range issues {
		if issue.State != domain.StateClosed {
			open = append(open, issue)
		}
	}
	return open
}
