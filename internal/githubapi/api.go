package githubapi

import (
	"context"

	"github.com/hoshino0112/github-issue-exporter/internal/domain"
)

// API defines the GitHub operations the exporter and importer depend on
type API interface {
	// FetchIssues retrieves all issues for a repository, following pagination
	FetchIssues(ctx context.Context, owner, repo string) ([]domain.Issue, error)

	// FetchPullRequests retrieves all pull requests for a repository, following pagination
	FetchPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error)

	// CreateIssue creates a single issue in a repository
	CreateIssue(ctx context.Context, owner, repo string, issue domain.Issue) error
}
