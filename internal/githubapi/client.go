package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/hoshino0112/github-issue-exporter/internal/domain"
	apperrors "github.com/hoshino0112/github-issue-exporter/internal/errors"
)

// apiVersion is the GitHub REST API version sent on creation calls
const apiVersion = "2022-11-28"

const requestTimeout = 30 * time.Second

// Client is the GitHub REST API client
type Client struct {
	apiURL     string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a GitHub API client. When token is non-empty every
// request carries it as an Authorization bearer header through the
// oauth2 transport.
func NewClient(apiURL, token string, logger *log.Logger) *Client {
	httpClient := &http.Client{Timeout: requestTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = requestTimeout
	}

	return &Client{
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchIssues retrieves all issues for owner/repo, following pagination
func (c *Client) FetchIssues(ctx context.Context, owner, repo string) ([]domain.Issue, error) {
	var issues []domain.Issue
	err := c.fetchPages(ctx, c.issuesURL(owner, repo), repo, func(raw json.RawMessage) error {
		issue, err := domain.ParseIssue(raw)
		if err != nil {
			return fmt.Errorf("failed to parse issue record: %w", err)
		}
		issues = append(issues, issue)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// FetchPullRequests retrieves all pull requests for owner/repo, following pagination
func (c *Client) FetchPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error) {
	var prs []domain.PullRequest
	err := c.fetchPages(ctx, c.pullsURL(owner, repo), repo, func(raw json.RawMessage) error {
		pr, err := domain.ParsePullRequest(raw)
		if err != nil {
			return fmt.Errorf("failed to parse pull request record: %w", err)
		}
		prs = append(prs, pr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prs, nil
}

// CreateIssue creates the issue in owner/repo. A response status >= 300
// fails with a remote write error carrying the response payload verbatim.
func (c *Client) CreateIssue(ctx context.Context, owner, repo string, issue domain.Issue) error {
	payload, err := json.Marshal(issue.CreatePayload())
	if err != nil {
		return fmt.Errorf("failed to encode issue: %w", err)
	}

	createURL := c.issuesURL(owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, createURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	c.logger.Printf("POST %s (%s)", createURL, issue.Title)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(createURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return apperrors.NewRemoteWriteError(resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) issuesURL(owner, repo string) string {
	return fmt.Sprintf("%s/repos/%s/%s/issues", c.apiURL, owner, repo)
}

func (c *Client) pullsURL(owner, repo string) string {
	return fmt.Sprintf("%s/repos/%s/%s/pulls", c.apiURL, owner, repo)
}
