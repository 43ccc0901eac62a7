package importer

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoshino0112/github-issue-exporter/internal/domain"
	apperrors "github.com/hoshino0112/github-issue-exporter/internal/errors"
)

// fakeAPI stands in for the GitHub client and records every call
type fakeAPI struct {
	remote     []domain.Issue
	fetchCalls int
	created    []domain.Issue
	// failOnCall is the 1-based creation call that gets rejected
	failOnCall int
}

func (f *fakeAPI) FetchIssues(ctx context.Context, owner, repo string) ([]domain.Issue, error) {
	f.fetchCalls++
	return f.remote, nil
}

func (f *fakeAPI) FetchPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error) {
	return nil, nil
}

func (f *fakeAPI) CreateIssue(ctx context.Context, owner, repo string, issue domain.Issue) error {
	f.created = append(f.created, issue)
	if f.failOnCall != 0 && len(f.created) == f.failOnCall {
		return apperrors.NewRemoteWriteError(422, `{"message": "Validation Failed"}`)
	}
	return nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func writeIssuesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "issues.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMissing(t *testing.T) {
	testCases := []struct {
		name     string
		local    []domain.Issue
		remote   []domain.Issue
		expected []string // titles, in order
	}{
		{
			name:     "remote match excluded regardless of number",
			local:    []domain.Issue{{Title: "A", Body: "x"}, {Title: "B", Body: "y"}},
			remote:   []domain.Issue{{Title: "A", Body: "x", Number: 1}},
			expected: []string{"B"},
		},
		{
			name:     "local duplicates collapsed",
			local:    []domain.Issue{{Title: "B", Body: "y"}, {Title: "B", Body: "y", Number: 4}},
			remote:   nil,
			expected: []string{"B"},
		},
		{
			name:     "local file order preserved",
			local:    []domain.Issue{{Title: "C"}, {Title: "A"}, {Title: "B"}},
			remote:   []domain.Issue{{Title: "A"}},
			expected: []string{"C", "B"},
		},
		{
			name:     "nothing missing",
			local:    []domain.Issue{{Title: "A", Body: "x"}},
			remote:   []domain.Issue{{Title: "A", Body: "x", Number: 3}},
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			missing := Missing(tc.local, tc.remote)
			titles := make([]string, 0, len(missing))
			for _, issue := range missing {
				titles = append(titles, issue.Title)
			}
			if tc.expected == nil {
				assert.Empty(t, titles)
			} else {
				assert.Equal(t, tc.expected, titles)
			}
		})
	}
}

func TestImporter_Run(t *testing.T) {
	api := &fakeAPI{remote: []domain.Issue{{Title: "A", Body: "x", Number: 1}}}
	imp := New(api, "https://github.com/", discardLogger())

	file := writeIssuesFile(t, `[{"title": "A", "body": "x"}, {"title": "B", "body": "y"}, {"title": "C"}]`)
	err := imp.Run(context.Background(), "https://github.com/acme/widgets", file, Options{})
	require.NoError(t, err)

	require.Len(t, api.created, 2)
	assert.Equal(t, "B", api.created[0].Title)
	assert.Equal(t, "C", api.created[1].Title)
}

func TestImporter_Run_FailFast(t *testing.T) {
	api := &fakeAPI{failOnCall: 2}
	imp := New(api, "https://github.com/", discardLogger())

	file := writeIssuesFile(t, `[{"title": "A"}, {"title": "B"}, {"title": "C"}]`)
	err := imp.Run(context.Background(), "https://github.com/acme/widgets", file, Options{})

	require.Error(t, err)
	assert.True(t, apperrors.IsRemoteWrite(err))
	assert.Contains(t, err.Error(), "Validation Failed")
	// The third creation call is never issued after the second fails
	assert.Len(t, api.created, 2)
}

func TestImporter_Run_InvalidFileBeforeNetwork(t *testing.T) {
	api := &fakeAPI{}
	imp := New(api, "https://github.com/", discardLogger())

	file := writeIssuesFile(t, `{"this is": "not an issue collection`)
	err := imp.Run(context.Background(), "https://github.com/acme/widgets", file, Options{})

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidFileFormat(err))
	assert.Zero(t, api.fetchCalls, "a malformed file must fail before any network call")
	assert.Empty(t, api.created)
}

func TestImporter_Run_InvalidRepositoryURL(t *testing.T) {
	api := &fakeAPI{}
	imp := New(api, "https://github.com/", discardLogger())

	file := writeIssuesFile(t, `[{"title": "A"}]`)
	err := imp.Run(context.Background(), "https://example.com/acme/widgets", file, Options{})

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidRepositoryURL(err))
	assert.Empty(t, api.created)
}

func TestImporter_Run_DeleteUnsupported(t *testing.T) {
	api := &fakeAPI{}
	imp := New(api, "https://github.com/", discardLogger())

	file := writeIssuesFile(t, `[{"title": "A"}]`)
	err := imp.Run(context.Background(), "https://github.com/acme/widgets", file, Options{DeleteMissing: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not implemented")
	assert.Zero(t, api.fetchCalls)
	assert.Empty(t, api.created)
}

func TestImporter_Run_IgnoreClosed(t *testing.T) {
	api := &fakeAPI{}
	imp := New(api, "https://github.com/", discardLogger())

	file := writeIssuesFile(t, `[{"title": "A", "state": "closed"}, {"title": "B", "state": "open"}]`)
	err := imp.Run(context.Background(), "https://github.com/acme/widgets", file, Options{IgnoreClosed: true})
	require.NoError(t, err)

	require.Len(t, api.created, 1)
	assert.Equal(t, "B", api.created[0].Title)
}

func TestLoadIssues_BundleDocument(t *testing.T) {
	file := writeIssuesFile(t, `{"issues": [{"title": "A"}], "prs": []}`)
	issues, err := LoadIssues(file)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "A", issues[0].Title)
}
