package githubapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hoshino0112/github-issue-exporter/internal/errors"
)

func TestIsRepositoryURL(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "plain repository URL", input: "https://github.com/o/r", expected: true},
		{name: "trailing slash", input: "https://github.com/o/r/", expected: true},
		{name: "query parameters", input: "https://github.com/acme/widgets?tab=issues", expected: true},
		{name: "extra path segments", input: "https://github.com/o/r/extra/path", expected: false},
		{name: "wrong host", input: "https://example.com/o/r", expected: false},
		{name: "owner only", input: "https://github.com/o", expected: false},
		{name: "empty string", input: "", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsRepositoryURL(DefaultBaseURL, tc.input))
		})
	}
}

func TestParseOwnerAndRepo(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedOwner string
		expectedRepo  string
		expectError   bool
	}{
		{name: "plain URL", input: "https://github.com/acme/widgets", expectedOwner: "acme", expectedRepo: "widgets"},
		{name: "query suffix stripped", input: "https://github.com/acme/widgets?tab=issues", expectedOwner: "acme", expectedRepo: "widgets"},
		{name: "trailing slash stripped", input: "https://github.com/acme/widgets/", expectedOwner: "acme", expectedRepo: "widgets"},
		{name: "not a repository URL", input: "https://example.com/acme/widgets", expectError: true},
		{name: "too many segments", input: "https://github.com/acme/widgets/issues/1", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, err := ParseOwnerAndRepo(DefaultBaseURL, tc.input)
			if tc.expectError {
				require.Error(t, err)
				assert.True(t, apperrors.IsInvalidRepositoryURL(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedOwner, owner)
			assert.Equal(t, tc.expectedRepo, repo)
		})
	}
}

func TestParseOwnerAndRepo_CustomBaseURL(t *testing.T) {
	owner, repo, err := ParseOwnerAndRepo("https://github.example.org/", "https://github.example.org/acme/widgets")
	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets", repo)

	// Matching works whether or not the configured base carries a trailing slash
	_, _, err = ParseOwnerAndRepo("https://github.example.org", "https://github.example.org/acme/widgets")
	require.NoError(t, err)
}
