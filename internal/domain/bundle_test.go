package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundle_RoundTrip(t *testing.T) {
	original := Bundle{
		Issues: []Issue{
			{Number: 1, Title: "A", Body: "x", State: StateOpen, Labels: []Label{"bug"}},
			{Number: 2, Title: "B", Body: "y", State: StateClosed},
		},
		PullRequests: []PullRequest{
			{Number: 3, Title: "C", Head: BranchRef{Ref: "feature"}, Base: BranchRef{Ref: "main"}},
		},
	}

	data, err := original.Encode()
	require.NoError(t, err)

	reloaded, err := DecodeBundle(data)
	require.NoError(t, err)
	assert.Equal(t, original, reloaded)
}

func TestBundle_EncodeNeverNull(t *testing.T) {
	data, err := Bundle{}.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"issues": []`)
	assert.NotContains(t, string(data), "null")
	// prs category absent when pull requests were not fetched
	assert.NotContains(t, string(data), `"prs"`)
}

func TestDecodeBundle_LegacyArray(t *testing.T) {
	bundle, err := DecodeBundle([]byte(`[{"title": "A", "body": "x"}, {"title": "B"}]`))
	require.NoError(t, err)
	require.Len(t, bundle.Issues, 2)
	assert.Equal(t, "A", bundle.Issues[0].Title)
	assert.Empty(t, bundle.PullRequests)
}

func TestDecodeBundle_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not json", `{"issues": "nope"}`, `[{"title": 7}]`} {
		_, err := DecodeBundle([]byte(input))
		assert.Error(t, err, "input %q", input)
	}
}
