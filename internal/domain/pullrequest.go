package domain

import "encoding/json"

// BranchRef identifies one side of a pull request
type BranchRef struct {
	Ref string `json:"ref"`
	SHA string `json:"sha,omitempty"`
}

// PullRequest represents a normalized GitHub pull request. It is a
// sibling of Issue with its own wire endpoint, not a subtype: the types
// share label handling but no hierarchy.
type PullRequest struct {
	Number int       `json:"number,omitempty"`
	Title  string    `json:"title"`
	Body   string    `json:"body,omitempty"`
	State  string    `json:"state,omitempty"`
	Labels []Label   `json:"labels,omitempty"`
	Head   BranchRef `json:"head"`
	Base   BranchRef `json:"base"`
}

// ParsePullRequest converts a single wire record into a PullRequest
func ParsePullRequest(raw json.RawMessage) (PullRequest, error) {
	var pr PullRequest
	if err := json.Unmarshal(raw, &pr); err != nil {
		return PullRequest{}, err
	}
	return pr, nil
}
