package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Bundle is the export document: a mapping from category to the ordered
// entities fetched for it. The prs category is omitted when pull
// requests were not requested; a fetched category is never null.
type Bundle struct {
	Issues       []Issue       `json:"issues"`
	PullRequests []PullRequest `json:"prs,omitempty"`
}

// Empty reports whether the bundle holds no entities at all
func (b Bundle) Empty() bool {
	return len(b.Issues) == 0 && len(b.PullRequests) == 0
}

// Encode serializes the bundle as UTF-8 JSON
func (b Bundle) Encode() ([]byte, error) {
	if b.Issues == nil {
		b.Issues = []Issue{}
	}
	return json.MarshalIndent(b, "", "  ")
}

// DecodeBundle parses an export document. Both the bundle object form
// and the legacy bare array of issues are accepted.
func DecodeBundle(data []byte) (Bundle, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Bundle{}, errors.New("empty document")
	}

	if trimmed[0] == '[' {
		var issues []Issue
		if err := json.Unmarshal(trimmed, &issues); err != nil {
			return Bundle{}, err
		}
		return Bundle{Issues: issues}, nil
	}

	var bundle Bundle
	if err := json.Unmarshal(trimmed, &bundle); err != nil {
		return Bundle{}, err
	}
	return bundle, nil
}
