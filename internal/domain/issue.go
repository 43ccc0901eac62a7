package domain

import (
	"encoding/json"
	"strings"
)

// Issue states as reported by the GitHub API
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// Label is the name of an issue label. The GitHub API returns labels as
// objects but accepts and emits bare names on creation; export files
// carry bare names. Both forms are accepted on read.
type Label string

// UnmarshalJSON accepts either a label object or a bare string
func (l *Label) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*l = Label(obj.Name)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*l = Label(name)
	return nil
}

// Issue represents a normalized GitHub issue. It is a value object:
// constructed from wire JSON or a local file and never mutated.
type Issue struct {
	Number int     `json:"number,omitempty"`
	Title  string  `json:"title"`
	Body   string  `json:"body,omitempty"`
	State  string  `json:"state,omitempty"`
	Labels []Label `json:"labels,omitempty"`
}

// IdentityKey is the content identity of an issue. The remote-assigned
// number is never part of it: a freshly imported issue gets a new number,
// so numbers are not comparable across repositories.
type IdentityKey struct {
	Title string
	Body  string
}

// IdentityKey returns the content key used for diffing
func (i Issue) IdentityKey() IdentityKey {
	return IdentityKey{
		Title: strings.TrimSpace(i.Title),
		Body:  normalizeBody(i.Body),
	}
}

// normalizeBody folds line ending differences so that an issue exported
// on one platform matches the same issue fetched back from the API
func normalizeBody(body string) string {
	return strings.TrimSpace(strings.ReplaceAll(body, "\r\n", "\n"))
}

// IssueCreate is the wire shape for the issue creation endpoint.
// Number and state are server-assigned and must not be sent.
type IssueCreate struct {
	Title  string  `json:"title"`
	Body   string  `json:"body,omitempty"`
	Labels []Label `json:"labels,omitempty"`
}

// CreatePayload returns the creation request body for the issue
func (i Issue) CreatePayload() IssueCreate {
	return IssueCreate{
		Title:  i.Title,
		Body:   i.Body,
		Labels: i.Labels,
	}
}

// ParseIssue converts a single wire record into an Issue
func ParseIssue(raw json.RawMessage) (Issue, error) {
	var issue Issue
	if err := json.Unmarshal(raw, &issue); err != nil {
		return Issue{}, err
	}
	return issue, nil
}
