package githubapi

import (
	"strings"

	apperrors "github.com/hoshino0112/github-issue-exporter/internal/errors"
)

// DefaultBaseURL is the public GitHub host repository URLs are matched against
const DefaultBaseURL = "https://github.com/"

// IsRepositoryURL reports whether s is a URL to a repository under
// baseURL. Query parameters and one trailing slash are tolerated: after
// stripping both, the URL must hold exactly <scheme>://<host>/<owner>/<repo>.
func IsRepositoryURL(baseURL, s string) bool {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if !strings.HasPrefix(s, baseURL) {
		return false
	}
	slashes := strings.Count(trimRepositoryURL(s), "/")
	return slashes >= 4 && slashes <= 5
}

// ParseOwnerAndRepo extracts the owner and repository name from a
// repository URL. Inputs that do not satisfy IsRepositoryURL fail with
// an invalid repository URL error.
func ParseOwnerAndRepo(baseURL, s string) (owner, repo string, err error) {
	if !IsRepositoryURL(baseURL, s) {
		return "", "", apperrors.NewInvalidRepositoryURL(s)
	}
	segments := strings.Split(trimRepositoryURL(s), "/")
	return segments[len(segments)-2], segments[len(segments)-1], nil
}

// trimRepositoryURL strips a query suffix and one trailing slash
func trimRepositoryURL(s string) string {
	s, _, _ = strings.Cut(s, "?")
	return strings.TrimSuffix(s, "/")
}
