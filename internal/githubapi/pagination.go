package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/hoshino0112/github-issue-exporter/internal/errors"
)

// fetchPages walks a paginated collection starting at startURL, invoking
// each for every wire record in page order. The walk ends when a response
// advertises no rel="next" link, or when the advertised link points back
// to a page already visited in this fetch: a misbehaving server must not
// loop the fetch forever.
func (c *Client) fetchPages(ctx context.Context, startURL, repo string, each func(json.RawMessage) error) error {
	seen := make(map[string]bool)
	pageURL := startURL
	for pageURL != "" && !seen[pageURL] {
		seen[pageURL] = true

		records, header, err := c.getPage(ctx, pageURL, repo)
		if err != nil {
			return err
		}
		for _, raw := range records {
			if err := each(raw); err != nil {
				return err
			}
		}

		pageURL = nextPageURL(header.Get("Link"))
	}
	return nil
}

// getPage issues a single GET and classifies the response body
func (c *Client) getPage(ctx context.Context, pageURL, repo string) ([]json.RawMessage, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	c.logger.Printf("GET %s", pageURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, classifyTransportError(pageURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, apperrors.NewNetworkError(fmt.Sprintf("failed to read response from %s", pageURL), err)
	}

	records, err := classifyPage(body, repo)
	if err != nil {
		return nil, nil, err
	}
	return records, resp.Header, nil
}

// classifyPage discriminates a response body into a collection of wire
// records or an API error object, before any entity parsing runs. The
// GitHub API signals a missing repository with a JSON object carrying
// {"status": "404"} instead of an HTTP-level error.
func classifyPage(body []byte, repo string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var apiErr struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &apiErr); err != nil {
			return nil, apperrors.NewNetworkError("failed to decode API error response", err)
		}
		if apiErr.Status == "404" {
			return nil, apperrors.NewRepositoryNotFound(repo)
		}
		return nil, apperrors.NewNetworkError(fmt.Sprintf("unexpected API error: %s", apiErr.Message), nil)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, apperrors.NewNetworkError("response body is not a collection", err)
	}
	return records, nil
}

// nextPageURL extracts the rel="next" target from a Link response
// header. A missing or malformed header means there is no next page.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start == -1 || end <= start {
			return ""
		}
		return part[start+1 : end]
	}
	return ""
}

// classifyTransportError separates deadline expiry from other transport failures
func classifyTransportError(requestURL string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apperrors.NewNetworkTimeout(requestURL, err)
	}
	return apperrors.NewNetworkError(fmt.Sprintf("request to %s failed", requestURL), err)
}
