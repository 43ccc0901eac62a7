package domain

import "time"

// ExportRun records one completed export in the local archive
type ExportRun struct {
	ID           string
	Owner        string
	Repo         string
	Issues       int
	PullRequests int
	Outfile      string
	CreatedAt    time.Time
}
