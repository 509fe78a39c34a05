// Package backend defines the ports to the hosted row store: a read-only
// source of job postings and a write-only sink for applications.
package backend

import (
	"context"
	"errors"

	"gulfjobs-web/internal/domain"
)

var ErrNotFound = errors.New("not found")

type ListOptions struct {
	OrderBy    string // posting-date column; empty keeps source order
	Descending bool
	Limit      int // 0 = no limit
}

type JobSource interface {
	ListJobs(ctx context.Context, opts ListOptions) ([]domain.JobPosting, error)
	// GetJob returns ErrNotFound (possibly wrapped) when no row has the id.
	GetJob(ctx context.Context, id string) (domain.JobPosting, error)
}

type ApplicationSink interface {
	InsertApplication(ctx context.Context, app domain.Application) (domain.Application, error)
}

type Backend interface {
	JobSource
	ApplicationSink
	Close() error
}

// Temporary reports whether a later identical call might succeed: the
// adapter said so (rowapi 429/5xx) or the call ran out of time. Nothing
// retries; failure logs carry it for whoever watches them.
func Temporary(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Temporary() bool }
	return errors.As(err, &t) && t.Temporary()
}
