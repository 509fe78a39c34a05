// Package listing is the read side of the job board: load postings once per
// request, filter them, and cut them into pages.
package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"gulfjobs-web/internal/backend"
	"gulfjobs-web/internal/domain"
)

const (
	FailedToLoadMessage = "Failed to load jobs. Please try again later."
	NotFoundMessage     = "Job not found"
	NoJobsMessage       = "No jobs found"

	DefaultTimeout = 15 * time.Second
)

type Store struct {
	Source  backend.JobSource
	OrderBy string // posting-date column, newest first; empty keeps source order
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Result of one load. Jobs is empty (never nil) whenever Err is set.
type Result struct {
	Jobs []domain.JobPosting
	Err  error
}

// Discarded reports whether the caller went away before the load finished.
// A discarded result must not be rendered.
func (r Result) Discarded() bool {
	return errors.Is(r.Err, context.Canceled)
}

func (s Store) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}

// Load performs exactly one read against the source.
func (s Store) Load(ctx context.Context) Result {
	return s.load(ctx, 0)
}

// Latest loads at most n postings, newest first.
func (s Store) Latest(ctx context.Context, n int) Result {
	return s.load(ctx, n)
}

func (s Store) load(ctx context.Context, limit int) Result {
	lctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	opts := backend.ListOptions{OrderBy: s.OrderBy, Descending: s.OrderBy != "", Limit: limit}
	jobs, err := s.Source.ListJobs(lctx, opts)
	if err != nil {
		if ctx.Err() != nil {
			// caller cancelled; report that rather than the source's view of it
			return Result{Jobs: []domain.JobPosting{}, Err: ctx.Err()}
		}
		s.Logger.Error().Err(err).Bool("temporary", backend.Temporary(err)).Msg("load jobs failed")
		return Result{Jobs: []domain.JobPosting{}, Err: fmt.Errorf("load jobs: %w", err)}
	}
	if jobs == nil {
		jobs = []domain.JobPosting{}
	}
	return Result{Jobs: jobs}
}

// Get fetches a single posting by id. Not-found is reported as
// backend.ErrNotFound.
func (s Store) Get(ctx context.Context, id string) (domain.JobPosting, error) {
	if id == "" {
		return domain.JobPosting{}, backend.ErrNotFound
	}
	gctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	j, err := s.Source.GetJob(gctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return domain.JobPosting{}, ctx.Err()
		}
		if !errors.Is(err, backend.ErrNotFound) {
			s.Logger.Error().Err(err).Str("job_id", id).Bool("temporary", backend.Temporary(err)).Msg("load job failed")
		}
		return domain.JobPosting{}, fmt.Errorf("load job %q: %w", id, err)
	}
	return j, nil
}

// View is everything a listing page or API response needs.
type View struct {
	Criteria   domain.FilterCriteria
	Page       Page
	Countries  []string
	Categories []string
	Err        error
}

func (v View) Empty() bool { return v.Page.TotalItems == 0 }

// ErrorMessage is the page-level text for a failed load, or "".
func (v View) ErrorMessage() string {
	if v.Err == nil {
		return ""
	}
	return FailedToLoadMessage
}

// Query runs the whole pipeline: load, facets, filter, paginate.
func (s Store) Query(ctx context.Context, c domain.FilterCriteria, pageSize, page int) View {
	res := s.Load(ctx)
	return BuildView(res, c, pageSize, page)
}

// BuildView applies criteria and pagination to an already loaded result.
// A failed result still yields a valid, empty, single-page view.
func BuildView(res Result, c domain.FilterCriteria, pageSize, page int) View {
	c = c.Normalized()
	filtered := Filter(res.Jobs, c)
	return View{
		Criteria:   c,
		Page:       Paginate(filtered, pageSize, page),
		Countries:  Countries(res.Jobs),
		Categories: Categories(res.Jobs),
		Err:        res.Err,
	}
}
