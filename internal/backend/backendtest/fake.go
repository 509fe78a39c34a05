// Package backendtest provides an in-memory backend for tests.
package backendtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gulfjobs-web/internal/backend"
	"gulfjobs-web/internal/domain"
)

type Fake struct {
	mu   sync.Mutex
	Jobs []domain.JobPosting

	ListErr   error
	GetErr    error
	InsertErr error

	// Block, when set, is received from before each call returns so tests can
	// hold a request in flight.
	Block chan struct{}

	ListCalls    int
	GetCalls     int
	Applications []domain.Application
	LastOpts     backend.ListOptions
}

var _ backend.Backend = (*Fake)(nil)

func (f *Fake) wait(ctx context.Context) error {
	if f.Block == nil {
		return nil
	}
	select {
	case <-f.Block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fake) ListJobs(ctx context.Context, opts backend.ListOptions) ([]domain.JobPosting, error) {
	f.mu.Lock()
	f.ListCalls++
	f.LastOpts = opts
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := append([]domain.JobPosting(nil), f.Jobs...)
	if opts.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			if opts.Descending {
				return out[i].PostedAt.After(out[j].PostedAt)
			}
			return out[i].PostedAt.Before(out[j].PostedAt)
		})
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (f *Fake) GetJob(ctx context.Context, id string) (domain.JobPosting, error) {
	f.mu.Lock()
	f.GetCalls++
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return domain.JobPosting{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return domain.JobPosting{}, f.GetErr
	}
	for _, j := range f.Jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return domain.JobPosting{}, fmt.Errorf("job %q: %w", id, backend.ErrNotFound)
}

func (f *Fake) InsertApplication(ctx context.Context, app domain.Application) (domain.Application, error) {
	if err := f.wait(ctx); err != nil {
		return domain.Application{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InsertErr != nil {
		return domain.Application{}, f.InsertErr
	}
	app.ID = fmt.Sprintf("app-%d", len(f.Applications)+1)
	f.Applications = append(f.Applications, app)
	return app, nil
}

func (f *Fake) Inserted() []domain.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Application(nil), f.Applications...)
}

func (f *Fake) Close() error { return nil }

// Numbered returns n postings with ids "1".."n".
func Numbered(n int) []domain.JobPosting {
	out := make([]domain.JobPosting, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.JobPosting{
			ID:       fmt.Sprint(i),
			Title:    fmt.Sprintf("Job %d", i),
			Company:  "Acme",
			Country:  "UAE",
			Category: "Construction",
		})
	}
	return out
}
