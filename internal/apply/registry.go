package apply

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gulfjobs-web/internal/backend"
)

// Registry guards server-side submissions by form token: while one POST for
// a token is being written, a second POST with the same token is turned away.
// Sequential resubmissions are allowed and create new records.
type Registry struct {
	Sink    backend.ApplicationSink
	Timeout time.Duration
	Logger  zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]*Submitter
}

func NewRegistry(sink backend.ApplicationSink, timeout time.Duration, logger zerolog.Logger) *Registry {
	return &Registry{Sink: sink, Timeout: timeout, Logger: logger, inFlight: map[string]*Submitter{}}
}

// NewToken returns a fresh token to embed in a rendered form.
func NewToken() string { return uuid.NewString() }

func (r *Registry) Submit(ctx context.Context, token string, f Form) Outcome {
	sub := NewSubmitter(r.Sink, r.Timeout, r.Logger)
	if token == "" {
		return sub.Submit(ctx, f)
	}

	r.mu.Lock()
	if r.inFlight == nil {
		r.inFlight = map[string]*Submitter{}
	}
	if _, busy := r.inFlight[token]; busy {
		r.mu.Unlock()
		f = f.Normalized()
		return Outcome{State: Submitting, Message: InFlightMessage, Form: f, Errors: FieldErrors{}, Err: ErrSubmitInFlight}
	}
	r.inFlight[token] = sub
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.inFlight, token)
		r.mu.Unlock()
	}()
	return sub.Submit(ctx, f)
}

// InFlight reports how many tokens currently have a write running.
func (r *Registry) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inFlight)
}
