package apply

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gulfjobs-web/internal/backend"
	"gulfjobs-web/internal/domain"
)

const (
	SubmittedMessage = "Application submitted!"
	FailedMessage    = "Failed to submit application."
	InvalidMessage   = "Please fix the highlighted fields."
	InFlightMessage  = "Your application is already being submitted."

	DefaultTimeout = 15 * time.Second
)

var (
	ErrInvalid        = errors.New("application form is invalid")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

type State int

const (
	Idle State = iota
	Validating
	Submitting
	Submitted
	IdleWithErrors
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	case IdleWithErrors:
		return "idle_with_errors"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome is what the page needs to re-render after a submit attempt.
// Form holds the preserved input on failure and is zero after success.
type Outcome struct {
	State       State
	Errors      FieldErrors
	Message     string
	Form        Form
	Application *domain.Application
	Err         error
}

// Submitter drives one application form through
// Idle → Validating → Submitting → {Submitted | IdleWithErrors}.
type Submitter struct {
	Sink    backend.ApplicationSink
	Timeout time.Duration
	Logger  zerolog.Logger
	Now     func() time.Time

	mu    sync.Mutex
	state State
}

func NewSubmitter(sink backend.ApplicationSink, timeout time.Duration, logger zerolog.Logger) *Submitter {
	return &Submitter{Sink: sink, Timeout: timeout, Logger: logger}
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Submitter) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// begin moves to Validating unless a submission is already running.
func (s *Submitter) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Validating || s.state == Submitting {
		return false
	}
	s.state = Validating
	return true
}

// Submit validates f and, when it is valid, writes exactly one application.
// Nothing is retried; a failed write leaves the form intact for the user.
func (s *Submitter) Submit(ctx context.Context, f Form) Outcome {
	f = f.Normalized()
	if !s.begin() {
		return Outcome{State: Submitting, Message: InFlightMessage, Form: f, Errors: FieldErrors{}, Err: ErrSubmitInFlight}
	}

	if errs := Validate(f); !errs.OK() {
		s.setState(IdleWithErrors)
		return Outcome{State: IdleWithErrors, Errors: errs, Message: InvalidMessage, Form: f, Err: ErrInvalid}
	}

	s.setState(Submitting)

	app := domain.Application{
		JobID:     f.JobID,
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Message:   f.Message,
		CreatedAt: s.now().UTC(),
	}

	wctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	saved, err := s.Sink.InsertApplication(wctx, app)
	if err != nil {
		s.setState(IdleWithErrors)
		s.Logger.Error().Err(err).Str("job_id", f.JobID).Bool("temporary", backend.Temporary(err)).Msg("submit application failed")
		return Outcome{
			State:   IdleWithErrors,
			Errors:  FieldErrors{},
			Message: FailedMessage,
			Form:    f,
			Err:     fmt.Errorf("insert application: %w", err),
		}
	}
	if saved.JobID == "" {
		// sinks that return nothing still get a usable record back
		saved = app
	}

	s.setState(Submitted)
	s.Logger.Info().Str("job_id", saved.JobID).Str("application_id", saved.ID).Msg("application submitted")
	return Outcome{State: Submitted, Errors: FieldErrors{}, Message: SubmittedMessage, Application: &saved}
}

func (s *Submitter) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}

func (s *Submitter) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
