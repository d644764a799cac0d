// Package generation owns the request lifecycle: it snapshots the config,
// calls the backend once, and replaces the question set on success.
//
// The controller is not safe for concurrent use. All mutating methods run on
// a single event loop; only Fetch may run elsewhere since it touches no state.
package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mathgen/internal/backend"
	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/questions"
)

// ErrStale is returned by Apply for a result that belongs to a superseded
// request or arrived after Close. Callers drop it silently.
var ErrStale = errors.New("stale generation result")

// ErrBusy is returned by Generate when a request is already in flight.
var ErrBusy = errors.New("generation already in progress")

// Fetcher issues one generate request. *backend.Client implements it.
type Fetcher interface {
	Generate(ctx context.Context, cfg config.Config) ([]questions.Question, error)
}

var _ Fetcher = (*backend.Client)(nil)

// Controller drives Idle -> Loading -> Idle|Error transitions.
type Controller struct {
	fetcher  Fetcher
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time

	set    *questions.Set
	status Status
	err    error
	notice string
	epoch  uint64
	closed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder records every attempt. Recording is best-effort.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates an Idle controller with an empty question set.
func New(f Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher: f,
		logger:  zap.NewNop(),
		now:     time.Now,
		set:     questions.NewSet(),
		status:  StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin moves to Loading and snapshots cfg into a ticket. It returns false
// and changes nothing while a request is in flight or after Close.
func (c *Controller) Begin(cfg config.Config) (Ticket, bool) {
	if c.closed || c.status == StatusLoading {
		return Ticket{}, false
	}
	c.epoch++
	c.status = StatusLoading
	c.notice = ""
	return Ticket{
		ID:     uuid.NewString(),
		Epoch:  c.epoch,
		Config: cfg,
	}, true
}

// Fetch performs the request described by t. It reads no controller state
// beyond the immutable fetcher and recorder, so it is safe to call from a
// command goroutine.
func (c *Controller) Fetch(ctx context.Context, t Ticket) Result {
	start := c.now()
	ctx = backend.WithRequestID(ctx, t.ID)
	qs, err := c.fetcher.Generate(ctx, t.Config)
	res := Result{
		Ticket:    t,
		Questions: qs,
		Err:       err,
		Latency:   c.now().Sub(start),
	}
	c.record(ctx, res)
	return res
}

// Apply commits r if it is still current. Stale results return ErrStale and
// leave the controller untouched.
func (c *Controller) Apply(r Result) (Outcome, error) {
	if c.closed || r.Ticket.Epoch != c.epoch || c.status != StatusLoading {
		c.logger.Debug("discarding stale generation result",
			zap.String("request_id", r.Ticket.ID),
			zap.Uint64("epoch", r.Ticket.Epoch),
			zap.Uint64("current_epoch", c.epoch),
			zap.Bool("closed", c.closed))
		return Outcome{}, ErrStale
	}

	if r.Err != nil {
		c.status = StatusError
		c.err = r.Err
		c.notice = Notice(r.Err)
		c.logger.Warn("generation failed",
			zap.String("request_id", r.Ticket.ID),
			zap.String("kind", string(backend.KindOf(r.Err))),
			zap.Error(r.Err))
		return Outcome{Ticket: r.Ticket, Err: r.Err, Notice: c.notice}, nil
	}

	c.set.Replace(r.Questions)
	c.status = StatusIdle
	c.err = nil
	c.notice = ""
	c.logger.Info("generation succeeded",
		zap.String("request_id", r.Ticket.ID),
		zap.Int("questions", len(r.Questions)),
		zap.Duration("latency", r.Latency))
	return Outcome{Ticket: r.Ticket, Count: len(r.Questions)}, nil
}

// Generate runs Begin, Fetch and Apply in sequence for callers without an
// event loop.
func (c *Controller) Generate(ctx context.Context, cfg config.Config) (Outcome, error) {
	t, ok := c.Begin(cfg)
	if !ok {
		if c.closed {
			return Outcome{}, ErrStale
		}
		return Outcome{}, ErrBusy
	}
	return c.Apply(c.Fetch(ctx, t))
}

// Close marks the controller torn down. Results arriving later are stale.
func (c *Controller) Close() {
	c.closed = true
}

// Closed reports whether Close was called.
func (c *Controller) Closed() bool { return c.closed }

// ToggleReveal flips the revealed flag of one question.
func (c *Controller) ToggleReveal(index int) error {
	return c.set.ToggleReveal(index)
}

// Questions returns a copy of the current items.
func (c *Controller) Questions() []questions.Item {
	return c.set.Items()
}

// Len returns the number of questions in the current set.
func (c *Controller) Len() int { return c.set.Len() }

// RevealedCount returns how many answers are currently shown.
func (c *Controller) RevealedCount() int { return c.set.RevealedCount() }

// Status returns the current lifecycle state.
func (c *Controller) Status() Status { return c.status }

// Err returns the error of the last failed attempt, or nil.
func (c *Controller) Err() error { return c.err }

// Notice returns the user-facing message for the last failure, or "".
func (c *Controller) Notice() string { return c.notice }

// DismissNotice clears the notice without changing status.
func (c *Controller) DismissNotice() { c.notice = "" }

func (c *Controller) record(ctx context.Context, r Result) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordAttempt(ctx, NewAttempt(r)); err != nil {
		c.logger.Warn("failed to record generation attempt",
			zap.String("request_id", r.Ticket.ID),
			zap.Error(err))
	}
}

// Notice renders err as the one-line message shown to the user.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	var re *backend.RequestError
	if errors.As(err, &re) {
		switch re.Kind {
		case backend.KindConfig:
			return "Backend URL is not configured. Set MATHGEN_BACKEND_URL or --backend-url."
		case backend.KindStatus:
			if re.Detail != "" {
				return fmt.Sprintf("Failed to generate questions (HTTP %d): %s", re.StatusCode, re.Detail)
			}
			return fmt.Sprintf("Failed to generate questions (HTTP %d). Please try again.", re.StatusCode)
		case backend.KindMalformed:
			return "The backend sent an unexpected response. Please try again."
		}
	}
	return "Failed to generate questions. Please try again."
}
