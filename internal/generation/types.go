package generation

import (
	"context"
	"time"

	"github.com/abhisek/mathgen/internal/backend"
	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/questions"
)

// Status is the controller lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Ticket identifies one in-flight request and the config it was built from.
type Ticket struct {
	ID     string
	Epoch  uint64
	Config config.Config
}

// Result is what Fetch produced for a ticket.
type Result struct {
	Ticket    Ticket
	Questions []questions.Question
	Err       error
	Latency   time.Duration
}

// Outcome describes a committed result.
type Outcome struct {
	Ticket Ticket
	Count  int
	Err    error
	Notice string
}

// Success reports whether the outcome replaced the question set.
func (o Outcome) Success() bool { return o.Err == nil }

// Attempt is the record of one request, success or failure.
type Attempt struct {
	RequestID  string
	Config     config.Config
	Success    bool
	StatusCode int
	ErrorKind  string
	Message    string
	Count      int
	Latency    time.Duration
}

// NewAttempt summarises r for recording.
func NewAttempt(r Result) Attempt {
	a := Attempt{
		RequestID: r.Ticket.ID,
		Config:    r.Ticket.Config,
		Success:   r.Err == nil,
		Count:     len(r.Questions),
		Latency:   r.Latency,
	}
	if r.Err != nil {
		a.StatusCode = backend.StatusCodeOf(r.Err)
		a.ErrorKind = string(backend.KindOf(r.Err))
		a.Message = r.Err.Error()
		a.Count = 0
	}
	return a
}

// Recorder persists attempts. Implementations must be safe to call from a
// command goroutine.
type Recorder interface {
	RecordAttempt(ctx context.Context, a Attempt) error
}
