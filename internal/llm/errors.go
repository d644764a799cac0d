package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorKind classifies a failed provider call.
type ErrorKind string

const (
	// KindRateLimit is a 429 from the vendor.
	KindRateLimit ErrorKind = "rate_limit"
	// KindUnavailable covers 5xx answers, transport failures and any other
	// vendor error.
	KindUnavailable ErrorKind = "unavailable"
	// KindInvalid means the output did not match the question batch schema.
	KindInvalid ErrorKind = "invalid"
	// KindTruncated means structured output was cut off at MaxTokens.
	KindTruncated ErrorKind = "truncated"
)

var kindText = map[ErrorKind]string{
	KindRateLimit:   "rate limited",
	KindUnavailable: "provider unavailable",
	KindInvalid:     "invalid question batch",
	KindTruncated:   "question batch truncated at max tokens",
}

// Error is a failed LLM call. Provider and RequestID are filled in by the
// logging decorator so that a 500 from the generate endpoint can be traced
// back to the vendor call behind it.
type Error struct {
	Kind       ErrorKind
	Provider   string
	RequestID  string
	StatusCode int             // vendor HTTP status, 0 when there was none
	RetryAfter time.Duration   // KindRateLimit only
	Content    json.RawMessage // rejected output for KindInvalid and KindTruncated
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		b.WriteString(e.Provider)
		b.WriteString(": ")
	}
	b.WriteString(kindText[e.Kind])
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Kind == KindRateLimit && e.RetryAfter > 0 {
		fmt.Fprintf(&b, ", retry after %s", e.RetryAfter)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " [request %s]", e.RequestID)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// statusError classifies a vendor API error by its HTTP status.
func statusError(status int, err error) *Error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimit, StatusCode: status, Err: err}
	}
	return &Error{Kind: KindUnavailable, StatusCode: status, Err: err}
}

func invalidOutput(content json.RawMessage, format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Content: content, Err: fmt.Errorf(format, args...)}
}

// annotate stamps provider and request id on err. Errors that are not
// *Error, such as context cancellation, pass through untouched.
func annotate(ctx context.Context, provider string, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if e.Provider == "" {
		e.Provider = provider
	}
	if e.RequestID == "" {
		e.RequestID = RequestIDFrom(ctx)
	}
	return err
}
