package backend

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a generate request failed.
type ErrorKind string

const (
	// KindConfig means no usable backend address was configured.
	KindConfig ErrorKind = "config"

	// KindTransport means the request never produced an HTTP response.
	KindTransport ErrorKind = "transport"

	// KindStatus means the backend answered with a non-2xx status.
	KindStatus ErrorKind = "status"

	// KindMalformed means a 2xx body did not match the expected shape.
	KindMalformed ErrorKind = "malformed"
)

// ErrNoBaseURL is wrapped by KindConfig errors.
var ErrNoBaseURL = errors.New("backend URL is not configured")

// RequestError is the single failure type returned by Client.Generate.
type RequestError struct {
	Kind       ErrorKind
	StatusCode int // set for KindStatus
	Detail     string
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Detail != "" {
			return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
	case KindMalformed:
		return fmt.Sprintf("malformed backend response: %v", e.Err)
	case KindConfig:
		return e.Err.Error()
	default:
		return fmt.Sprintf("backend request failed: %v", e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// KindOf returns the ErrorKind of err, or "" if err is not a *RequestError.
func KindOf(err error) ErrorKind {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
