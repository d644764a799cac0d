package backend

import "context"

type contextKey string

const requestIDKey contextKey = "backend_request_id"

// WithRequestID attaches an attempt id to the context. Generate sends it as
// the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom extracts the attempt id from the context, or "".
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
