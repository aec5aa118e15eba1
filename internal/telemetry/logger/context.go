package logger

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	viewKey
)

// WithRequestID tags ctx with the id sent as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id of ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithView tags ctx with the command view that issued the calls below it.
func WithView(ctx context.Context, view string) context.Context {
	return context.WithValue(ctx, viewKey, view)
}

// ViewFromContext returns the view of ctx, or "".
func ViewFromContext(ctx context.Context) string {
	v, _ := ctx.Value(viewKey).(string)
	return v
}
