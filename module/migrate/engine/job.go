package engine

import "context"

// Job is one unit of migration work. The steps run in order and a failing
// step ends the job.
type Job interface {
	Info() string
	Pre(ctx context.Context) error
	Migrate(ctx context.Context) error
	Post(ctx context.Context) error
}

type traceIDKey struct{}

// WithTraceID returns a copy of ctx carrying the run's trace id.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceID returns the trace id stored in ctx, or "".
func TraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}
