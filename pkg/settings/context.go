package settings

import "context"

type contextKey string

const runContextKey contextKey = "run-settings"

// IntoContext stores the Run parameters in the context.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runContextKey, r)
}

// FromContext retrieves the Run parameters from the context.
func FromContext(ctx context.Context) (*Run, bool) {
	r, ok := ctx.Value(runContextKey).(*Run)
	return r, ok
}
