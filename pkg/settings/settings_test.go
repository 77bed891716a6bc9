package settings

import (
	"context"
	"testing"
)

func TestNewCliParams(t *testing.T) {
	r := NewCliParams()
	if r.MinLogLevel != 0 || r.IsQuiet || r.NoColor || !r.ExitOnError {
		t.Fatalf("unexpected defaults: %+v", r)
	}
}

func TestContextRoundTrip(t *testing.T) {
	r := NewCliParams()
	r.NoColor = true

	ctx := IntoContext(context.Background(), r)
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatalf("expected settings in context")
	}
	if got != r {
		t.Fatalf("expected the same *Run instance back")
	}
}

func TestFromContextMissing(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("expected no settings in a bare context")
	}
}
