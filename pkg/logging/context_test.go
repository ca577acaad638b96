package logging_test

import (
	"context"
	"testing"

	"github.com/agentstation/factmap/pkg/logging"
)

func TestWithLoggerAndFromContext(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	logging.Ctx(ctx).Info().Msg("reconciling record")

	if !tl.Contains("reconciling record") {
		t.Errorf("expected captured message, got %q", tl.Output())
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if logging.FromContext(context.Background()) == nil {
		t.Error("expected default logger for bare context")
	}
	if logging.FromContext(nil) == nil { //nolint:staticcheck // nil context fallback is part of the contract
		t.Error("expected default logger for nil context")
	}
}

func TestWithSourceField(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithSource(ctx, "rosstat")
	ctx = logging.WithINN(ctx, "7736207543")
	logging.Ctx(ctx).Info().Msg("read rows")

	if !tl.Contains(`"source":"rosstat"`) {
		t.Errorf("expected source field in output: %q", tl.Output())
	}
	if !tl.Contains(`"inn":"7736207543"`) {
		t.Errorf("expected inn field in output: %q", tl.Output())
	}
}

func TestWithFieldsTypes(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithFields(ctx, map[string]any{
		"rows":    42,
		"partial": true,
		"batch":   "b-1",
	})
	logging.Ctx(ctx).Info().Msg("done")

	for _, want := range []string{`"rows":42`, `"partial":true`, `"batch":"b-1"`} {
		if !tl.Contains(want) {
			t.Errorf("expected %s in output: %q", want, tl.Output())
		}
	}
}
