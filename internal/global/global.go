package global

import (
	"context"
)

type ContextKey uint

const (
	CancelKey ContextKey = iota
	VersionKey
	ProcessContextKey
)

func Version(ctx context.Context) string {
	if v, ok := ctx.Value(VersionKey).(string); ok {
		return v
	}
	return "dev"
}

// ProcessContext returns the context that lives as long as the process, for
// background work such as device polls. It falls back to ctx.
func ProcessContext(ctx context.Context) context.Context {
	if processCtx, ok := ctx.Value(ProcessContextKey).(context.Context); ok {
		return processCtx
	}
	return ctx
}

// Cancel ends the command context stored by the CLI, if any.
func Cancel(ctx context.Context) {
	if cancel, ok := ctx.Value(CancelKey).(context.CancelFunc); ok {
		cancel()
	}
}
