package logging

import (
	"context"
	"log/slog"
)

// Attribute keys shared by every package.
const (
	FieldComponent = "component"
	// FieldRunID holds catalog run identifiers.
	FieldRunID = "run_id"
	// FieldCaseIndex holds 0-based case indices.
	FieldCaseIndex = "case_index"
	FieldPath      = "path"
)

type contextKey int

const (
	runIDKey contextKey = iota
	caseIndexKey
)

// WithRunID tags ctx with a catalog run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithCaseIndex tags ctx with a case index.
func WithCaseIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, caseIndexKey, index)
}

// CaseIndexFromContext returns the case index stored by WithCaseIndex.
func CaseIndexFromContext(ctx context.Context) (int, bool) {
	index, ok := ctx.Value(caseIndexKey).(int)
	return index, ok
}

// ContextFields returns the run and case attributes stored in ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, RunID(id))
	}
	if index, ok := CaseIndexFromContext(ctx); ok {
		fields = append(fields, CaseIndex(index))
	}
	return fields
}

// WithContext adds the run and case attributes of ctx to logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
