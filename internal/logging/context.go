package logging

import (
	"context"

	"go.uber.org/zap"
)

type requestCtxKey struct{}
type queryCtxKey struct{}

// ContextWithRequestID attaches a request identifier to the context.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestCtxKey{}, requestID)
}

// RequestIDFromContext returns the request identifier, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// ContextWithQuery attaches the user query to the context so every log
// line emitted while serving it carries the query text.
func ContextWithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryCtxKey{}, query)
}

// QueryFromContext returns the user query, or "" when absent.
func QueryFromContext(ctx context.Context) string {
	if q, ok := ctx.Value(queryCtxKey{}).(string); ok {
		return q
	}
	return ""
}

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request.id", requestID))
	}
	if query := QueryFromContext(ctx); query != "" {
		fields = append(fields, zap.String("query", query))
	}

	return fields
}
