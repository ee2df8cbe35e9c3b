package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/library-api/internal/platform/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the OpenTelemetry tracer the services start spans on.
const TracerName = "library-api/service"

// Span attribute keys.
const (
	AttrCollection = attribute.Key("library.collection")
	AttrDocumentID = attribute.Key("library.document_id")
)

// startSpan starts a span named "<collection>.<op>".
func startSpan(
	ctx context.Context,
	tracer trace.Tracer,
	collection, op, id string,
) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{AttrCollection.String(collection)}
	if id != "" {
		attrs = append(attrs, AttrDocumentID.String(id))
	}
	return tracer.Start(ctx, collection+"."+op, trace.WithAttributes(attrs...))
}

// finishSpan records err on span, if any, and ends it.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// contextLogger prefers the request-scoped logger, which carries the trace id,
// and tags it with the service component.
func contextLogger(ctx context.Context, fallback *slog.Logger, component string) *slog.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l.With(slog.String("component", component))
	}
	return fallback
}
