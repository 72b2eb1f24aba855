/*
Package tracing provides lightweight request tracing for the editor shell backend.

Spans are created per HTTP request, propagated through the request context
and reported through zap by a background collector. Trace context travels in
the X-Trace-ID and X-Span-ID headers so the desktop frontend can correlate a
command invocation with backend logs.

# Usage

	tracer := tracing.New("editorshell", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "list_tree")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
