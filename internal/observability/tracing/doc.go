// Package tracing wires OpenTelemetry into the API server.
//
// Init installs an SDK tracer provider and the W3C trace-context propagator.
// Middleware starts one server span per request and echoes its trace id in
// the X-Trace-Id response header. Use cases start child spans with GetTracer.
//
//	shutdown := tracing.Init("foodgram-api", version, 1.0)
//	defer func() { _ = shutdown(context.Background()) }()
//
//	ctx, span := tracing.GetTracer().Start(ctx, "shopping.BuildReport")
//	defer span.End()
package tracing
