// Package observability groups the logging, metrics and tracing helpers
// shared by the API server, the worker and foodgramctl.
//
// Subpackages:
//   - logging: slog JSON logger with request id propagation
//   - metrics: Prometheus collectors for HTTP, auth and Foodgram business events
//   - tracing: OpenTelemetry tracer and HTTP middleware
package observability
