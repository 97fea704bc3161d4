// Package observe provides Prometheus metrics and OpenTelemetry tracing
// for the stores. Metrics register against an injectable Registerer so
// tests and embedders control the registry; tracing resolves its tracer
// from the global provider.
package observe
