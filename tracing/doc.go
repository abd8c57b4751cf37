// Package tracing integrates OpenTelemetry with procgraph so that compile and
// deployment calls can be observed as spans.  When no provider is installed
// the global no-op provider is used and spans cost next to nothing.
package tracing
