// Package instrumentation wires OpenTelemetry metrics and tracing for the
// server. Metrics are exported via Prometheus by default; OTLP and stdout
// exporters are available for collector-based or local setups.
package instrumentation
