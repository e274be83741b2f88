// Package metrics defines the Prometheus instrumentation shared by the
// lookup clients, the analyzer, and the HTTP API. Collectors are registered
// on the default registry and exposed via /metrics.
package metrics
