/*
Package observability provides Prometheus metrics and lifecycle hooks for the
unixtime commands.

Metrics are registered on a caller-supplied prometheus.Registerer so tests and
embedders can keep them isolated from the global registry.
*/
package observability
