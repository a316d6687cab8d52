// Package metrics collects runtime memory snapshots and per-run Prometheus
// metrics for the pi calculator. Metrics live in a private registry and are
// written in the Prometheus text format when a run asks for a metrics file.
package metrics
