// Package metric provides Prometheus metrics for leasedesk.
//
//   - prometheus.go: private registry, request/session/notification counters
//   - collector.go: scrape-time session gauge
//
// The CLI is short-lived, so metrics are not served over HTTP; they are
// flushed with WriteTextfile when metrics.textfile is configured.
package metric
