package metric

import "github.com/prometheus/client_golang/prometheus"

// SessionCollector reports whether a session is live at scrape time.
type SessionCollector struct {
	live func() bool
	desc *prometheus.Desc
}

// NewSessionCollector creates a collector backed by live.
func NewSessionCollector(live func() bool) *SessionCollector {
	return &SessionCollector{
		live: live,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "authenticated"),
			"1 when a session is signed in, 0 otherwise.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *SessionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *SessionCollector) Collect(ch chan<- prometheus.Metric) {
	v := 0.0
	if c.live() {
		v = 1
	}
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, v)
}
