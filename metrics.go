// ABOUTME: Prometheus metrics for the dyndns2 endpoint, served on /metrics.
// ABOUTME: Tracks inbound requests, dialect selection, response statuses, and upserts.

package dyndns53

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dyndns53",
	Subsystem: "endpoint",
	Name:      "request_count_total",
	Help:      "Counter of update requests handled.",
}, []string{"method"})

var dialectCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dyndns53",
	Subsystem: "endpoint",
	Name:      "dialect_count_total",
	Help:      "Counter of normalized requests by client dialect.",
}, []string{"dialect"})

var responseCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dyndns53",
	Subsystem: "endpoint",
	Name:      "response_count_total",
	Help:      "Counter of responses by dyndns2 status token.",
}, []string{"status"})

var upsertCount = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "dyndns53",
	Subsystem: "route53",
	Name:      "upsert_count_total",
	Help:      "Counter of record upserts issued against Route 53.",
})
