// Package metrics exposes Prometheus metrics for the API.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
)

type Collector struct {
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	invitations  *prometheus.CounterVec
	assignments  *prometheus.CounterVec
	providerErrs *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachtrack_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coachtrack_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		invitations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachtrack_invitation_transitions_total",
			Help: "Invitation lifecycle transitions by resulting state.",
		}, []string{"to"}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachtrack_coach_assignments_total",
			Help: "Coach assignment changes by action and path.",
		}, []string{"action", "path"}),
		providerErrs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachtrack_provider_errors_total",
			Help: "Failed calls to external catalog providers.",
		}, []string{"provider"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.invitations,
		c.assignments,
		c.providerErrs,
	)

	return c
}

func (c *Collector) RecordHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) RecordProviderError(provider string) {
	c.providerErrs.WithLabelValues(provider).Inc()
}

// Record implements audit.Sink, turning domain events into counters.
func (c *Collector) Record(_ context.Context, ev audit.Event) error {
	switch ev.Action {
	case audit.ActionInvitationCreated:
		c.invitations.WithLabelValues("pending").Inc()
	case audit.ActionInvitationAccepted:
		c.invitations.WithLabelValues("accepted").Inc()
	case audit.ActionInvitationRejected, audit.ActionInvitationAutoRejected:
		c.invitations.WithLabelValues("rejected").Inc()
	case audit.ActionInvitationDeleted:
		c.invitations.WithLabelValues("deleted").Inc()
	case audit.ActionCoachAssigned, audit.ActionCoachUnassigned:
		c.assignments.WithLabelValues(strings.TrimPrefix(ev.Action, "coach_"), pathOf(ev.Metadata)).Inc()
	}
	return nil
}

func pathOf(meta any) string {
	if m, ok := meta.(map[string]any); ok {
		if p, ok := m["path"].(string); ok && p != "" {
			return p
		}
	}
	return "unknown"
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

var _ audit.Sink = (*Collector)(nil)
