package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors. All methods are
// safe on a nil *Metrics.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	Registrations     prometheus.Counter
	Logins            *prometheus.CounterVec
	InvoicesCreated   prometheus.Counter
	WorkspaceSwitches prometheus.Counter
	PublicCache       *prometheus.CounterVec
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freelance_desk_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freelance_desk_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		Registrations: f.NewCounter(prometheus.CounterOpts{
			Name: "freelance_desk_registrations_total",
			Help: "Accounts registered",
		}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freelance_desk_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		InvoicesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "freelance_desk_invoices_created_total",
			Help: "Invoices created",
		}),
		WorkspaceSwitches: f.NewCounter(prometheus.CounterOpts{
			Name: "freelance_desk_workspace_switches_total",
			Help: "Active workspace changes",
		}),
		PublicCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freelance_desk_public_cache_lookups_total",
			Help: "Public page cache lookups by page and result",
		}, []string{"page", "result"}),
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncRegistration() {
	if m == nil {
		return
	}
	m.Registrations.Inc()
}

// IncLogin records a login attempt; ok false counts a rejected one.
func (m *Metrics) IncLogin(ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.Logins.WithLabelValues(result).Inc()
}

func (m *Metrics) IncInvoiceCreated() {
	if m == nil {
		return
	}
	m.InvoicesCreated.Inc()
}

func (m *Metrics) IncWorkspaceSwitch() {
	if m == nil {
		return
	}
	m.WorkspaceSwitches.Inc()
}

func (m *Metrics) CacheLookup(page string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.PublicCache.WithLabelValues(page, result).Inc()
}
