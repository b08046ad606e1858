package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncLogin(true)
	m.IncLogin(false)
	m.IncLogin(false)
	m.IncRegistration()
	m.CacheLookup("portfolio", true)
	m.ObserveRequest("GET", "/api/clients", 200, time.Now())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PublicCache.WithLabelValues("portfolio", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/clients", "200")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncLogin(true)
		m.IncRegistration()
		m.IncInvoiceCreated()
		m.IncWorkspaceSwitch()
		m.CacheLookup("invoice", false)
		m.ObserveRequest("GET", "/", 200, time.Now())
	})
}
