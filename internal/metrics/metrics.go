package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	Parses       Counter
	Records      Counter
	Truncations  Counter
	HTTPRequests Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func NewPrometheusCounter(name, help string, labels []string) *PrometheusCounter {
	return &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, labels),
	}
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

// Collector exposes the underlying vector, mostly for tests.
func (p *PrometheusCounter) Collector() *prometheus.CounterVec {
	return p.counter
}

const (
	parsesName       = "log_parses_total"
	parsesHelp       = "Number of log file parses"
	recordsName      = "log_records_total"
	recordsHelp      = "Number of grouped records returned, by severity"
	truncationsName  = "log_truncations_total"
	truncationsHelp  = "Number of log file truncation attempts"
	httpRequestsName = "http_requests_total"
	httpRequestsHelp = "Number of HTTP requests by route and status"
)

func New() *Counters {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the counters on reg instead of the global registry.
func NewWithRegistry(reg prometheus.Registerer) *Counters {
	parses := NewPrometheusCounter(parsesName, parsesHelp, []string{"status"})
	records := NewPrometheusCounter(recordsName, recordsHelp, []string{"severity"})
	truncations := NewPrometheusCounter(truncationsName, truncationsHelp, []string{"status"})
	httpRequests := NewPrometheusCounter(httpRequestsName, httpRequestsHelp, []string{"route", "status"})

	reg.MustRegister(parses.counter, records.counter, truncations.counter, httpRequests.counter)

	return &Counters{
		Parses:       parses,
		Records:      records,
		Truncations:  truncations,
		HTTPRequests: httpRequests,
	}
}

func NewTestCounters() *Counters {
	return NewWithRegistry(prometheus.NewRegistry())
}
