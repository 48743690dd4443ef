package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// mdr-api metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mdr_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mdr_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mdr_active_requests",
		Help: "Current in-flight requests",
	})

	// refresh job metrics
	RefreshJobsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mdr_refresh_jobs_total",
		Help: "Refresh job completion count",
	}, []string{"status"})

	RefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mdr_refresh_duration_seconds",
		Help:    "Refresh end-to-end duration (resolve + trigger + wait)",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200, 1800},
	})

	RefreshPollsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mdr_refresh_polls_total",
		Help: "Status polls issued while a refresh was pending",
	})

	ActiveJobs = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mdr_active_jobs",
		Help: "Jobs not yet in a terminal state",
	})

	JobsSweptTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mdr_jobs_swept_total",
		Help: "Terminal jobs removed by the retention sweeper",
	})

	// resolver metrics
	ResolveTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mdr_resolve_total",
		Help: "Endpoint resolution count",
	}, []string{"outcome"})

	ResolveFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mdr_resolve_fallback_total",
		Help: "Resolutions that fell back to the generic items listing",
	})
)

func RegisterAll(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, ActiveRequests,
		RefreshJobsTotal, RefreshDuration, RefreshPollsTotal,
		ActiveJobs, JobsSweptTotal,
		ResolveTotal, ResolveFallbackTotal,
	)
}
