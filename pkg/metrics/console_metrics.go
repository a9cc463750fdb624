package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ConsoleMetrics tracks marketplace traffic observed by the console: API
// calls, dashboard refresh cycles and verification outcomes. It is fed by
// the dashboard loop rather than by the API client, so one-shot commands
// carry no metrics overhead.
type ConsoleMetrics struct {
	APIRequestsTotal          *prometheus.CounterVec
	APIRequestDurationSeconds *prometheus.HistogramVec
	BackendReachable          prometheus.Gauge
	RefreshCyclesTotal        prometheus.Counter
	RefreshFailuresTotal      prometheus.Counter
	OpenTasks                 prometheus.Gauge
	VerificationsTotal        *prometheus.CounterVec
	RewardsEarnedTotal        prometheus.Counter
}

// NewConsoleMetrics creates console metrics. Call RegisterWith before use.
func NewConsoleMetrics() *ConsoleMetrics {
	return &ConsoleMetrics{}
}

// RegisterWith builds and registers the console metrics on the collector
func (cm *ConsoleMetrics) RegisterWith(collector *Collector) {
	builder := NewMetricBuilder(collector, "console")

	cm.APIRequestsTotal = builder.CounterVec(
		"api_requests_total",
		"Marketplace API requests issued, by operation and status code",
		[]string{"operation", "code"},
	)
	cm.APIRequestDurationSeconds = builder.HistogramVec(
		"api_request_duration_seconds",
		"Marketplace API request latency in seconds, by operation",
		[]string{"operation"},
		nil,
	)
	cm.BackendReachable = builder.Gauge(
		"backend_reachable",
		"Whether the last health probe reached the marketplace backend (1 or 0)",
	)
	cm.RefreshCyclesTotal = builder.Counter(
		"refresh_cycles_total",
		"Dashboard refresh cycles completed",
	)
	cm.RefreshFailuresTotal = builder.Counter(
		"refresh_failures_total",
		"Dashboard refresh cycles that ended in an error",
	)
	cm.OpenTasks = builder.Gauge(
		"open_tasks",
		"Open tasks visible in the most recent refresh",
	)
	cm.VerificationsTotal = builder.CounterVec(
		"verifications_total",
		"Verification verdicts received this session, by result",
		[]string{"result"},
	)
	cm.RewardsEarnedTotal = builder.Counter(
		"rewards_earned_total",
		"Sum of rewards earned by submissions this session",
	)
}

// ObserveAPIRequest records one marketplace API call. A status code of 0
// means the request never reached the backend.
func (cm *ConsoleMetrics) ObserveAPIRequest(operation string, statusCode int, duration time.Duration) {
	if cm.APIRequestsTotal == nil {
		return
	}
	cm.APIRequestsTotal.WithLabelValues(operation, strconv.Itoa(statusCode)).Inc()
	cm.APIRequestDurationSeconds.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetBackendReachable records the outcome of the latest health probe
func (cm *ConsoleMetrics) SetBackendReachable(up bool) {
	if cm.BackendReachable == nil {
		return
	}
	if up {
		cm.BackendReachable.Set(1)
	} else {
		cm.BackendReachable.Set(0)
	}
}

// RecordRefresh records one completed dashboard refresh cycle
func (cm *ConsoleMetrics) RecordRefresh(err error) {
	if cm.RefreshCyclesTotal == nil {
		return
	}
	cm.RefreshCyclesTotal.Inc()
	if err != nil {
		cm.RefreshFailuresTotal.Inc()
	}
}

// SetOpenTasks records how many open tasks the latest refresh saw
func (cm *ConsoleMetrics) SetOpenTasks(n int) {
	if cm.OpenTasks == nil {
		return
	}
	cm.OpenTasks.Set(float64(n))
}

// RecordVerification records one verification verdict and its reward
func (cm *ConsoleMetrics) RecordVerification(accepted bool, reward float64) {
	if cm.VerificationsTotal == nil {
		return
	}
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	cm.VerificationsTotal.WithLabelValues(result).Inc()
	cm.RewardsEarnedTotal.Add(reward)
}
