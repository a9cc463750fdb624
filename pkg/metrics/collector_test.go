package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, collector *Collector) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "metrics endpoint should respond")
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollectorExposesCommonMetrics(t *testing.T) {
	collector := NewCollector("console")
	collector.Common().UpdateUptime()
	collector.Common().UpdateSystemMetrics()

	body := scrape(t, collector)

	assert.Contains(t, body, "proofmine_console_uptime_seconds")
	assert.Contains(t, body, "proofmine_console_memory_usage_bytes")
	assert.Contains(t, body, "proofmine_console_goroutines_active")
}

func TestCollectorCustomNamespace(t *testing.T) {
	collector := NewCollector("console", WithNamespace("testspace"))
	collector.Common().UpdateUptime()

	body := scrape(t, collector)
	assert.Contains(t, body, "testspace_console_uptime_seconds")
}

func TestCollectorWithoutCommonMetrics(t *testing.T) {
	collector := NewCollector("console", WithCommonMetrics(false))

	assert.Nil(t, collector.Common())
	body := scrape(t, collector)
	assert.NotContains(t, body, "uptime_seconds")
}

func TestCollectorStartStop(t *testing.T) {
	collector := NewCollector("console",
		WithUptimeInterval(5*time.Millisecond),
		WithSystemMetricsInterval(5*time.Millisecond),
	)

	collector.Start()
	time.Sleep(60 * time.Millisecond)
	collector.Stop()

	body := scrape(t, collector)
	assert.NotContains(t, body, "proofmine_console_uptime_seconds 0\n",
		"uptime should have been updated by the background loop")
}

func TestConsoleMetricsRecording(t *testing.T) {
	collector := NewCollector("console", WithCommonMetrics(false))
	cm := NewConsoleMetrics()
	cm.RegisterWith(collector)

	cm.ObserveAPIRequest("list_tasks", 200, 120*time.Millisecond)
	cm.ObserveAPIRequest("list_tasks", 200, 80*time.Millisecond)
	cm.ObserveAPIRequest("submit_inference", 500, 2*time.Second)
	cm.SetBackendReachable(true)
	cm.RecordRefresh(nil)
	cm.RecordRefresh(errors.New("backend unreachable"))
	cm.SetOpenTasks(4)
	cm.RecordVerification(true, 1.25)
	cm.RecordVerification(false, 0)

	body := scrape(t, collector)

	assert.Contains(t, body, `proofmine_console_api_requests_total{code="200",operation="list_tasks"} 2`)
	assert.Contains(t, body, `proofmine_console_api_requests_total{code="500",operation="submit_inference"} 1`)
	assert.Contains(t, body, "proofmine_console_backend_reachable 1")
	assert.Contains(t, body, "proofmine_console_refresh_cycles_total 2")
	assert.Contains(t, body, "proofmine_console_refresh_failures_total 1")
	assert.Contains(t, body, "proofmine_console_open_tasks 4")
	assert.Contains(t, body, `proofmine_console_verifications_total{result="accepted"} 1`)
	assert.Contains(t, body, `proofmine_console_verifications_total{result="rejected"} 1`)
	assert.Contains(t, body, "proofmine_console_rewards_earned_total 1.25")
}

func TestConsoleMetricsUnregisteredIsInert(t *testing.T) {
	cm := NewConsoleMetrics()

	assert.NotPanics(t, func() {
		cm.ObserveAPIRequest("list_tasks", 200, time.Second)
		cm.SetBackendReachable(false)
		cm.RecordRefresh(nil)
		cm.SetOpenTasks(1)
		cm.RecordVerification(true, 1)
	})
}

func TestMetricsServerServes(t *testing.T) {
	collector := NewCollector("console", WithCommonMetrics(false))
	cm := NewConsoleMetrics()
	cm.RegisterWith(collector)
	cm.SetOpenTasks(2)

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "proofmine_console_open_tasks 2"))
}
