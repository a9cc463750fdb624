package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector manages metrics collection for a process. It owns a private
// registry so repeated construction in tests never collides with the
// default registry.
type Collector struct {
	processName   string
	namespace     string
	registry      *prometheus.Registry
	commonMetrics *CommonMetrics
	handler       http.Handler
	stopCh        chan struct{}
	wg            sync.WaitGroup
	options       CollectorOptions
}

// NewCollector creates a new metrics collector for a process
func NewCollector(processName string, opts ...Option) *Collector {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	registry := prometheus.NewRegistry()

	collector := &Collector{
		processName: processName,
		namespace:   options.Namespace,
		registry:    registry,
		stopCh:      make(chan struct{}),
		options:     options,
	}

	if options.EnableCommonMetrics {
		collector.commonMetrics = newCommonMetrics(options.Namespace, processName, registry)
	}

	collector.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry: registry,
	})

	return collector
}

// Start begins background collection of the common metrics
func (c *Collector) Start() {
	if c.options.EnableCommonMetrics && c.commonMetrics != nil {
		c.startCommonMetricsCollection()
	}
}

// Stop stops metrics collection
func (c *Collector) Stop() {
	close(c.stopCh)
	c.wg.Wait()
}

// Handler returns the HTTP handler for the metrics endpoint
func (c *Collector) Handler() http.Handler {
	return c.handler
}

// Registry returns the Prometheus registry for custom metrics
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Common returns common metrics for direct access
func (c *Collector) Common() *CommonMetrics {
	return c.commonMetrics
}

func (c *Collector) startCommonMetricsCollection() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		interval := c.options.UptimeUpdateInterval
		if interval == 0 {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.commonMetrics.UpdateUptime()
			case <-c.stopCh:
				return
			}
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		interval := c.options.SystemMetricsInterval
		if interval == 0 {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.commonMetrics.UpdateSystemMetrics()
			case <-c.stopCh:
				return
			}
		}
	}()
}

// MustRegister registers custom metrics with the collector's registry.
// Panics if registration fails.
func (c *Collector) MustRegister(collectors ...prometheus.Collector) {
	c.registry.MustRegister(collectors...)
}

// Register registers custom metrics with the collector's registry.
// Returns an error if registration fails.
func (c *Collector) Register(collectors ...prometheus.Collector) error {
	for _, collector := range collectors {
		if err := c.registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
