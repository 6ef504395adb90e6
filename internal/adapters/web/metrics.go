package web

import (
	"net/http"
	"strconv"
	"time"

	"erp-admin/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the console's Prometheus collectors.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	switches  *prometheus.CounterVec
	menuSaves *prometheus.CounterVec
	handler   http.Handler
}

// MetricsConfig groups what NewMetrics needs. Registry defaults to a fresh
// registry; Pool, when set, adds connection pool gauges.
type MetricsConfig struct {
	Registry *prometheus.Registry
	Pool     *pgxpool.Pool
}

// NewMetrics registers the collectors and builds the /metrics handler.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "erp_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		switches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_context_switches_total",
			Help: "Module and company switch attempts by result.",
		}, []string{"kind", "result"}), // result: applied or a deny reason
		menuSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_menu_visibility_saves_total",
			Help: "Tools form submissions by result.",
		}, []string{"result"}),
	}

	collectors := []prometheus.Collector{m.requests, m.duration, m.switches, m.menuSaves}
	if cfg.Pool != nil {
		collectors = append(collectors, newPoolCollector(cfg.Pool))
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m, nil
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// Instrument counts requests by chi route pattern so path parameters do not
// explode label cardinality.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) observeSwitch(res *app.SwitchResult) {
	if m == nil || res == nil || res.Kind == "" {
		return
	}
	result := "applied"
	if !res.Applied {
		result = string(res.Reason)
	}
	m.switches.WithLabelValues(res.Kind, result).Inc()
}

func (m *Metrics) observeMenuSave(result string) {
	if m == nil {
		return
	}
	m.menuSaves.WithLabelValues(result).Inc()
}

// poolCollector exposes pgxpool statistics as gauges.
type poolCollector struct {
	pool         *pgxpool.Pool
	acquiredDesc *prometheus.Desc
	idleDesc     *prometheus.Desc
	totalDesc    *prometheus.Desc
}

func newPoolCollector(pool *pgxpool.Pool) *poolCollector {
	return &poolCollector{
		pool:         pool,
		acquiredDesc: prometheus.NewDesc("erp_pgxpool_acquired_conns", "Connections currently acquired.", nil, nil),
		idleDesc:     prometheus.NewDesc("erp_pgxpool_idle_conns", "Idle connections.", nil, nil),
		totalDesc:    prometheus.NewDesc("erp_pgxpool_total_conns", "Total connections in the pool.", nil, nil),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredDesc
	ch <- c.idleDesc
	ch <- c.totalDesc
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.pool.Stat()
	ch <- prometheus.MustNewConstMetric(c.acquiredDesc, prometheus.GaugeValue, float64(s.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(s.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(s.TotalConns()))
}
