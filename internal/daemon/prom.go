package daemon

import (
	"net/http"
	"strings"

	"github.com/theirongolddev/dials/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// promMetrics lives on a private registry so several services (tests) can
// coexist in one process.
type promMetrics struct {
	reg *prometheus.Registry

	income     prometheus.Gauge
	groups     *prometheus.GaugeVec
	benchmarks *prometheus.GaugeVec
	status     *prometheus.GaugeVec
	polls      prometheus.Counter
	pollErrors prometheus.Counter
	advice     *prometheus.CounterVec
}

func newPromMetrics() *promMetrics {
	m := &promMetrics{
		reg: prometheus.NewRegistry(),
		income: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dials",
			Name:      "income",
			Help:      "Monthly income.",
		}),
		groups: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dials",
			Name:      "group_total",
			Help:      "Allocated amount per group; remaining may be negative.",
		}, []string{"group"}),
		benchmarks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dials",
			Name:      "benchmark_percent",
			Help:      "Benchmarked share of income, 0-100.",
		}, []string{"check"}),
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dials",
			Name:      "benchmark_good",
			Help:      "1 when the benchmark check is rated good.",
		}, []string{"check"}),
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dials",
			Name:      "polls_total",
			Help:      "Budget blob polls.",
		}),
		pollErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dials",
			Name:      "poll_errors_total",
			Help:      "Budget blob polls that failed to read or decode.",
		}),
		advice: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dials",
			Name:      "advice_requests_total",
			Help:      "Advice requests by outcome.",
		}, []string{"outcome"}),
	}
	m.reg.MustRegister(m.income, m.groups, m.benchmarks, m.status, m.polls, m.pollErrors, m.advice)
	return m
}

func (m *promMetrics) observe(mt model.Metrics) {
	t := mt.Totals
	m.income.Set(t.Income)
	m.groups.WithLabelValues("fixed").Set(t.Fixed)
	m.groups.WithLabelValues("future").Set(t.Future)
	m.groups.WithLabelValues("dials").Set(t.Dials)
	m.groups.WithLabelValues("remaining").Set(t.Remaining)

	for _, b := range mt.Benchmarks {
		check := strings.ToLower(strings.ReplaceAll(b.Label, " ", "_"))
		m.benchmarks.WithLabelValues(check).Set(b.Value)
		good := 0.0
		if b.Status == model.StatusGood {
			good = 1
		}
		m.status.WithLabelValues(check).Set(good)
	}
}

func (m *promMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
