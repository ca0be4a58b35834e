package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg             *prometheus.Registry
	OrdersCreated   prometheus.Counter
	OrdersCompleted prometheus.Counter
	QuotesServed    prometheus.Counter
	AnalyticsRuns   prometheus.Counter
	AnalyticsSec    prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deli_orders_created_total",
		Help: "Orders accepted into the log.",
	})
	ordersCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deli_orders_completed_total",
		Help: "Orders marked completed.",
	})
	quotesServed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deli_pricing_quotes_total",
		Help: "Standalone price quotes served.",
	})
	analyticsRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deli_analytics_reports_total",
		Help: "Analytics reports generated.",
	})
	analyticsSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "deli_analytics_report_duration_seconds",
		Help:    "Time spent aggregating the order log.",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(ordersCreated, ordersCompleted, quotesServed, analyticsRuns, analyticsSec)
	return &Registry{
		reg:             r,
		OrdersCreated:   ordersCreated,
		OrdersCompleted: ordersCompleted,
		QuotesServed:    quotesServed,
		AnalyticsRuns:   analyticsRuns,
		AnalyticsSec:    analyticsSec,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
