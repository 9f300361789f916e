package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg               *prometheus.Registry
	OrdersProcessed   prometheus.Counter
	OrdersDuplicate   prometheus.Counter
	OrdersFailed      prometheus.Counter
	InvoicesGenerated prometheus.Counter
	NotificationsSent prometheus.Counter
	NotifierFailures  prometheus.Counter
	BatchDurationSec  prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	processed := prometheus.NewCounter(prometheus.CounterOpts{Name: "fulfillment_orders_processed_total"})
	duplicate := prometheus.NewCounter(prometheus.CounterOpts{Name: "fulfillment_orders_duplicate_total"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "fulfillment_orders_failed_total"})
	invoices := prometheus.NewCounter(prometheus.CounterOpts{Name: "fulfillment_invoices_generated_total"})
	notified := prometheus.NewCounter(prometheus.CounterOpts{Name: "fulfillment_notifications_sent_total"})
	notifyFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "fulfillment_notifier_failures_total"})
	batchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fulfillment_batch_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(processed, duplicate, failed, invoices, notified, notifyFailed, batchDuration)
	return &Registry{
		reg:               r,
		OrdersProcessed:   processed,
		OrdersDuplicate:   duplicate,
		OrdersFailed:      failed,
		InvoicesGenerated: invoices,
		NotificationsSent: notified,
		NotifierFailures:  notifyFailed,
		BatchDurationSec:  batchDuration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
