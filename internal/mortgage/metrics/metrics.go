package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the mortgage module.
type Metrics struct {
	MortgagesCreated  prometheus.Counter
	MortgagesPaidOff  prometheus.Counter
	PaymentsRecorded  prometheus.Counter
	PaymentsRejected  *prometheus.CounterVec
	RecordPaymentTime prometheus.Histogram
}

// New creates and registers the mortgage module metrics.
func New() *Metrics {
	return &Metrics{
		MortgagesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mortgageledger_mortgages_created_total",
			Help: "Total number of mortgages created",
		}),
		MortgagesPaidOff: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mortgageledger_mortgages_paid_off_total",
			Help: "Total number of mortgages that reached paid-off status",
		}),
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mortgageledger_payments_recorded_total",
			Help: "Total number of payments committed to a ledger",
		}),
		PaymentsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mortgageledger_payments_rejected_total",
			Help: "Total number of rejected payments by reason code",
		}, []string{"reason"}),
		RecordPaymentTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mortgageledger_record_payment_duration_seconds",
			Help:    "Duration of the record-payment transaction including schedule regeneration",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
