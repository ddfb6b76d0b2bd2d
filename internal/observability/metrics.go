package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brewstock/brewstock/internal/sales"
)

// Metrics collects sale counters for the node exporter textfile collector.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	salesTotal      *prometheus.CounterVec
	unitsSold       *prometheus.CounterVec
	revenue         prometheus.Counter
	persistFailures *prometheus.CounterVec
}

// NewMetrics initialises the registry and collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	salesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brewstock_sales_total",
		Help: "Sale transactions by outcome.",
	}, []string{"outcome"})
	units := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brewstock_units_sold_total",
		Help: "Units sold per item.",
	}, []string{"item"})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brewstock_revenue_php_total",
		Help: "Sum of committed sale totals in PHP.",
	})
	persist := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brewstock_persist_failures_total",
		Help: "Writes that failed after a sale was committed.",
	}, []string{"target"})
	registry.MustRegister(salesTotal, units, revenue, persist)
	return &Metrics{
		registry:        registry,
		salesTotal:      salesTotal,
		unitsSold:       units,
		revenue:         revenue,
		persistFailures: persist,
	}
}

// SaleCommitted records a committed transaction.
func (m *Metrics) SaleCommitted(res sales.Result) {
	if m == nil {
		return
	}
	m.salesTotal.WithLabelValues("committed").Inc()
	for _, r := range res.Records {
		m.unitsSold.WithLabelValues(r.ItemName).Add(float64(r.QuantitySold))
		total, _ := r.TotalPrice.Float64()
		m.revenue.Add(total)
	}
	if res.PersistErr != nil {
		m.persistFailures.WithLabelValues("ledger").Inc()
	}
	if res.ReceiptErr != nil {
		m.persistFailures.WithLabelValues("receipt").Inc()
	}
}

// SaleAborted records a cancelled or failed transaction.
func (m *Metrics) SaleAborted() {
	if m == nil {
		return
	}
	m.salesTotal.WithLabelValues("aborted").Inc()
}

// WriteTextfile writes every collector to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("observability: write metrics: %w", err)
	}
	return nil
}
