// Package observability exposes Prometheus metrics for catalog loads and
// the cart.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/sheetcart/internal/cart"
	"github.com/JonMunkholm/sheetcart/internal/catalog"
	"github.com/JonMunkholm/sheetcart/internal/sheet"
)

const namespace = "sheetcart"

// Metrics holds every collector the service exports.
type Metrics struct {
	registry *prometheus.Registry

	CatalogLoads          *prometheus.CounterVec
	CatalogEntries        prometheus.Gauge
	CatalogRowsDropped    prometheus.Counter
	CatalogPriceDefaulted prometheus.Counter
	SheetMalformedFields  prometheus.Counter

	CartMutations *prometheus.CounterVec
	CartLines     prometheus.Gauge
	CartItems     prometheus.Gauge
	CartTotal     prometheus.Gauge
}

// NewMetrics creates the collectors on a fresh registry that also carries
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		CatalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog load attempts by result.",
		}, []string{"result"}),
		CatalogEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_entries",
			Help:      "Entries in the current catalog.",
		}),
		CatalogRowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_rows_dropped_total",
			Help:      "Sheet rows discarded for lacking a name.",
		}),
		CatalogPriceDefaulted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_prices_defaulted_total",
			Help:      "Entries whose price fell back to 0.",
		}),
		SheetMalformedFields: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheet_malformed_fields_total",
			Help:      "Quoted fields that were unterminated or followed by stray characters.",
		}),
		CartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Cart state changes by operation.",
		}, []string{"op"}),
		CartLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_lines",
			Help:      "Distinct items in the cart.",
		}),
		CartItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_items",
			Help:      "Units across all cart lines.",
		}),
		CartTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_total",
			Help:      "Cart total in whole currency units.",
		}),
	}

	reg.MustRegister(
		m.CatalogLoads,
		m.CatalogEntries,
		m.CatalogRowsDropped,
		m.CatalogPriceDefaulted,
		m.SheetMalformedFields,
		m.CartMutations,
		m.CartLines,
		m.CartItems,
		m.CartTotal,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// CatalogLoad implements catalog.Recorder.
func (m *Metrics) CatalogLoad(result string, entries int, parse sheet.Stats, build catalog.BuildStats) {
	m.CatalogLoads.WithLabelValues(result).Inc()
	if result != catalog.ResultSuccess {
		return
	}
	m.CatalogEntries.Set(float64(entries))
	m.CatalogRowsDropped.Add(float64(build.Dropped))
	m.CatalogPriceDefaulted.Add(float64(build.PriceDefaulted))
	m.SheetMalformedFields.Add(float64(parse.MalformedFields))
}

// CartChanged is a cart.Store subscriber.
func (m *Metrics) CartChanged(ev cart.Event) {
	m.CartMutations.WithLabelValues(ev.Op).Inc()
	m.CartLines.Set(float64(len(ev.State.Lines)))
	m.CartItems.Set(float64(ev.State.ItemCount()))
	m.CartTotal.Set(float64(ev.State.Total))
}

var _ catalog.Recorder = (*Metrics)(nil)
