// Package metrics exposes the engine's Prometheus instrumentation. It
// implements olsr.Metrics directly against a client_golang registry so
// the engine itself stays free of any metrics-library dependency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kprusa/olsrmesh/olsr"
)

// Collector wires the engine's counters and gauges into a Prometheus
// registry.
type Collector struct {
	helloSent         prometheus.Counter
	helloReceived     prometheus.Counter
	tcSent            prometheus.Counter
	tcForwarded       prometheus.Counter
	duplicateDropped  prometheus.Counter
	mprSetSize        prometheus.Gauge
	routingTableSize  prometheus.Gauge
	controlQueueDepth prometheus.Gauge
}

// New registers the olsrd metric family on reg and returns a Collector
// implementing olsr.Metrics.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		helloSent: f.NewCounter(prometheus.CounterOpts{
			Namespace: "olsrd",
			Name:      "hello_sent_total",
			Help:      "Total number of HELLO messages enqueued for transmission.",
		}),
		helloReceived: f.NewCounter(prometheus.CounterOpts{
			Namespace: "olsrd",
			Name:      "hello_received_total",
			Help:      "Total number of HELLO messages processed.",
		}),
		tcSent: f.NewCounter(prometheus.CounterOpts{
			Namespace: "olsrd",
			Name:      "tc_sent_total",
			Help:      "Total number of originated TC messages enqueued for transmission.",
		}),
		tcForwarded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "olsrd",
			Name:      "tc_forwarded_total",
			Help:      "Total number of TC messages relayed on behalf of another originator.",
		}),
		duplicateDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "olsrd",
			Name:      "duplicate_dropped_total",
			Help:      "Total number of control messages dropped as duplicates.",
		}),
		mprSetSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "olsrd",
			Name:      "mpr_set_size",
			Help:      "Current number of neighbors selected as multipoint relays.",
		}),
		routingTableSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "olsrd",
			Name:      "routing_table_size",
			Help:      "Current number of entries in the routing table.",
		}),
		controlQueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "olsrd",
			Name:      "control_queue_depth",
			Help:      "Current number of control messages pending transmission.",
		}),
	}
}

func (c *Collector) IncHelloSent()            { c.helloSent.Inc() }
func (c *Collector) IncHelloReceived()        { c.helloReceived.Inc() }
func (c *Collector) IncTCSent()               { c.tcSent.Inc() }
func (c *Collector) IncTCForwarded()          { c.tcForwarded.Inc() }
func (c *Collector) IncDuplicateDropped()     { c.duplicateDropped.Inc() }
func (c *Collector) SetMPRSetSize(n int)      { c.mprSetSize.Set(float64(n)) }
func (c *Collector) SetRoutingTableSize(n int) { c.routingTableSize.Set(float64(n)) }
func (c *Collector) SetControlQueueDepth(n int) {
	c.controlQueueDepth.Set(float64(n))
}

var _ olsr.Metrics = (*Collector)(nil)
