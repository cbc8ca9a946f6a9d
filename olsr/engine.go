package olsr

import (
	"log/slog"
	"sync"
	"time"
)

// dupKey identifies a duplicate-table entry by (originator, seq).
type dupKey struct {
	originator NodeID
	seq        uint16
}

// Engine owns every protocol table for one node. There are no
// process-wide mutable singletons: a single Engine value is constructed at
// node start and torn down at shutdown; the scheduler owns it and grants
// inbound callbacks exclusive, serialized access via mu.
type Engine struct {
	mu sync.Mutex

	self        NodeID
	willingness Willingness
	selfSlot    *int

	ansn      uint16
	globalSeq uint16

	neighbors map[NodeID]*NeighborEntry
	twoHop    map[twoHopKey]TwoHopEntry
	slots     map[NodeID]*TdmaReservation
	topology  map[linkKey]*TopologyLink
	routes    map[NodeID]RoutingEntry
	dup       map[dupKey]time.Time

	queue *ControlQueue

	dirty bool

	lastHelloSend   time.Time
	lastTCSend      time.Time
	lastTimeoutScan time.Time
	lastCleanup     time.Time

	cfg       Config
	clock     func() time.Time
	transport Transport
	log       *slog.Logger
	metrics   Metrics
}

// Metrics is the observability hook the engine reports counters/gauges
// through; implementations live in internal/metrics. A nil Metrics is
// valid and silently drops every call.
type Metrics interface {
	IncHelloSent()
	IncHelloReceived()
	IncTCSent()
	IncTCForwarded()
	IncDuplicateDropped()
	SetMPRSetSize(n int)
	SetRoutingTableSize(n int)
	SetControlQueueDepth(n int)
}

type noopMetrics struct{}

func (noopMetrics) IncHelloSent()            {}
func (noopMetrics) IncHelloReceived()        {}
func (noopMetrics) IncTCSent()               {}
func (noopMetrics) IncTCForwarded()          {}
func (noopMetrics) IncDuplicateDropped()     {}
func (noopMetrics) SetMPRSetSize(int)        {}
func (noopMetrics) SetRoutingTableSize(int)  {}
func (noopMetrics) SetControlQueueDepth(int) {}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithClock overrides the engine's time source; tests use this for
// deterministic timeouts/expiry.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger overrides the engine's structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMetrics installs a Metrics sink.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) {
		if m == nil {
			m = noopMetrics{}
		}
		e.metrics = m
	}
}

// WithConfig overrides the default constants.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// New constructs an Engine for node id with the given willingness and
// transport, configured with DefaultConfig unless overridden.
func New(self NodeID, willingness Willingness, transport Transport, opts ...Option) *Engine {
	e := &Engine{
		self:        self,
		willingness: willingness,
		neighbors:   make(map[NodeID]*NeighborEntry),
		twoHop:      make(map[twoHopKey]TwoHopEntry),
		slots:       make(map[NodeID]*TdmaReservation),
		topology:    make(map[linkKey]*TopologyLink),
		routes:      make(map[NodeID]RoutingEntry),
		dup:         make(map[dupKey]time.Time),
		cfg:         DefaultConfig(),
		clock:       time.Now,
		transport:   transport,
		log:         slog.Default(),
		metrics:     noopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.queue = NewControlQueue(e.cfg.MaxControlQueue)
	return e
}

// Self returns this node's id.
func (e *Engine) Self() NodeID { return e.self }

// TickInterval returns the interval the caller should invoke Tick at.
func (e *Engine) TickInterval() time.Duration { return e.cfg.TickInterval }

// MPRSetSize reports the current number of selected multipoint relays.
func (e *Engine) MPRSetSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mprSetSize()
}

// RoutingTableSize reports the current number of routing table entries.
func (e *Engine) RoutingTableSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.routes)
}

// ControlQueueDepth reports the current number of queued outbound control
// messages.
func (e *Engine) ControlQueueDepth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Len()
}

// markDirty flags that the routing table must be recomputed before the
// next next-hop query is considered fresh.
func (e *Engine) markDirty() { e.dirty = true }

// nextSeq increments and returns the per-node monotone header sequence
// counter shared by HELLO and TC origination.
func (e *Engine) nextSeq() uint16 {
	e.globalSeq++
	return e.globalSeq
}

// insertDuplicate records (originator, seq) in the duplicate table.
func (e *Engine) insertDuplicate(originator NodeID, seq uint16, now time.Time) {
	e.dup[dupKey{originator: originator, seq: seq}] = now
}

// isDuplicate reports whether (originator, seq) is within DuplicateHold of
// a prior sighting.
func (e *Engine) isDuplicate(originator NodeID, seq uint16, now time.Time) bool {
	seen, ok := e.dup[dupKey{originator: originator, seq: seq}]
	if !ok {
		return false
	}
	return now.Sub(seen) < e.cfg.DuplicateHold
}

// cleanupDuplicates purges duplicate-table entries older than
// DuplicateHold.
func (e *Engine) cleanupDuplicates(now time.Time) {
	for k, t := range e.dup {
		if now.Sub(t) >= e.cfg.DuplicateHold {
			delete(e.dup, k)
		}
	}
}

// enqueue hands a message to the control queue, logging and dropping it on
// TableFull rather than propagating an error across the transport
// boundary.
func (e *Engine) enqueue(msg ControlMessage) {
	if err := e.queue.Enqueue(msg); err != nil {
		e.log.Warn("control queue full, dropping outbound message", "type", msg.Header.MsgType, "err", err)
	}
	e.metrics.SetControlQueueDepth(e.queue.Len())
}
