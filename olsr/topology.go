package olsr

import "time"

// linkKey identifies a directed topology link by its endpoints.
type linkKey struct {
	from NodeID
	to   NodeID
}

// TopologyLink is a directed link (from, to) advertised by a TC originator,
// ANSN-gated and expiry-driven.
type TopologyLink struct {
	From     NodeID
	To       NodeID
	ANSN     uint16
	Validity time.Time
}

// updateTopologyLink accepts an incoming (from,to) update iff the ANSN is
// not older than what's stored, refreshing validity; it reports whether the
// link was installed/refreshed (which should mark topology dirty).
func (e *Engine) updateTopologyLink(from, to NodeID, ansn uint16, validity time.Time) (bool, error) {
	key := linkKey{from: from, to: to}
	if existing, ok := e.topology[key]; ok {
		if ansnLess(ansn, existing.ANSN) {
			return false, nil
		}
		existing.ANSN = ansn
		existing.Validity = validity
		return true, nil
	}
	if len(e.topology) >= e.cfg.MaxTopologyLinks {
		return false, ErrTableFull{Table: "topology"}
	}
	e.topology[key] = &TopologyLink{From: from, To: to, ANSN: ansn, Validity: validity}
	return true, nil
}

// ansnLess reports whether a is strictly older than b under the ANSN's
// 16-bit wraparound ordering.
func ansnLess(a, b uint16) bool {
	return int16(a-b) < 0
}

// cleanupTopologyLinks purges links whose validity has passed; it returns
// whether any link expired (topology dirty if so).
func (e *Engine) cleanupTopologyLinks(now time.Time) bool {
	expired := false
	for k, link := range e.topology {
		if !link.Validity.After(now) {
			delete(e.topology, k)
			expired = true
		}
	}
	return expired
}
