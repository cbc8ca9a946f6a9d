package olsr

import "time"

// twoHopKey uniquely identifies a (two_hop_id, via_one_hop_id) pair.
type twoHopKey struct {
	twoHopID NodeID
	via      NodeID
}

// TwoHopEntry is a (two_hop_id, via_one_hop_id) tuple with a last-seen
// timestamp.
type TwoHopEntry struct {
	TwoHopID NodeID
	Via      NodeID
	LastSeen time.Time
}

// addTwoHop records (or refreshes) that twoHop is reachable via a SYM
// one-hop neighbor. Invariants enforced by the caller (hello.go):
// twoHop != self, twoHop is not already a one-hop SYM neighbor, via names a
// SYM neighbor.
func (e *Engine) addTwoHop(twoHop, via NodeID, now time.Time) error {
	key := twoHopKey{twoHopID: twoHop, via: via}
	if _, exists := e.twoHop[key]; exists {
		e.twoHop[key] = TwoHopEntry{TwoHopID: twoHop, Via: via, LastSeen: now}
		return nil
	}
	if len(e.twoHop) >= e.cfg.MaxTwoHop {
		return ErrTableFull{Table: "two_hop"}
	}
	e.twoHop[key] = TwoHopEntry{TwoHopID: twoHop, Via: via, LastSeen: now}
	return nil
}

// removeTwoHop deletes a single (two_hop_id, via) pair.
func (e *Engine) removeTwoHop(twoHop, via NodeID) {
	delete(e.twoHop, twoHopKey{twoHopID: twoHop, via: via})
}

// removeTwoHopVia deletes every two-hop entry reachable via the given
// one-hop neighbor (invoked on link failure of that neighbor).
func (e *Engine) removeTwoHopVia(via NodeID) {
	for k := range e.twoHop {
		if k.via == via {
			delete(e.twoHop, k)
		}
	}
}

// twoHopReachability returns the distinct set of two-hop ids and, for each, the set
// of one-hop neighbors that reach it.
func (e *Engine) twoHopReachability() map[NodeID]map[NodeID]struct{} {
	reach := make(map[NodeID]map[NodeID]struct{})
	for k := range e.twoHop {
		if reach[k.twoHopID] == nil {
			reach[k.twoHopID] = make(map[NodeID]struct{})
		}
		reach[k.twoHopID][k.via] = struct{}{}
	}
	return reach
}
