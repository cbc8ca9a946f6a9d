package olsr

import "time"

// NeighborEntry is a one-hop neighbor as tracked by the neighbor table.
// Invariant: IsMPR ⇒ LinkStatus == LinkSym &&
// Willingness != WillingnessNever; at most one entry per NodeID.
type NeighborEntry struct {
	ID            NodeID
	LinkStatus    LinkStatus
	Willingness   Willingness
	LastSeen      time.Time
	LastHello     time.Time
	IsMPR         bool
	IsMPRSelector bool
}

// upsertNeighbor creates or refreshes a neighbor entry, returning whether
// an existing link was promoted from ASYM to SYM. A newly created entry
// reports false; the caller tracks creation separately (both cases mark
// the topology dirty in onHello).
func (e *Engine) upsertNeighbor(id NodeID, status LinkStatus, willingness Willingness, now time.Time) (promoted bool, err error) {
	entry, exists := e.neighbors[id]
	if !exists {
		if len(e.neighbors) >= e.cfg.MaxNeighbors {
			return false, ErrTableFull{Table: "neighbor"}
		}
		e.neighbors[id] = &NeighborEntry{
			ID:          id,
			LinkStatus:  status,
			Willingness: willingness,
			LastSeen:    now,
			LastHello:   now,
		}
		return false, nil
	}

	wasAsym := entry.LinkStatus == LinkAsym
	entry.LinkStatus = status
	entry.Willingness = willingness
	entry.LastSeen = now
	entry.LastHello = now
	if entry.LinkStatus != LinkSym {
		// is_mpr implies a SYM link: clear on demotion.
		entry.IsMPR = false
	}
	promoted = wasAsym && status == LinkSym
	return promoted, nil
}

// symNeighbors returns the ids of all one-hop neighbors with LinkStatus ==
// LinkSym.
func (e *Engine) symNeighbors() []NodeID {
	var ids []NodeID
	for id, n := range e.neighbors {
		if n.LinkStatus == LinkSym {
			ids = append(ids, id)
		}
	}
	return ids
}

// checkNeighborTimeouts removes neighbor entries whose last HELLO is older
// than HelloTimeout, cascading each removal to the two-hop table, the slot
// table, and the routing table. It returns the number of
// neighbors removed; a non-zero count means topology is dirty and an
// emergency HELLO should be sent.
func (e *Engine) checkNeighborTimeouts(now time.Time) int {
	var expired []NodeID
	for id, n := range e.neighbors {
		if now.Sub(n.LastHello) > e.cfg.HelloTimeout {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		e.handleLinkFailure(id)
	}
	return len(expired)
}

// handleLinkFailure removes a neighbor and cascades the removal to the
// two-hop table (remove-all-via), the slot table, and invalidates any
// routing entries that used it as next hop.
func (e *Engine) handleLinkFailure(id NodeID) {
	delete(e.neighbors, id)
	e.removeTwoHopVia(id)
	delete(e.slots, id)
	for dest, r := range e.routes {
		if r.NextHop == id {
			delete(e.routes, dest)
		}
	}
	e.log.Info("neighbor link failure", "neighbor", id)
}
