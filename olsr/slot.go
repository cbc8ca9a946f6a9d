package olsr

import "time"

// TdmaReservation is a slot reservation for self or for a 1- or 2-hop
// neighbor, carried out-of-band inside HELLO.
type TdmaReservation struct {
	NodeID      NodeID
	Slot        int
	HopDistance HopDistance
	LastUpdated time.Time
}

// updateSlot records or refreshes a neighbor's slot reservation. Within a
// node's own table a given slot value is associated with at most one
// (node_id,·) entry — setting a node's slot collapses any previous entry
// for that node regardless of which hop distance produced it.
func (e *Engine) updateSlot(id NodeID, slot int, hop HopDistance, now time.Time) {
	if slot == NoSlot {
		delete(e.slots, id)
		return
	}
	e.slots[id] = &TdmaReservation{NodeID: id, Slot: slot, HopDistance: hop, LastUpdated: now}
}

// expireSlots purges reservations older than SlotReservationTimeout.
func (e *Engine) expireSlots(now time.Time) {
	for id, r := range e.slots {
		if now.Sub(r.LastUpdated) > e.cfg.SlotReservationTimeout {
			delete(e.slots, id)
		}
	}
}

// SetSelfSlot mutates what subsequent HELLOs advertise as this node's
// reserved slot. Pass nil to clear the reservation.
func (e *Engine) SetSelfSlot(slot *int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selfSlot = slot
}

// GetSelfSlot returns this node's currently advertised slot, or nil if
// none is reserved.
func (e *Engine) GetSelfSlot() *int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selfSlot == nil {
		return nil
	}
	v := *e.selfSlot
	return &v
}

func (e *Engine) selfSlotOrNone() int {
	if e.selfSlot == nil {
		return NoSlot
	}
	return *e.selfSlot
}
