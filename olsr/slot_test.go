package olsr

import (
	"testing"
	"time"
)

func TestExpireSlots(t *testing.T) {
	e, _, clock := newTestEngine(1, WillingnessDefault)
	e.updateSlot(2, 3, HopOne, clock.Now())
	e.updateSlot(5, 8, HopTwo, clock.Now())

	clock.advance(e.cfg.SlotReservationTimeout / 2)
	e.updateSlot(2, 3, HopOne, clock.Now()) // refreshed; 5 is not

	clock.advance(e.cfg.SlotReservationTimeout/2 + time.Second)
	e.expireSlots(clock.Now())

	if _, ok := e.slots[2]; !ok {
		t.Errorf("refreshed reservation for 2 must survive the sweep")
	}
	if _, ok := e.slots[5]; ok {
		t.Errorf("stale reservation for 5 must be purged")
	}
}

func TestUpdateSlot_noSlotClearsEntry(t *testing.T) {
	e, _, clock := newTestEngine(1, WillingnessDefault)
	e.updateSlot(2, 3, HopOne, clock.Now())

	e.updateSlot(2, NoSlot, HopOne, clock.Now())

	if _, ok := e.slots[2]; ok {
		t.Errorf("advertising no slot must clear the node's reservation")
	}
}

func TestUpdateSlot_collapsesAcrossHops(t *testing.T) {
	e, _, clock := newTestEngine(1, WillingnessDefault)
	e.updateSlot(5, 8, HopTwo, clock.Now())
	e.updateSlot(5, 9, HopOne, clock.Now())

	r, ok := e.slots[5]
	if !ok {
		t.Fatalf("expected a single reservation for node 5")
	}
	if r.Slot != 9 || r.HopDistance != HopOne {
		t.Errorf("slots[5] = %+v, want the later hop-1 update to win", r)
	}
}

func TestSetGetSelfSlot(t *testing.T) {
	e, _, _ := newTestEngine(1, WillingnessDefault)

	if got := e.GetSelfSlot(); got != nil {
		t.Fatalf("GetSelfSlot = %v, want nil before any reservation", *got)
	}

	slot := 4
	e.SetSelfSlot(&slot)
	got := e.GetSelfSlot()
	if got == nil || *got != 4 {
		t.Fatalf("GetSelfSlot = %v, want 4", got)
	}

	e.SetSelfSlot(nil)
	if got := e.GetSelfSlot(); got != nil {
		t.Errorf("GetSelfSlot = %v, want nil after clearing", *got)
	}
}
