package olsr

import (
	"testing"
	"time"
)

func TestUpsertNeighbor_createsAsymByDefault(t *testing.T) {
	e, _, clock := newTestEngine(1, WillingnessDefault)

	promoted, err := e.upsertNeighbor(2, LinkAsym, WillingnessDefault, clock.Now())
	if err != nil {
		t.Fatalf("upsertNeighbor: %v", err)
	}
	if promoted {
		t.Errorf("new ASYM neighbor should not report a promotion")
	}
	n, ok := e.neighbors[2]
	if !ok {
		t.Fatalf("neighbor 2 not created")
	}
	if n.LinkStatus != LinkAsym {
		t.Errorf("LinkStatus = %s, want ASYM", n.LinkStatus)
	}
}

func TestUpsertNeighbor_promotionAsymToSym(t *testing.T) {
	e, _, clock := newTestEngine(1, WillingnessDefault)

	if _, err := e.upsertNeighbor(2, LinkAsym, WillingnessDefault, clock.Now()); err != nil {
		t.Fatalf("upsertNeighbor: %v", err)
	}
	promoted, err := e.upsertNeighbor(2, LinkSym, WillingnessDefault, clock.Now())
	if err != nil {
		t.Fatalf("upsertNeighbor: %v", err)
	}
	if !promoted {
		t.Errorf("ASYM -> SYM transition should report a promotion")
	}
}

func TestUpsertNeighbor_tableFull(t *testing.T) {
	e, _, clock := newTestEngine(1, WillingnessDefault)
	e.cfg.MaxNeighbors = 1

	if _, err := e.upsertNeighbor(2, LinkAsym, WillingnessDefault, clock.Now()); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := e.upsertNeighbor(3, LinkAsym, WillingnessDefault, clock.Now())
	if _, ok := err.(ErrTableFull); !ok {
		t.Fatalf("expected ErrTableFull, got %v", err)
	}
	if _, exists := e.neighbors[3]; exists {
		t.Errorf("neighbor 3 should not have been created")
	}
}

func TestUpsertNeighbor_demotionClearsIsMPR(t *testing.T) {
	e, _, clock := newTestEngine(1, WillingnessDefault)
	if _, err := e.upsertNeighbor(2, LinkSym, WillingnessDefault, clock.Now()); err != nil {
		t.Fatalf("upsertNeighbor: %v", err)
	}
	e.neighbors[2].IsMPR = true

	if _, err := e.upsertNeighbor(2, LinkAsym, WillingnessDefault, clock.Now()); err != nil {
		t.Fatalf("upsertNeighbor: %v", err)
	}
	if e.neighbors[2].IsMPR {
		t.Errorf("is_mpr must clear once link_status != SYM")
	}
}

func TestCheckNeighborTimeouts_cascades(t *testing.T) {
	e, _, clock := newTestEngine(1, WillingnessDefault)

	if _, err := e.upsertNeighbor(2, LinkSym, WillingnessDefault, clock.Now()); err != nil {
		t.Fatalf("upsertNeighbor: %v", err)
	}
	if err := e.addTwoHop(3, 2, clock.Now()); err != nil {
		t.Fatalf("addTwoHop: %v", err)
	}
	e.updateSlot(2, 5, HopOne, clock.Now())
	e.routes[3] = RoutingEntry{Dest: 3, NextHop: 2, Metric: 2}

	clock.advance(e.cfg.HelloTimeout + time.Nanosecond)

	removed := e.checkNeighborTimeouts(clock.Now())
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok := e.neighbors[2]; ok {
		t.Errorf("neighbor 2 should have been removed")
	}
	if _, ok := e.twoHop[twoHopKey{twoHopID: 3, via: 2}]; ok {
		t.Errorf("two-hop entry via 2 should have been purged")
	}
	if _, ok := e.slots[2]; ok {
		t.Errorf("slot reservation for 2 should have been cleared")
	}
	if _, ok := e.routes[3]; ok {
		t.Errorf("routing entry via 2 should have been invalidated")
	}
}
