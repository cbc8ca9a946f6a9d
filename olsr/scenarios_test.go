package olsr

import (
	"testing"
	"time"
)

// S1: symmetric link sensing.
func TestScenario_S1_SymmetricLinkSensing(t *testing.T) {
	e, tr, clock := newTestEngine(1, WillingnessDefault)

	e.OnHello(2, HelloPayload{Willingness: WillingnessDefault})
	n, ok := e.neighbors[2]
	if !ok || n.LinkStatus != LinkAsym {
		t.Fatalf("neighbor 2 = %+v, ok=%v, want ASYM", n, ok)
	}

	e.Tick() // forces an outbound HELLO via the interval-elapsed path
	clock.advance(e.cfg.HelloInterval)
	e.Tick()

	foundAsym := false
	for _, out := range tr.sent {
		hello, ok := out.Payload.(HelloPayload)
		if !ok {
			continue
		}
		for _, nb := range hello.Neighbors {
			if nb.ID == 2 && nb.LinkCode == LinkAsym {
				foundAsym = true
			}
		}
	}
	if !foundAsym {
		t.Fatalf("own HELLO should have advertised neighbor 2 as ASYM")
	}

	e.OnHello(2, HelloPayload{Willingness: WillingnessDefault, Neighbors: []HelloNeighbor{{ID: 1, LinkCode: LinkSym}}})
	if e.neighbors[2].LinkStatus != LinkSym {
		t.Fatalf("neighbor 2 should now be SYM")
	}
	if e.neighbors[2].IsMPR {
		t.Fatalf("MPR set should remain empty with no two-hop neighbors")
	}

	e.updateRoutingTable(clock.Now())
	if len(e.routes) != 1 {
		t.Fatalf("routing table = %+v, want exactly one entry", e.routes)
	}
	r := e.routes[2]
	if r.Dest != 2 || r.NextHop != 2 || r.Metric != 1 || r.Hops != 1 {
		t.Errorf("route = %+v, want {dest=2 next_hop=2 metric=1 hops=1}", r)
	}
}

// S4: TC flood & dedup.
func TestScenario_S4_TCFloodAndDedup(t *testing.T) {
	e, _, clock := newTestEngine(1, WillingnessDefault)
	if _, err := e.upsertNeighbor(2, LinkSym, WillingnessDefault, clock.Now()); err != nil {
		t.Fatalf("upsertNeighbor: %v", err)
	}
	e.neighbors[2].IsMPRSelector = true

	header := Header{MsgType: MsgTC, Originator: 10, Seq: 7, TTL: 5, VTime: e.cfg.TCValidity}
	tc := TCPayload{ANSN: 1, Selectors: []TCSelector{{NeighborID: 11}, {NeighborID: 12}}}

	outcome := e.OnTC(header, tc, 2)
	if outcome != TCForwarded {
		t.Fatalf("outcome = %v, want TCForwarded", outcome)
	}
	if _, ok := e.topology[linkKey{from: 10, to: 11}]; !ok {
		t.Errorf("expected topology link (10,11)")
	}
	if _, ok := e.topology[linkKey{from: 10, to: 12}]; !ok {
		t.Errorf("expected topology link (10,12)")
	}
	if e.topology[linkKey{from: 10, to: 11}].ANSN != 1 {
		t.Errorf("ANSN mismatch on (10,11)")
	}

	fwd, ok := e.queue.Pop()
	if !ok {
		t.Fatalf("expected 1 forwarded TC in the control queue")
	}
	if fwd.Header.TTL != 4 || fwd.Header.HopCount != 1 || fwd.Header.Originator != 10 || fwd.Header.Seq != 7 {
		t.Errorf("forwarded header = %+v, want ttl=4 hop_count=1 originator=10 seq=7", fwd.Header)
	}

	outcome = e.OnTC(header, tc, 2)
	if outcome != TCDuplicate {
		t.Fatalf("second delivery outcome = %v, want TCDuplicate", outcome)
	}
	if e.queue.Len() != 0 {
		t.Errorf("duplicate TC must not enqueue a second forward")
	}
}

// S5: link failure & emergency HELLO.
func TestScenario_S5_LinkFailureEmergencyHello(t *testing.T) {
	e, tr, clock := newTestEngine(1, WillingnessDefault)
	if _, err := e.upsertNeighbor(2, LinkSym, WillingnessDefault, clock.Now()); err != nil {
		t.Fatalf("upsertNeighbor: %v", err)
	}
	e.updateRoutingTable(clock.Now())
	clock.advance(e.cfg.HelloTimeout + time.Second)

	e.Tick()

	if _, ok := e.neighbors[2]; ok {
		t.Fatalf("neighbor 2 should have timed out")
	}
	for dest, r := range e.routes {
		if r.NextHop == 2 {
			t.Errorf("route to %d still uses failed next hop 2", dest)
		}
	}

	foundHello := false
	for _, out := range tr.sent {
		if out.Header.MsgType == MsgHello {
			foundHello = true
		}
	}
	if !foundHello {
		t.Fatalf("expected an emergency HELLO enqueued regardless of HELLO_INTERVAL")
	}
}
