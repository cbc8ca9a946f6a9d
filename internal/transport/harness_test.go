package transport

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kprusa/olsrmesh/olsr"
)

// sharedClock is a settable time source safe to read from the pump
// goroutines while the test body advances it.
type sharedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *sharedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *sharedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestHarness_ThreeNodeChain drives three real olsr.Engine instances over
// a shared Medium, using a link-state schedule (the same record format
// the original simulation harness read from its input file) to bring
// node 2 within range of both 1 and 3, with 1 and 3 out of range of each
// other, and confirms node 1 learns a two-hop route to 3 via 2.
func TestHarness_ThreeNodeChain(t *testing.T) {
	events, err := ParseSchedule(strings.NewReader(
		"0 UP 1 2\n" +
			"0 UP 2 3\n",
	))
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}

	medium := NewMedium()
	for _, ev := range events {
		if ev.Up {
			medium.SetLinkUp(ev.From, ev.To)
		} else {
			medium.SetLinkDown(ev.From, ev.To)
		}
	}
	// Node 1 and node 3 are out of radio range of each other; only the
	// (1,2) and (2,3) pairs were ever brought up above.
	medium.SetLinkDown(1, 3)

	clock := &sharedClock{now: time.Unix(0, 0)}

	mkEngine := func(id olsr.NodeID) (*olsr.Engine, *Link) {
		link := medium.Join(id, 16)
		e := olsr.New(id, olsr.WillingnessDefault, link, olsr.WithClock(clock.Now))
		return e, link
	}

	e1, l1 := mkEngine(1)
	e2, l2 := mkEngine(2)
	e3, l3 := mkEngine(3)

	done := make(chan struct{})
	defer close(done)
	pump := func(e *olsr.Engine, l *Link) {
		go func() {
			for {
				from, out, ok := l.Recv(done)
				if !ok {
					return
				}
				switch p := out.Payload.(type) {
				case olsr.HelloPayload:
					e.OnHello(from, p)
				case olsr.TCPayload:
					e.OnTC(out.Header, p, from)
				}
			}
		}()
	}
	pump(e1, l1)
	pump(e2, l2)
	pump(e3, l3)

	cfg := olsr.DefaultConfig()
	step := cfg.TickInterval
	deadline := cfg.TCInterval*3 + cfg.HelloInterval*3

	for elapsed := time.Duration(0); elapsed < deadline; elapsed += step {
		clock.Advance(step)
		e1.Tick()
		e2.Tick()
		e3.Tick()
		time.Sleep(time.Millisecond) // let the pump goroutines drain
	}

	r := e1.GetNextHop(3)
	if r.Outcome != olsr.OutcomeFound {
		t.Fatalf("node 1 -> node 3: outcome = %v, want Found", r.Outcome)
	}
	if r.NextHop != 2 {
		t.Errorf("node 1 -> node 3: next hop = %d, want 2", r.NextHop)
	}
	if r.Hops != 2 {
		t.Errorf("node 1 -> node 3: hops = %d, want 2", r.Hops)
	}
}
