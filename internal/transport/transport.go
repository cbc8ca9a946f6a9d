// Package transport provides a demonstration olsr.Transport: control
// messages are gob-encoded and fanned out over in-process channels keyed
// by node id, the same "wireless receiver/transmitter channel" shape the
// original simulation harness used for its Node type, generalized here to
// carry real Outbound control messages instead of plain strings.
package transport

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/kprusa/olsrmesh/olsr"
)

func init() {
	gob.Register(olsr.HelloPayload{})
	gob.Register(olsr.TCPayload{})
}

// Frame is the gob-encoded envelope placed on the wire: the sender id
// plus the serialized Outbound.
type Frame struct {
	From NodeID
	Data []byte
}

// NodeID identifies a node on the simulated medium. It is an alias of
// olsr.NodeID, so values pass between the medium and the engine without
// conversion.
type NodeID = olsr.NodeID

// Medium is a shared broadcast medium: every Link registered on it
// receives every Frame sent by any other Link. It models the broadcast
// nature of the wireless channel the control-plane protocol assumes.
type Medium struct {
	mu      sync.Mutex
	links   map[NodeID]chan Frame
	blocked map[pairKey]bool
}

type pairKey struct {
	a, b NodeID
}

func pair(a, b NodeID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// NewMedium creates an empty shared medium.
func NewMedium() *Medium {
	return &Medium{links: make(map[NodeID]chan Frame), blocked: make(map[pairKey]bool)}
}

// Join registers id on the medium and returns its Transport. bufSize
// bounds the per-node inbound channel.
func (m *Medium) Join(id NodeID, bufSize int) *Link {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan Frame, bufSize)
	m.links[id] = ch
	return &Link{self: id, medium: m, inbox: ch}
}

// SetLinkUp lifts any block between a and b previously set by SetLinkDown.
func (m *Medium) SetLinkUp(a, b NodeID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blocked, pair(a, b))
}

// SetLinkDown prevents frames from crossing between a and b until the
// corresponding SetLinkUp, modeling a scheduled link outage.
func (m *Medium) SetLinkDown(a, b NodeID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocked[pair(a, b)] = true
}

// broadcast delivers frame to every joined node except its sender and any
// node currently blocked from the sender.
func (m *Medium) broadcast(frame Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.links {
		if id == frame.From || m.blocked[pair(id, frame.From)] {
			continue
		}
		select {
		case ch <- frame:
		default:
			// receiver's inbox is full; drop, matching a lossy wireless medium.
		}
	}
}

// Link is one node's attachment point on the Medium. It implements
// olsr.Transport.
type Link struct {
	self   NodeID
	medium *Medium
	inbox  chan Frame
}

// Send gob-encodes out and broadcasts it on the medium.
func (l *Link) Send(out olsr.Outbound) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("encode outbound: %w", err)
	}
	l.medium.broadcast(Frame{From: l.self, Data: buf.Bytes()})
	return nil
}

// Recv blocks until a Frame arrives or done is closed, decoding it back
// into an Outbound along with the originating node id.
func (l *Link) Recv(done <-chan struct{}) (NodeID, olsr.Outbound, bool) {
	select {
	case frame := <-l.inbox:
		var out olsr.Outbound
		if err := gob.NewDecoder(bytes.NewReader(frame.Data)).Decode(&out); err != nil {
			return frame.From, olsr.Outbound{}, false
		}
		return frame.From, out, true
	case <-done:
		return 0, olsr.Outbound{}, false
	}
}

var _ olsr.Transport = (*Link)(nil)
