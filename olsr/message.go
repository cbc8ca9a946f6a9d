package olsr

import (
	"fmt"
	"strings"
	"time"
)

// Header carries the semantic OLSR message header fields.
// Wire-layout is a transport concern; this is the value the engine and
// transport exchange.
type Header struct {
	MsgType    MsgType
	VTime      time.Duration
	Originator NodeID
	TTL        uint8
	HopCount   uint8
	Seq        uint16
}

func (h Header) String() string {
	return fmt.Sprintf("%s originator=%d seq=%d ttl=%d hops=%d vtime=%s",
		h.MsgType, h.Originator, h.Seq, h.TTL, h.HopCount, h.VTime)
}

// HelloNeighbor is one entry in a HELLO's neighbor list.
type HelloNeighbor struct {
	ID       NodeID
	LinkCode LinkStatus
}

// HelloTwoHop is one entry in a HELLO's two-hop list, carrying the slot
// this node last heard reserved for that two-hop neighbor, if any.
type HelloTwoHop struct {
	TwoHopID     NodeID
	ViaID        NodeID
	ReservedSlot int
}

// HelloPayload is the outbound/inbound HELLO body.
type HelloPayload struct {
	HelloInterval time.Duration
	Willingness   Willingness
	ReservedSlot  int
	Neighbors     []HelloNeighbor
	TwoHop        []HelloTwoHop
}

func (h HelloPayload) String() string {
	var ids []string
	for _, n := range h.Neighbors {
		ids = append(ids, fmt.Sprintf("%d:%s", n.ID, n.LinkCode))
	}
	return fmt.Sprintf("HELLO will=%s slot=%d neighbors=[%s]", h.Willingness, h.ReservedSlot, strings.Join(ids, " "))
}

// TCSelector is one entry in a TC's MPR-selector set.
type TCSelector struct {
	NeighborID NodeID
}

// TCPayload is the outbound/inbound TC body.
type TCPayload struct {
	ANSN      uint16
	Selectors []TCSelector
}

func (t TCPayload) String() string {
	var ids []string
	for _, s := range t.Selectors {
		ids = append(ids, s.NeighborID.String())
	}
	return fmt.Sprintf("TC ansn=%d selectors=[%s]", t.ANSN, strings.Join(ids, " "))
}

// Outbound is what the engine hands the transport: a header plus one of
// HelloPayload or TCPayload.
type Outbound struct {
	Header  Header
	Payload interface{}
}

// ControlMessage is a queued outbound message with retry bookkeeping.
type ControlMessage struct {
	Header        Header
	Payload       interface{}
	DestinationID NodeID // zero value means broadcast
	Timestamp     time.Time
	NextRetryTime time.Time
	RetryCount    int
}

// Transport is the boundary to the physical/MAC (TDMA/RRC) layer. The
// engine never constructs a byte-level frame; framing and transmission are
// the transport's responsibility.
type Transport interface {
	Send(Outbound) error
}
