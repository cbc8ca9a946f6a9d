package olsr

import "fmt"

// ErrTableFull is returned when an insertion would exceed a bounded table's
// capacity. The record is not created and event processing continues.
type ErrTableFull struct {
	Table string
}

func (e ErrTableFull) Error() string {
	return fmt.Sprintf("olsr: %s table full", e.Table)
}

// ErrMalformed is returned for an inbound message that fails a shape
// invariant (wrong type, empty body).
type ErrMalformed struct {
	Reason string
}

func (e ErrMalformed) Error() string {
	return fmt.Sprintf("olsr: malformed message: %s", e.Reason)
}

// ErrUnknownMessageType is returned for an inbound header naming a type
// this engine doesn't understand.
type ErrUnknownMessageType struct {
	Type MsgType
}

func (e ErrUnknownMessageType) Error() string {
	return fmt.Sprintf("olsr: unknown message type %s", e.Type)
}

// HelloOutcome reports what on_hello did, for logging/testing; it is never
// returned as a process-aborting error.
type HelloOutcome int

const (
	HelloAccepted HelloOutcome = iota
	HelloMalformed
)

// TCOutcome reports what on_tc did.
type TCOutcome int

const (
	TCAccepted TCOutcome = iota
	TCDuplicate
	TCMalformed
	TCForwarded
)

// NextHopOutcome is the result kind of a GetNextHop query.
type NextHopOutcome int

const (
	// OutcomeFound: a fresh route exists and the next hop is a live SYM
	// neighbor.
	OutcomeFound NextHopOutcome = iota

	// OutcomeDestinationIsSelf: the query was for this node's own id.
	OutcomeDestinationIsSelf

	// OutcomeNoRoute: the destination is known (neighbor table or
	// topology database) but currently unreachable — a temporary
	// partition.
	OutcomeNoRoute

	// OutcomeDestinationUnreachable: the destination appears nowhere in
	// the neighbor table or topology database.
	OutcomeDestinationUnreachable
)

func (o NextHopOutcome) String() string {
	switch o {
	case OutcomeFound:
		return "Found"
	case OutcomeDestinationIsSelf:
		return "DestinationIsSelf"
	case OutcomeNoRoute:
		return "NoRoute"
	case OutcomeDestinationUnreachable:
		return "DestinationUnreachable"
	default:
		return fmt.Sprintf("NextHopOutcome(%d)", int(o))
	}
}

// NextHopResult is the answer to GetNextHop.
type NextHopResult struct {
	Outcome NextHopOutcome
	NextHop NodeID
	Metric  int
	Hops    int
}
