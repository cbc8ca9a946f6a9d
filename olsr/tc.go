package olsr

// tcTick originates a TC from the set of SYM neighbors that have selected
// this node as their MPR. No TC is emitted if that set is
// empty.
func (e *Engine) tcTick() {
	now := e.clock()

	var selectors []TCSelector
	for _, n := range e.neighbors {
		if n.LinkStatus == LinkSym && n.IsMPRSelector {
			selectors = append(selectors, TCSelector{NeighborID: n.ID})
		}
	}
	if len(selectors) == 0 {
		return
	}

	e.ansn++
	payload := TCPayload{ANSN: e.ansn, Selectors: selectors}
	header := Header{
		MsgType:    MsgTC,
		VTime:      e.cfg.TCValidity,
		Originator: e.self,
		TTL:        255,
		HopCount:   0,
		Seq:        e.nextSeq(),
	}

	e.insertDuplicate(e.self, header.Seq, now)
	e.enqueue(ControlMessage{Header: header, Payload: payload, Timestamp: now})
	e.metrics.IncTCSent()
}

// OnTC processes an inbound TC: duplicate suppression, topology update,
// and MPR-based forwarding.
func (e *Engine) OnTC(header Header, tc TCPayload, sender NodeID) TCOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onTCLocked(header, tc, sender)
}

func (e *Engine) onTCLocked(header Header, tc TCPayload, sender NodeID) TCOutcome {
	if header.MsgType != MsgTC || len(tc.Selectors) == 0 {
		e.log.Warn("dropping malformed TC", "header", header)
		return TCMalformed
	}

	now := e.clock()

	if e.isDuplicate(header.Originator, header.Seq, now) {
		e.metrics.IncDuplicateDropped()
		return TCDuplicate
	}
	e.insertDuplicate(header.Originator, header.Seq, now)

	validity := now.Add(header.VTime)
	anyFresh := false
	for _, sel := range tc.Selectors {
		fresh, err := e.updateTopologyLink(header.Originator, sel.NeighborID, tc.ANSN, validity)
		if err != nil {
			e.log.Warn("topology table full, dropping link", "from", header.Originator, "to", sel.NeighborID, "err", err)
			continue
		}
		if fresh {
			anyFresh = true
		}
	}
	if anyFresh {
		e.markDirty()
	}

	// Forward only if sender chose us as its MPR and TTL allows another
	// hop. The original originator/seq are preserved on the forwarded
	// copy.
	senderEntry, ok := e.neighbors[sender]
	if !ok || senderEntry.LinkStatus != LinkSym || !senderEntry.IsMPRSelector || header.TTL <= 1 {
		return TCAccepted
	}

	fwdHeader := header
	fwdHeader.TTL--
	fwdHeader.HopCount++
	e.enqueue(ControlMessage{Header: fwdHeader, Payload: tc, Timestamp: now})
	e.metrics.IncTCForwarded()
	return TCForwarded
}
