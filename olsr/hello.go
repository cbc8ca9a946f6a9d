package olsr

// helloTick builds and enqueues one HELLO, snapshotting current
// willingness, every neighbor with its link code (its link status, or
// MPR_NEIGH for a SYM neighbor selected as MPR), the current self slot,
// and the two-hop entries with their known slots.
func (e *Engine) helloTick() {
	now := e.clock()

	var neighbors []HelloNeighbor
	for _, n := range e.neighbors {
		code := n.LinkStatus
		if code == LinkSym && n.IsMPR {
			code = LinkMPRNeigh
		}
		neighbors = append(neighbors, HelloNeighbor{ID: n.ID, LinkCode: code})
	}

	var twoHop []HelloTwoHop
	for k := range e.twoHop {
		slot := NoSlot
		if r, ok := e.slots[k.twoHopID]; ok {
			slot = r.Slot
		}
		twoHop = append(twoHop, HelloTwoHop{TwoHopID: k.twoHopID, ViaID: k.via, ReservedSlot: slot})
	}

	payload := HelloPayload{
		HelloInterval: e.cfg.HelloInterval,
		Willingness:   e.willingness,
		ReservedSlot:  e.selfSlotOrNone(),
		Neighbors:     neighbors,
		TwoHop:        twoHop,
	}

	header := Header{
		MsgType:    MsgHello,
		VTime:      e.cfg.HelloTimeout,
		Originator: e.self,
		TTL:        1,
		HopCount:   0,
		Seq:        e.nextSeq(),
	}

	e.enqueue(ControlMessage{Header: header, Payload: payload, Timestamp: now})
	e.metrics.IncHelloSent()
}

// OnHello processes an inbound HELLO: slot bookkeeping, link sensing,
// two-hop learning, MPR recompute, selector tracking, slot expiry, in that
// order.
func (e *Engine) OnHello(sender NodeID, hello HelloPayload) HelloOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onHelloLocked(sender, hello)
}

func (e *Engine) onHelloLocked(sender NodeID, hello HelloPayload) HelloOutcome {
	now := e.clock()
	e.metrics.IncHelloReceived()

	// 1. Update the sender's own slot reservation (hop=1).
	e.updateSlot(sender, hello.ReservedSlot, HopOne, now)

	// 2. Update two-hop-carried slot info (hop=2), skipping self.
	for _, th := range hello.TwoHop {
		if th.TwoHopID == e.self {
			continue
		}
		if th.ReservedSlot != NoSlot {
			e.updateSlot(th.TwoHopID, th.ReservedSlot, HopTwo, now)
		}
	}

	// 3. Determine link status by whether self appears in the sender's
	// neighbor list, then upsert.
	status := LinkAsym
	for _, n := range hello.Neighbors {
		if n.ID == e.self {
			status = LinkSym
			break
		}
	}
	_, existedBefore := e.neighbors[sender]
	promoted, err := e.upsertNeighbor(sender, status, hello.Willingness, now)
	if err != nil {
		e.log.Warn("neighbor table full, dropping HELLO update", "sender", sender, "err", err)
		return HelloAccepted
	}
	if promoted || !existedBefore {
		e.markDirty()
	}

	// 4. If sender is SYM, learn its SYM neighbors as our two-hop
	// neighbors (excluding self and existing SYM one-hop neighbors).
	if status == LinkSym {
		for _, n := range hello.Neighbors {
			if n.LinkCode != LinkSym {
				continue
			}
			if n.ID == e.self {
				continue
			}
			if existing, ok := e.neighbors[n.ID]; ok && existing.LinkStatus == LinkSym {
				continue
			}
			if err := e.addTwoHop(n.ID, sender, now); err != nil {
				e.log.Warn("two-hop table full, dropping entry", "two_hop", n.ID, "via", sender, "err", err)
			}
		}
	}

	// 5. Recompute MPR, then update is_mpr_selector for the sender based
	// on whether self appears with link_code MPR_NEIGH.
	e.recomputeMPR()

	selectsUs := false
	for _, n := range hello.Neighbors {
		if n.ID == e.self && n.LinkCode == LinkMPRNeigh {
			selectsUs = true
			break
		}
	}
	if entry, ok := e.neighbors[sender]; ok {
		if entry.IsMPRSelector != selectsUs {
			e.log.Info("mpr selector transition", "sender", sender, "is_selector", selectsUs)
		}
		entry.IsMPRSelector = selectsUs
	}

	// 6. Expire stale slot reservations.
	e.expireSlots(now)

	return HelloAccepted
}
