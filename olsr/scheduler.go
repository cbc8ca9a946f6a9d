package olsr

import "time"

// Tick drives one iteration of the scheduler loop: neighbor
// timeout scan, retry processing, periodic HELLO/TC, one queue drain,
// periodic cleanup, and a conditional routing recompute. Run by the
// scheduler on a timer; see RunScheduler for the cooperative-timer
// wrapper that sleeps on a timer between ticks instead of busy-waiting.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickLocked(e.clock())
}

func (e *Engine) tickLocked(now time.Time) {
	if now.Sub(e.lastTimeoutScan) >= e.cfg.TimeoutScanEvery {
		e.lastTimeoutScan = now
		if removed := e.checkNeighborTimeouts(now); removed > 0 {
			e.markDirty()
			e.helloTick() // emergency HELLO, bypassing the interval
		}
	}

	if dropped := e.queue.ProcessRetries(now, e.cfg.MaxRetryAttempts, e.cfg.RetryBase, e.cfg.MaxRetryInterval); dropped > 0 {
		e.log.Warn("control messages dropped after retry exhaustion", "count", dropped)
	}

	if now.Sub(e.lastHelloSend) >= e.cfg.HelloInterval {
		e.lastHelloSend = now
		e.helloTick()
	}

	if now.Sub(e.lastTCSend) >= e.cfg.TCInterval {
		e.lastTCSend = now
		e.tcTick()
	}

	if msg, ok := e.queue.Pop(); ok {
		e.drain(msg)
	}
	e.metrics.SetControlQueueDepth(e.queue.Len())

	if now.Sub(e.lastCleanup) >= e.cfg.CleanupEvery {
		e.lastCleanup = now
		e.cleanupDuplicates(now)
		if e.cleanupTopologyLinks(now) {
			e.markDirty()
		}
		e.queue.CleanupExpired(now, e.cfg.ControlMessageTTL, e.cfg.MaxRetryAttempts)
	}

	if e.dirty {
		e.updateRoutingTable(now)
		e.metrics.SetRoutingTableSize(len(e.routes))
		e.dirty = false
	}

	e.metrics.SetMPRSetSize(e.mprSetSize())
}

func (e *Engine) mprSetSize() int {
	n := 0
	for _, neighbor := range e.neighbors {
		if neighbor.IsMPR {
			n++
		}
	}
	return n
}

// drain hands one control-queue head to the transport, arming retry
// metadata on failure so ProcessRetries will back off and eventually
// exhaust it.
func (e *Engine) drain(msg ControlMessage) {
	out := Outbound{Header: msg.Header, Payload: msg.Payload}
	if err := e.transport.Send(out); err != nil {
		e.log.Warn("transport send failed, scheduling retry", "type", msg.Header.MsgType, "err", err)
		msg.RetryCount = 1
		msg.NextRetryTime = e.clock().Add(e.cfg.RetryBase)
		if err := e.queue.Enqueue(msg); err != nil {
			e.log.Warn("control queue full, dropping failed message", "err", err)
		}
	}
}

// nextWakeup computes the delay until the next tick: TickInterval, or less
// when a timeout-scan/HELLO/TC/cleanup deadline falls sooner. The delay is
// never longer than TickInterval.
func (e *Engine) nextWakeup(now time.Time) time.Duration {
	deadlines := []time.Time{
		e.lastTimeoutScan.Add(e.cfg.TimeoutScanEvery),
		e.lastHelloSend.Add(e.cfg.HelloInterval),
		e.lastTCSend.Add(e.cfg.TCInterval),
		e.lastCleanup.Add(e.cfg.CleanupEvery),
	}
	min := e.cfg.TickInterval
	for _, d := range deadlines {
		if until := d.Sub(now); until > 0 && until < min {
			min = until
		}
	}
	if min <= 0 {
		min = e.cfg.TickInterval
	}
	return min
}

// RunScheduler drives Tick on a cooperative timer scheduled to the minimum
// of TickInterval and the next HELLO/TC/timeout-scan/cleanup deadline,
// until stop is closed.
func (e *Engine) RunScheduler(stop <-chan struct{}) {
	for {
		e.mu.Lock()
		delay := e.nextWakeup(e.clock())
		e.mu.Unlock()

		timer := time.NewTimer(delay)
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
			e.Tick()
		}
	}
}
