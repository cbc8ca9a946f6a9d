package olsr

import "time"

// ControlQueue is a bounded FIFO of outbound control messages with retry
// metadata carried in each slot. It is backed by a fixed-size circular
// array.
type ControlQueue struct {
	slots []*ControlMessage
	head  int
	count int
}

// NewControlQueue creates a queue with the given fixed capacity.
func NewControlQueue(capacity int) *ControlQueue {
	return &ControlQueue{slots: make([]*ControlMessage, capacity)}
}

func (q *ControlQueue) cap() int { return len(q.slots) }

// Len reports the number of queued messages.
func (q *ControlQueue) Len() int { return q.count }

func (q *ControlQueue) index(offset int) int {
	return (q.head + offset) % q.cap()
}

// Enqueue appends a message to the tail. It fails with ErrTableFull without
// mutating the queue if at capacity.
func (q *ControlQueue) Enqueue(msg ControlMessage) error {
	if q.count == q.cap() {
		return ErrTableFull{Table: "control_queue"}
	}
	q.slots[q.index(q.count)] = &msg
	q.count++
	return nil
}

// EnqueueWithRetry appends a message and arms its first retry deadline.
func (q *ControlQueue) EnqueueWithRetry(msg ControlMessage, now time.Time, retryBase time.Duration) error {
	msg.NextRetryTime = now.Add(retryBase)
	return q.Enqueue(msg)
}

// Pop removes and returns the head message, handing its payload to the
// transport is the caller's responsibility.
func (q *ControlQueue) Pop() (ControlMessage, bool) {
	if q.count == 0 {
		return ControlMessage{}, false
	}
	msg := q.slots[q.head]
	q.slots[q.head] = nil
	q.head = q.index(1)
	q.count--
	return *msg, true
}

// removeAt removes the logical element at offset from head, preserving
// FIFO order of the remaining elements.
func (q *ControlQueue) removeAt(offset int) {
	for i := offset; i < q.count-1; i++ {
		q.slots[q.index(i)] = q.slots[q.index(i+1)]
	}
	q.slots[q.index(q.count-1)] = nil
	q.count--
}

// ProcessRetries scans the queue for messages whose retry deadline has
// elapsed: exhausted messages are dropped (RetryExhausted, logged by the
// caller), others get an exponential backoff applied, capped at
// maxInterval.
func (q *ControlQueue) ProcessRetries(now time.Time, maxAttempts int, retryBase, maxInterval time.Duration) (dropped int) {
	offset := 0
	for offset < q.count {
		msg := q.slots[q.index(offset)]
		if msg.RetryCount > 0 && !now.Before(msg.NextRetryTime) {
			if msg.RetryCount >= maxAttempts {
				q.removeAt(offset)
				dropped++
				continue // don't advance offset: next element shifted into it
			}
			msg.RetryCount++
			backoff := retryBase << uint(msg.RetryCount)
			if backoff > maxInterval || backoff <= 0 {
				backoff = maxInterval
			}
			msg.NextRetryTime = now.Add(backoff)
		}
		offset++
	}
	return dropped
}

// CleanupExpired removes messages older than ttl or whose retry count
// exceeds the configured cap.
func (q *ControlQueue) CleanupExpired(now time.Time, ttl time.Duration, maxAttempts int) (removed int) {
	offset := 0
	for offset < q.count {
		msg := q.slots[q.index(offset)]
		if now.Sub(msg.Timestamp) > ttl || msg.RetryCount > maxAttempts {
			q.removeAt(offset)
			removed++
			continue
		}
		offset++
	}
	return removed
}
