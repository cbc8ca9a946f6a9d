package olsr

import "time"

// Config holds the tunable constants of the protocol engine.
// A Config is copied into the Engine at construction; mutating it
// afterward has no effect.
type Config struct {
	HelloInterval          time.Duration
	TCInterval             time.Duration
	HelloTimeout           time.Duration
	TCValidity             time.Duration
	DuplicateHold          time.Duration
	MaxRetryAttempts       int
	RetryBase              time.Duration
	MaxRetryInterval       time.Duration
	SlotReservationTimeout time.Duration

	MaxNeighbors     int
	MaxTwoHop        int
	MaxTopologyLinks int
	MaxControlQueue  int

	TickInterval      time.Duration
	TimeoutScanEvery  time.Duration
	CleanupEvery      time.Duration
	ControlMessageTTL time.Duration
}

// DefaultConfig returns the protocol's standard timing constants and
// table caps.
func DefaultConfig() Config {
	return Config{
		HelloInterval:          2 * time.Second,
		TCInterval:             5 * time.Second,
		HelloTimeout:           6 * time.Second,
		TCValidity:             15 * time.Second,
		DuplicateHold:          30 * time.Second,
		MaxRetryAttempts:       3,
		RetryBase:              2 * time.Second,
		MaxRetryInterval:       16 * time.Second,
		SlotReservationTimeout: 30 * time.Second,

		MaxNeighbors:     40,
		MaxTwoHop:        100,
		MaxTopologyLinks: 40 * 40,
		MaxControlQueue:  64,

		TickInterval:      100 * time.Millisecond,
		TimeoutScanEvery:  1 * time.Second,
		CleanupEvery:      30 * time.Second,
		ControlMessageTTL: 60 * time.Second,
	}
}
