package constants

import "time"

// Engine
const (
	// TickInterval is the fixed game loop tick
	TickInterval = 33 * time.Millisecond

	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is used for fast modulo on the ring buffer index
	EventBufferMask = EventQueueSize - 1

	// CombineTimeout bounds a single generator service call
	CombineTimeout = 15 * time.Second
)

// System priorities. Lower values run first.
const (
	PrioritySurface   = 10
	PrioritySelection = 20
	PriorityCombine   = 30
	PriorityLifecycle = 40
	PriorityToast     = 50
)
