package constants

import "time"

// Item lifecycle timing
const (
	// HighlightDuration is how long a freshly spawned item keeps its
	// novelty highlight before settling
	HighlightDuration = 3600 * time.Millisecond

	// VanishDuration is how long a consumed item stays rendered after
	// being marked vanishing, before physical removal
	VanishDuration = 320 * time.Millisecond
)

// Notification timing
const (
	// ToastDuration is how long a toast stays visible before
	// self-dismissing
	ToastDuration = 4200 * time.Millisecond
)

// Audio timing
const (
	// PopSweepDuration is the frequency sweep portion of the pop sound
	PopSweepDuration = 180 * time.Millisecond

	// PopTotalDuration is the full length of the pop sound envelope
	PopTotalDuration = 260 * time.Millisecond
)
