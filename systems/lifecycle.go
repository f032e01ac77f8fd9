package systems

import (
	"time"

	"github.com/meldworks/meldboard/constants"
	"github.com/meldworks/meldboard/engine"
)

// LifecycleSystem runs the two per-item timed transitions: the novelty
// highlight settles after its fixed window, and vanishing items are
// physically removed once their deadline passes. Deadlines are carried on
// the items themselves, so an eviction takes its pending transitions with
// it and nothing can resurrect a removed uid.
type LifecycleSystem struct{}

func NewLifecycleSystem() *LifecycleSystem {
	return &LifecycleSystem{}
}

func (s *LifecycleSystem) Priority() int {
	return constants.PriorityLifecycle
}

// Update decrements highlight and vanish deadlines and removes expired items
func (s *LifecycleSystem) Update(ctx *engine.GameContext, dt time.Duration) {
	var expired []string
	for _, item := range ctx.Board.Items() {
		if item.Highlighted {
			item.HighlightRemaining -= dt
			if item.HighlightRemaining <= 0 {
				item.Highlighted = false
				item.HighlightRemaining = 0
			}
		}
		if item.Vanishing {
			item.VanishRemaining -= dt
			if item.VanishRemaining <= 0 {
				expired = append(expired, item.UID)
			}
		}
	}
	if len(expired) > 0 {
		ctx.Board.RemoveAll(expired...)
	}
}
