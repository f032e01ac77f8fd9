package systems

import (
	"time"

	"github.com/meldworks/meldboard/constants"
	"github.com/meldworks/meldboard/engine"
	"github.com/meldworks/meldboard/events"
)

// SelectionSystem drives the two-phase pick protocol: the first pick
// selects an item, a second pick on a different item raises a combination
// request and returns the selection to idle before the request resolves.
type SelectionSystem struct{}

func NewSelectionSystem() *SelectionSystem {
	return &SelectionSystem{}
}

func (s *SelectionSystem) Priority() int {
	return constants.PrioritySelection
}

func (s *SelectionSystem) Update(_ *engine.GameContext, _ time.Duration) {}

// EventTypes returns the event types SelectionSystem handles
func (s *SelectionSystem) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventItemPick,
		events.EventClearSelection,
	}
}

func (s *SelectionSystem) HandleEvent(ctx *engine.GameContext, event events.GameEvent) {
	switch event.Type {
	case events.EventClearSelection:
		ctx.Selection.Clear()
	case events.EventItemPick:
		p, ok := event.Payload.(*events.ItemPickPayload)
		if !ok {
			return
		}
		s.handlePick(ctx, p.UID)
	}
}

func (s *SelectionSystem) handlePick(ctx *engine.GameContext, uid string) {
	item, ok := ctx.Board.Get(uid)
	if !ok || item.Vanishing {
		return
	}

	source, combine := ctx.Selection.Pick(uid)
	if !combine {
		return
	}

	// The earlier pick may reference an item that was evicted or consumed
	// meanwhile; the pair is then dropped and only the selection reset
	// remains observable
	src, ok := ctx.Board.Get(source)
	if !ok || src.Vanishing {
		return
	}
	ctx.Queue.Push(events.GameEvent{
		Type:      events.EventCombineRequest,
		Payload:   &events.CombineRequestPayload{SourceUID: source, TargetUID: uid},
		Timestamp: ctx.Time.Now(),
	})
}
