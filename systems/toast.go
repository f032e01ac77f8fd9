package systems

import (
	"time"

	"github.com/meldworks/meldboard/constants"
	"github.com/meldworks/meldboard/engine"
	"github.com/meldworks/meldboard/events"
)

// ToastSystem shows one short-lived notification at a time. A newer
// message replaces the current one and restarts the dismiss deadline;
// any click or keypress dismisses early.
type ToastSystem struct{}

func NewToastSystem() *ToastSystem {
	return &ToastSystem{}
}

func (s *ToastSystem) Priority() int {
	return constants.PriorityToast
}

// EventTypes returns the event types ToastSystem handles
func (s *ToastSystem) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventToastRequest,
		events.EventPointerUp,
		events.EventKeyPressed,
	}
}

func (s *ToastSystem) HandleEvent(ctx *engine.GameContext, event events.GameEvent) {
	switch event.Type {
	case events.EventToastRequest:
		p, ok := event.Payload.(*events.ToastPayload)
		if !ok {
			return
		}
		ctx.Toast = engine.ToastState{
			Message:   p.Message,
			Severity:  p.Severity,
			Remaining: constants.ToastDuration,
		}
	case events.EventPointerUp, events.EventKeyPressed:
		// User interaction dismisses the active toast early. Events are
		// dispatched in arrival order, so a toast raised later in the
		// same batch still shows.
		ctx.Toast = engine.ToastState{}
	}
}

// Update ticks the self-dismiss deadline
func (s *ToastSystem) Update(ctx *engine.GameContext, dt time.Duration) {
	if !ctx.Toast.Active() {
		return
	}
	ctx.Toast.Remaining -= dt
	if ctx.Toast.Remaining <= 0 {
		ctx.Toast = engine.ToastState{}
	}
}
