package systems

import (
	"testing"
	"time"

	"github.com/meldworks/meldboard/catalog"
	"github.com/meldworks/meldboard/engine"
	"github.com/meldworks/meldboard/events"
	"github.com/meldworks/meldboard/session"
)

// newTestContext builds a context with a mock clock and a headless layout
// large enough for positional assertions.
func newTestContext(t *testing.T) (*engine.GameContext, *engine.MockTimeProvider) {
	t.Helper()
	clock := engine.NewMockTimeProvider(time.Unix(1700000000, 0))
	ctx := engine.NewGameContext(120, 42, clock, events.NewQueue(), catalog.NewCache())
	ctx.Prefs = session.Prefs{SessionID: "test-session"}
	return ctx, clock
}

// boardPoint converts board-local coordinates to the screen coordinates
// pointer payloads carry.
func boardPoint(ctx *engine.GameContext, x, y int) (int, int) {
	return x + ctx.BoardX, y + ctx.BoardY
}

// drain consumes all pending events of the given type, returning them in
// FIFO order. Events of other types are discarded.
func drain(ctx *engine.GameContext, t events.EventType) []events.GameEvent {
	var out []events.GameEvent
	for _, ev := range ctx.Queue.Consume() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// snapshotBoard captures uid, position and flags for store-unchanged
// assertions.
type itemSnapshot struct {
	UID         string
	X, Y        int
	Highlighted bool
	Vanishing   bool
}

func snapshotBoard(ctx *engine.GameContext) []itemSnapshot {
	items := ctx.Board.Items()
	out := make([]itemSnapshot, 0, len(items))
	for _, item := range items {
		out = append(out, itemSnapshot{
			UID:         item.UID,
			X:           item.X,
			Y:           item.Y,
			Highlighted: item.Highlighted,
			Vanishing:   item.Vanishing,
		})
	}
	return out
}

func sameSnapshots(a, b []itemSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
