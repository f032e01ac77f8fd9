package systems

import (
	"time"

	"github.com/meldworks/meldboard/constants"
	"github.com/meldworks/meldboard/engine"
	"github.com/meldworks/meldboard/events"
)

// SurfaceSystem translates pointer gestures into board mutations: palette
// drops, drag moves and drop-target detection. It decides no game
// outcomes; it only raises pick, clear and combine events for the
// selection and combination systems.
type SurfaceSystem struct {
	dragUID string
	grabDX  int // Vector from the item's corner to the press point,
	grabDY  int // keeps the item from jumping under the cursor
}

func NewSurfaceSystem() *SurfaceSystem {
	return &SurfaceSystem{}
}

func (s *SurfaceSystem) Priority() int {
	return constants.PrioritySurface
}

func (s *SurfaceSystem) Update(_ *engine.GameContext, _ time.Duration) {}

// EventTypes returns the event types SurfaceSystem handles
func (s *SurfaceSystem) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventPointerDown,
		events.EventPointerMove,
		events.EventPointerUp,
		events.EventPaletteDrop,
	}
}

func (s *SurfaceSystem) HandleEvent(ctx *engine.GameContext, event events.GameEvent) {
	switch event.Type {
	case events.EventPointerDown:
		if p, ok := event.Payload.(*events.PointerPayload); ok {
			s.handleDown(ctx, p)
		}
	case events.EventPointerMove:
		if p, ok := event.Payload.(*events.PointerPayload); ok {
			s.handleMove(ctx, p)
		}
	case events.EventPointerUp:
		if p, ok := event.Payload.(*events.PointerPayload); ok {
			s.handleUp(ctx, p)
		}
	case events.EventPaletteDrop:
		if p, ok := event.Payload.(*events.PaletteDropPayload); ok {
			s.handleDrop(ctx, p)
		}
	}
}

func (s *SurfaceSystem) handleDown(ctx *engine.GameContext, p *events.PointerPayload) {
	if p.Button != events.ButtonPrimary {
		return
	}
	bx, by, inside := ctx.BoardLocal(p.X, p.Y)
	if !inside {
		return
	}
	item, ok := ctx.Board.TopItemAt(bx, by)
	if !ok {
		return
	}
	s.dragUID = item.UID
	s.grabDX = bx - item.X
	s.grabDY = by - item.Y
}

func (s *SurfaceSystem) handleMove(ctx *engine.GameContext, p *events.PointerPayload) {
	if s.dragUID == "" {
		return
	}
	bx := p.X - ctx.BoardX
	by := p.Y - ctx.BoardY
	ctx.Board.MoveTo(s.dragUID, bx-s.grabDX, by-s.grabDY)
}

func (s *SurfaceSystem) handleUp(ctx *engine.GameContext, p *events.PointerPayload) {
	dragUID := s.dragUID
	s.dragUID = ""

	if p.Clicked {
		s.handleClick(ctx, p)
		return
	}
	if dragUID == "" {
		return
	}

	// Drag end: hit-test the release point against the other items'
	// boxes, earliest placed wins
	bx := p.X - ctx.BoardX
	by := p.Y - ctx.BoardY
	target, ok := ctx.Board.HitTest(bx, by, dragUID)
	if !ok {
		return
	}
	ctx.Queue.Push(events.GameEvent{
		Type:      events.EventCombineRequest,
		Payload:   &events.CombineRequestPayload{SourceUID: dragUID, TargetUID: target.UID},
		Timestamp: ctx.Time.Now(),
	})
}

func (s *SurfaceSystem) handleClick(ctx *engine.GameContext, p *events.PointerPayload) {
	if ctx.InSidebar(p.X, p.Y) {
		entry, ok := ctx.SidebarEntryAt(p.X, p.Y)
		if !ok {
			return
		}
		if p.Button == events.ButtonSecondary {
			ctx.Queue.Push(events.GameEvent{
				Type:      events.EventPinToggle,
				Payload:   &events.PinTogglePayload{ItemID: entry.ID},
				Timestamp: ctx.Time.Now(),
			})
			return
		}
		// A live board instance of the entry is picked for combination
		// instead of spawning a duplicate
		for _, item := range ctx.Board.Items() {
			if item.ItemID == entry.ID && !item.Vanishing {
				ctx.Queue.Push(events.GameEvent{
					Type:      events.EventItemPick,
					Payload:   &events.ItemPickPayload{UID: item.UID},
					Timestamp: ctx.Time.Now(),
				})
				return
			}
		}
		x, y := ctx.RandomSpawn()
		ctx.Queue.Push(events.GameEvent{
			Type:      events.EventPaletteDrop,
			Payload:   &events.PaletteDropPayload{ItemID: entry.ID, X: x, Y: y},
			Timestamp: ctx.Time.Now(),
		})
		return
	}

	if p.Button != events.ButtonPrimary {
		return
	}
	bx, by, inside := ctx.BoardLocal(p.X, p.Y)
	if !inside {
		return
	}
	if item, ok := ctx.Board.TopItemAt(bx, by); ok {
		ctx.Queue.Push(events.GameEvent{
			Type:      events.EventItemPick,
			Payload:   &events.ItemPickPayload{UID: item.UID},
			Timestamp: ctx.Time.Now(),
		})
		return
	}
	ctx.Queue.Push(events.GameEvent{
		Type:      events.EventClearSelection,
		Timestamp: ctx.Time.Now(),
	})
}

func (s *SurfaceSystem) handleDrop(ctx *engine.GameContext, p *events.PaletteDropPayload) {
	item := engine.PlacedItem{
		ItemID:    p.ItemID,
		X:         p.X,
		Y:         p.Y,
		CreatedAt: ctx.Time.Now(),
	}
	if entry, ok := ctx.Catalog.Get(p.ItemID); ok {
		item.Name = entry.Name
		item.Glyph = entry.Glyph
		item.Description = entry.Description
		item.Tags = entry.Tags
	}
	if item.Name == "" {
		item.Name = "Unknown"
	}
	if item.Glyph == "" {
		item.Glyph = "✨"
	}
	ctx.Board.Insert(item)
}
