package systems

import (
	"context"
	"fmt"
	"time"

	"github.com/meldworks/meldboard/catalog"
	"github.com/meldworks/meldboard/client"
	"github.com/meldworks/meldboard/constants"
	"github.com/meldworks/meldboard/engine"
	"github.com/meldworks/meldboard/events"
)

// Combiner is the generator service call behind a combination request.
type Combiner interface {
	Combine(ctx context.Context, sessionID string, aID, bID int, allowUnsafe bool) (client.CombineResult, error)
}

// CombineSystem dispatches combination requests and applies their
// outcomes. The service call runs on its own goroutine; the outcome is
// posted back onto the event queue so every mutation still happens on the
// game loop. Requests are not serialized: each resolution only touches the
// two uids it was dispatched with, and re-validation on the way out plus
// idempotent-by-uid board operations make interleaved outcomes safe.
type CombineSystem struct {
	combiner Combiner
	dispatch func(func())
}

func NewCombineSystem(combiner Combiner) *CombineSystem {
	return &CombineSystem{
		combiner: combiner,
		dispatch: func(fn func()) { go fn() },
	}
}

func (s *CombineSystem) Priority() int {
	return constants.PriorityCombine
}

func (s *CombineSystem) Update(_ *engine.GameContext, _ time.Duration) {}

// EventTypes returns the event types CombineSystem handles
func (s *CombineSystem) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventCombineRequest,
		events.EventCombineResolved,
	}
}

func (s *CombineSystem) HandleEvent(ctx *engine.GameContext, event events.GameEvent) {
	switch event.Type {
	case events.EventCombineRequest:
		if p, ok := event.Payload.(*events.CombineRequestPayload); ok {
			s.handleRequest(ctx, p)
		}
	case events.EventCombineResolved:
		if p, ok := event.Payload.(*events.CombineResolvedPayload); ok {
			s.handleResolved(ctx, p)
		}
	}
}

func (s *CombineSystem) handleRequest(ctx *engine.GameContext, p *events.CombineRequestPayload) {
	if p.SourceUID == p.TargetUID {
		return
	}
	source, ok := ctx.Board.Get(p.SourceUID)
	if !ok || source.Vanishing {
		return
	}
	target, ok := ctx.Board.Get(p.TargetUID)
	if !ok || target.Vanishing {
		return
	}

	resolved := &events.CombineResolvedPayload{
		SourceUID: p.SourceUID,
		TargetUID: p.TargetUID,
		SpawnX:    target.X + constants.CombineSpawnOffsetX,
		SpawnY:    target.Y + constants.CombineSpawnOffsetY,
	}
	sessionID := ctx.Prefs.SessionID
	allowUnsafe := ctx.Prefs.SafetyOverride
	aID, bID := source.ItemID, target.ItemID
	queue := ctx.Queue
	clock := ctx.Time

	s.dispatch(func() {
		callCtx, cancel := context.WithTimeout(context.Background(), constants.CombineTimeout)
		defer cancel()

		result, err := s.combiner.Combine(callCtx, sessionID, aID, bID, allowUnsafe)
		switch {
		case err != nil:
			resolved.Outcome = events.OutcomeFailure
		case result.RateLimitReached:
			resolved.Outcome = events.OutcomeRateLimited
		default:
			resolved.Outcome = events.OutcomeSuccess
			resolved.Element = events.ResultElement{
				ID:          result.Element.ID,
				Name:        result.Element.Name,
				Glyph:       result.Element.Glyph,
				Description: result.Element.Description,
				Tags:        result.Element.Tags,
			}
			resolved.FirstEver = result.IsFirstEverCombination
			resolved.NewForSession = result.IsNewElementForSession
		}
		queue.Push(events.GameEvent{
			Type:      events.EventCombineResolved,
			Payload:   resolved,
			Timestamp: clock.Now(),
		})
	})
}

func (s *CombineSystem) handleResolved(ctx *engine.GameContext, p *events.CombineResolvedPayload) {
	switch p.Outcome {
	case events.OutcomeFailure:
		s.toast(ctx, events.ToastError, "Something went wrong. Try again.")
		return
	case events.OutcomeRateLimited:
		s.toast(ctx, events.ToastWarning, "You've been on a roll today! Take a break and come back soon.")
		return
	}

	ctx.Catalog.Put(catalog.Entry{
		ID:          p.Element.ID,
		Name:        p.Element.Name,
		Glyph:       p.Element.Glyph,
		Description: p.Element.Description,
		Tags:        p.Element.Tags,
	})

	item := engine.PlacedItem{
		ItemID:      p.Element.ID,
		Name:        p.Element.Name,
		Glyph:       p.Element.Glyph,
		Description: p.Element.Description,
		Tags:        p.Element.Tags,
		X:           p.SpawnX,
		Y:           p.SpawnY,
		CreatedAt:   ctx.Time.Now(),
		Highlighted: true,
		FirstEver:   p.FirstEver,
	}
	if item.Glyph == "" {
		item.Glyph = "✨"
	}
	ctx.Board.Insert(item)

	// Consumed pair vanishes; a selection pointing at either clears at
	// mark time, not at removal time
	ctx.Board.MarkVanishing(p.SourceUID, p.TargetUID)
	ctx.Selection.ClearIfAny(p.SourceUID, p.TargetUID)

	if ctx.Audio != nil {
		ctx.Audio.Pop()
	}

	switch {
	case p.FirstEver:
		s.toast(ctx, events.ToastCelebrate, "You discovered this combination first in the whole world!")
	case p.NewForSession:
		s.toast(ctx, events.ToastSuccess, fmt.Sprintf("%s is now in your collection!", p.Element.Name))
	}
}

func (s *CombineSystem) toast(ctx *engine.GameContext, severity events.ToastSeverity, message string) {
	ctx.Queue.Push(events.GameEvent{
		Type:      events.EventToastRequest,
		Payload:   &events.ToastPayload{Message: message, Severity: severity},
		Timestamp: ctx.Time.Now(),
	})
}
