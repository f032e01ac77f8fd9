package systems

import (
	"context"
	"errors"
	"testing"

	"github.com/meldworks/meldboard/client"
	"github.com/meldworks/meldboard/constants"
	"github.com/meldworks/meldboard/engine"
	"github.com/meldworks/meldboard/events"
)

type fakeCombiner struct {
	result    client.CombineResult
	err       error
	calls     int
	gotA      int
	gotB      int
	gotUnsafe bool
}

func (f *fakeCombiner) Combine(_ context.Context, _ string, aID, bID int, allowUnsafe bool) (client.CombineResult, error) {
	f.calls++
	f.gotA, f.gotB, f.gotUnsafe = aID, bID, allowUnsafe
	return f.result, f.err
}

type fakePopper struct{ pops int }

func (f *fakePopper) Pop() { f.pops++ }

// newCombineHarness wires an inline-dispatching combine system so the
// request, service call and resolution all run synchronously in the test.
func newCombineHarness(t *testing.T, fake *fakeCombiner) (*engine.GameContext, *CombineSystem) {
	t.Helper()
	ctx, _ := newTestContext(t)
	s := NewCombineSystem(fake)
	s.dispatch = func(fn func()) { fn() }
	return ctx, s
}

func request(source, target string) events.GameEvent {
	return events.GameEvent{
		Type:    events.EventCombineRequest,
		Payload: &events.CombineRequestPayload{SourceUID: source, TargetUID: target},
	}
}

// resolvePending routes queued resolution events back into the system and
// returns any toast requests raised while applying them.
func resolvePending(ctx *engine.GameContext, s *CombineSystem) []*events.ToastPayload {
	for _, ev := range ctx.Queue.Consume() {
		if ev.Type == events.EventCombineResolved {
			s.HandleEvent(ctx, ev)
		}
	}
	var toasts []*events.ToastPayload
	for _, ev := range ctx.Queue.Consume() {
		if ev.Type == events.EventToastRequest {
			toasts = append(toasts, ev.Payload.(*events.ToastPayload))
		}
	}
	return toasts
}

func TestSuccessSpawnsAndConsumesPair(t *testing.T) {
	fake := &fakeCombiner{result: client.CombineResult{
		Element:                client.Element{ID: 9, Name: "Steam", Glyph: "♨️", Description: "hot mist"},
		IsNewElementForSession: true,
	}}
	ctx, s := newCombineHarness(t, fake)
	pop := &fakePopper{}
	ctx.Audio = pop

	source := ctx.Board.Insert(engine.PlacedItem{ItemID: 1, X: 10, Y: 10})
	target := ctx.Board.Insert(engine.PlacedItem{ItemID: 2, X: 40, Y: 20})

	s.HandleEvent(ctx, request(source, target))
	toasts := resolvePending(ctx, s)

	if fake.calls != 1 || fake.gotA != 1 || fake.gotB != 2 {
		t.Fatalf("service call: %+v", fake)
	}

	if ctx.Board.Len() != 3 {
		t.Fatalf("board holds %d items, want 3", ctx.Board.Len())
	}
	spawned := ctx.Board.Items()[2]
	wantX := 40 + constants.CombineSpawnOffsetX
	wantY := 20 + constants.CombineSpawnOffsetY
	if spawned.X != wantX || spawned.Y != wantY {
		t.Errorf("spawn at (%d,%d), want (%d,%d)", spawned.X, spawned.Y, wantX, wantY)
	}
	if !spawned.Highlighted || spawned.HighlightRemaining != constants.HighlightDuration {
		t.Error("spawned item should carry the novelty highlight")
	}
	if spawned.Name != "Steam" || spawned.ItemID != 9 {
		t.Errorf("spawned item: %+v", spawned)
	}

	src, _ := ctx.Board.Get(source)
	tgt, _ := ctx.Board.Get(target)
	if !src.Vanishing || !tgt.Vanishing {
		t.Error("source and target must both be vanishing")
	}

	if entry, ok := ctx.Catalog.Get(9); !ok || entry.Name != "Steam" {
		t.Error("catalog cache not enriched from the response")
	}
	if pop.pops != 1 {
		t.Errorf("pop sound played %d times, want 1", pop.pops)
	}
	if len(toasts) != 1 || toasts[0].Severity != events.ToastSuccess {
		t.Fatalf("toasts: %+v", toasts)
	}
}

func TestFirstEverToastTakesPrecedence(t *testing.T) {
	fake := &fakeCombiner{result: client.CombineResult{
		Element:                client.Element{ID: 9, Name: "Steam"},
		IsFirstEverCombination: true,
		IsNewElementForSession: true,
	}}
	ctx, s := newCombineHarness(t, fake)
	source := ctx.Board.Insert(engine.PlacedItem{ItemID: 1})
	target := ctx.Board.Insert(engine.PlacedItem{ItemID: 2, X: 40})

	s.HandleEvent(ctx, request(source, target))
	toasts := resolvePending(ctx, s)

	if len(toasts) != 1 || toasts[0].Severity != events.ToastCelebrate {
		t.Fatalf("want a single first-ever toast, got %+v", toasts)
	}
	spawned := ctx.Board.Items()[2]
	if !spawned.FirstEver {
		t.Error("first-ever flag not carried onto the spawned item")
	}
}

func TestKnownRecombinationRaisesNoToast(t *testing.T) {
	fake := &fakeCombiner{result: client.CombineResult{
		Element: client.Element{ID: 9, Name: "Steam"},
	}}
	ctx, s := newCombineHarness(t, fake)
	source := ctx.Board.Insert(engine.PlacedItem{ItemID: 1})
	target := ctx.Board.Insert(engine.PlacedItem{ItemID: 2, X: 40})

	s.HandleEvent(ctx, request(source, target))
	if toasts := resolvePending(ctx, s); len(toasts) != 0 {
		t.Errorf("already-known recombination toasted: %+v", toasts)
	}
}

func TestRateLimitLeavesStoreUntouched(t *testing.T) {
	fake := &fakeCombiner{result: client.CombineResult{RateLimitReached: true}}
	ctx, s := newCombineHarness(t, fake)
	source := ctx.Board.Insert(engine.PlacedItem{ItemID: 1, X: 10, Y: 10})
	target := ctx.Board.Insert(engine.PlacedItem{ItemID: 2, X: 40, Y: 20})

	before := snapshotBoard(ctx)
	s.HandleEvent(ctx, request(source, target))
	toasts := resolvePending(ctx, s)

	if !sameSnapshots(before, snapshotBoard(ctx)) {
		t.Error("rate limit mutated the store")
	}
	if len(toasts) != 1 || toasts[0].Severity != events.ToastWarning {
		t.Fatalf("toasts: %+v", toasts)
	}
}

func TestFailureLeavesStoreUntouched(t *testing.T) {
	fake := &fakeCombiner{err: errors.New("service down")}
	ctx, s := newCombineHarness(t, fake)
	source := ctx.Board.Insert(engine.PlacedItem{ItemID: 1})
	target := ctx.Board.Insert(engine.PlacedItem{ItemID: 2, X: 40})

	before := snapshotBoard(ctx)
	s.HandleEvent(ctx, request(source, target))
	toasts := resolvePending(ctx, s)

	if !sameSnapshots(before, snapshotBoard(ctx)) {
		t.Error("failure mutated the store")
	}
	if len(toasts) != 1 || toasts[0].Severity != events.ToastError {
		t.Fatalf("toasts: %+v", toasts)
	}
}

func TestVanishingOperandDropsRequestSilently(t *testing.T) {
	fake := &fakeCombiner{}
	ctx, s := newCombineHarness(t, fake)
	source := ctx.Board.Insert(engine.PlacedItem{ItemID: 1})
	target := ctx.Board.Insert(engine.PlacedItem{ItemID: 2, X: 40})
	ctx.Board.MarkVanishing(source)

	s.HandleEvent(ctx, request(source, target))
	if fake.calls != 0 {
		t.Error("service called for a vanishing operand")
	}
	if toasts := resolvePending(ctx, s); len(toasts) != 0 {
		t.Error("dropped request produced a notification")
	}
}

func TestSelfCombinationDropped(t *testing.T) {
	fake := &fakeCombiner{}
	ctx, s := newCombineHarness(t, fake)
	uid := ctx.Board.Insert(engine.PlacedItem{ItemID: 1})

	s.HandleEvent(ctx, request(uid, uid))
	if fake.calls != 0 {
		t.Error("self-combination reached the service")
	}
}

func TestSelectionClearedAtMarkTime(t *testing.T) {
	fake := &fakeCombiner{result: client.CombineResult{
		Element: client.Element{ID: 9, Name: "Steam"},
	}}
	ctx, s := newCombineHarness(t, fake)
	source := ctx.Board.Insert(engine.PlacedItem{ItemID: 1})
	target := ctx.Board.Insert(engine.PlacedItem{ItemID: 2, X: 40})

	// A different gesture selected the target meanwhile
	ctx.Selection.Pick(target)

	s.HandleEvent(ctx, request(source, target))
	resolvePending(ctx, s)

	if _, ok := ctx.Selection.Selected(); ok {
		t.Error("selection must clear the moment its item is marked vanishing")
	}
}

func TestSafetyOverrideForwarded(t *testing.T) {
	fake := &fakeCombiner{result: client.CombineResult{Element: client.Element{ID: 9}}}
	ctx, s := newCombineHarness(t, fake)
	ctx.Prefs.SafetyOverride = true
	source := ctx.Board.Insert(engine.PlacedItem{ItemID: 1})
	target := ctx.Board.Insert(engine.PlacedItem{ItemID: 2, X: 40})

	s.HandleEvent(ctx, request(source, target))
	if !fake.gotUnsafe {
		t.Error("safety override not forwarded to the service")
	}
}
