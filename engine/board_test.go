package engine

import (
	"fmt"
	"testing"

	"github.com/meldworks/meldboard/constants"
)

func newTestBoard() *Board {
	return NewBoard(120, 40)
}

func TestInsertAssignsUniqueUIDs(t *testing.T) {
	b := newTestBoard()
	seen := make(map[string]bool)
	for i := 0; i < constants.BoardCapacity; i++ {
		uid := b.Insert(PlacedItem{ItemID: i, X: 5, Y: 5})
		if uid == "" {
			t.Fatal("empty uid")
		}
		if seen[uid] {
			t.Fatalf("uid %q reused", uid)
		}
		seen[uid] = true
	}
}

func TestCapacityEvictsOldestFirst(t *testing.T) {
	b := newTestBoard()
	uids := make([]string, 0, constants.BoardCapacity+1)
	for i := 0; i <= constants.BoardCapacity; i++ {
		uids = append(uids, b.Insert(PlacedItem{ItemID: i, Name: fmt.Sprintf("item-%d", i)}))
	}

	if b.Len() != constants.BoardCapacity {
		t.Fatalf("board holds %d items, want %d", b.Len(), constants.BoardCapacity)
	}
	if _, ok := b.Get(uids[0]); ok {
		t.Error("oldest item should have been evicted")
	}
	for i, item := range b.Items() {
		if item.UID != uids[i+1] {
			t.Fatalf("insertion order broken at index %d", i)
		}
	}
}

func TestInsertClampsPosition(t *testing.T) {
	b := newTestBoard()
	maxX := 120 - constants.ItemBoxWidth - constants.BoardMargin
	maxY := 40 - constants.ItemBoxHeight - constants.BoardMargin

	cases := []struct {
		name           string
		x, y           int
		wantX, wantY   int
	}{
		{"inside", 10, 10, 10, 10},
		{"negative", -50, -3, constants.BoardMargin, constants.BoardMargin},
		{"beyond", 500, 500, maxX, maxY},
		{"zero", 0, 0, constants.BoardMargin, constants.BoardMargin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uid := b.Insert(PlacedItem{X: tc.x, Y: tc.y})
			item, _ := b.Get(uid)
			if item.X != tc.wantX || item.Y != tc.wantY {
				t.Errorf("stored (%d,%d), want (%d,%d)", item.X, item.Y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestMoveToClampsAndIgnoresVanishing(t *testing.T) {
	b := newTestBoard()
	uid := b.Insert(PlacedItem{X: 10, Y: 10})

	b.MoveTo(uid, -5, 700)
	item, _ := b.Get(uid)
	if item.X != constants.BoardMargin {
		t.Errorf("x not clamped low: %d", item.X)
	}
	if item.Y != 40-constants.ItemBoxHeight-constants.BoardMargin {
		t.Errorf("y not clamped high: %d", item.Y)
	}

	b.MarkVanishing(uid)
	before := *item
	b.MoveTo(uid, 3, 3)
	if item.X != before.X || item.Y != before.Y {
		t.Error("moveTo mutated a vanishing item")
	}

	// Unknown uid is a no-op, not a panic
	b.MoveTo("no-such-uid", 1, 1)
}

func TestMarkVanishingIdempotent(t *testing.T) {
	b := newTestBoard()
	uid := b.Insert(PlacedItem{})

	b.MarkVanishing(uid, "missing")
	item, _ := b.Get(uid)
	if !item.Vanishing || item.VanishRemaining != constants.VanishDuration {
		t.Fatalf("vanish not armed: %+v", item)
	}

	item.VanishRemaining = constants.VanishDuration / 2
	b.MarkVanishing(uid) // second mark must not re-arm the deadline
	if item.VanishRemaining != constants.VanishDuration/2 {
		t.Error("re-marking reset the removal deadline")
	}
}

func TestMarkVanishingDropsHighlight(t *testing.T) {
	b := newTestBoard()
	uid := b.Insert(PlacedItem{Highlighted: true})

	b.MarkVanishing(uid)
	item, _ := b.Get(uid)
	if item.Highlighted || item.HighlightRemaining != 0 {
		t.Errorf("consumed item kept its novelty highlight: %+v", item)
	}
}

func TestRemoveAllIdempotent(t *testing.T) {
	b := newTestBoard()
	a := b.Insert(PlacedItem{})
	c := b.Insert(PlacedItem{})

	b.RemoveAll(a, "missing", a)
	if b.Len() != 1 {
		t.Fatalf("board holds %d items, want 1", b.Len())
	}
	if _, ok := b.Get(c); !ok {
		t.Error("unrelated item removed")
	}
	b.RemoveAll(a) // already gone
	if b.Len() != 1 {
		t.Error("second removal changed the board")
	}
}

func TestHitTestEarliestWinsAndExcludesVanishing(t *testing.T) {
	b := newTestBoard()
	first := b.Insert(PlacedItem{X: 10, Y: 10})
	second := b.Insert(PlacedItem{X: 12, Y: 11}) // overlaps first

	hit, ok := b.HitTest(14, 12, "")
	if !ok || hit.UID != first {
		t.Fatalf("overlap tie should go to earliest insertion, got %v", hit)
	}

	hit, ok = b.HitTest(14, 12, first)
	if !ok || hit.UID != second {
		t.Fatal("exclusion should fall through to the next overlapping item")
	}

	b.MarkVanishing(first)
	hit, ok = b.HitTest(14, 12, "")
	if !ok || hit.UID != second {
		t.Error("vanishing item must be excluded from hit testing")
	}

	b.MarkVanishing(second)
	if _, ok := b.HitTest(14, 12, ""); ok {
		t.Error("no live item should hit")
	}
}

func TestTopItemAtPrefersLatest(t *testing.T) {
	b := newTestBoard()
	b.Insert(PlacedItem{X: 10, Y: 10})
	top := b.Insert(PlacedItem{X: 12, Y: 11})

	item, ok := b.TopItemAt(14, 12)
	if !ok || item.UID != top {
		t.Error("grab resolution should prefer the render-topmost item")
	}
}

func TestResizeReclamps(t *testing.T) {
	b := newTestBoard()
	uid := b.Insert(PlacedItem{X: 90, Y: 30})

	b.Resize(60, 20)
	item, _ := b.Get(uid)
	if item.X > 60-constants.ItemBoxWidth-constants.BoardMargin {
		t.Errorf("x outside shrunk board: %d", item.X)
	}
	if item.Y > 20-constants.ItemBoxHeight-constants.BoardMargin {
		t.Errorf("y outside shrunk board: %d", item.Y)
	}
}
