package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/meldworks/meldboard/constants"
)

// PlacedItem is a board-resident instance of a catalog item. It carries
// denormalized display fields captured at spawn time so rendering never
// needs a live cache lookup.
type PlacedItem struct {
	UID         string // Instance identity, unique for the process lifetime
	ItemID      int    // Catalog identity, non-owning reference
	Name        string
	Glyph       string
	Description string
	Tags        []string

	X, Y      int
	CreatedAt time.Time

	// Novelty highlight, cleared once by the lifecycle system
	Highlighted        bool
	HighlightRemaining time.Duration
	FirstEver          bool

	// A vanishing item is frozen: excluded from every interaction query
	// but still rendered until its removal deadline
	Vanishing       bool
	VanishRemaining time.Duration
}

// Box reports whether the board coordinate (x, y) falls inside the item's
// rendered footprint.
func (p *PlacedItem) Box(x, y int) bool {
	return x >= p.X && x < p.X+constants.ItemBoxWidth &&
		y >= p.Y && y < p.Y+constants.ItemBoxHeight
}

// Board is the bounded, insertion-ordered collection of items resting on
// the surface. All mutation happens on the game loop goroutine; the board
// itself is not locked.
//
// Invariants:
//   - UIDs are unique among resident items and never reused
//   - At most constants.BoardCapacity items; overflow evicts from the head
//   - Positions stay clamped inside the board margins on both axes
type Board struct {
	items  []*PlacedItem
	byUID  map[string]*PlacedItem
	width  int
	height int
}

// NewBoard creates an empty board with the given extent in cells.
func NewBoard(width, height int) *Board {
	return &Board{
		items:  make([]*PlacedItem, 0, constants.BoardCapacity),
		byUID:  make(map[string]*PlacedItem, constants.BoardCapacity),
		width:  width,
		height: height,
	}
}

// Size returns the board extent.
func (b *Board) Size() (int, int) {
	return b.width, b.height
}

// Resize updates the board extent and re-clamps every resident item.
func (b *Board) Resize(width, height int) {
	b.width = width
	b.height = height
	for _, item := range b.items {
		item.X, item.Y = b.clamp(item.X, item.Y)
	}
}

// Insert clamps the item's position, assigns a fresh uid, appends at the
// tail and evicts from the head until the board is back at capacity.
// Returns the assigned uid.
func (b *Board) Insert(item PlacedItem) string {
	item.UID = uuid.NewString()
	item.X, item.Y = b.clamp(item.X, item.Y)
	if item.Highlighted {
		item.HighlightRemaining = constants.HighlightDuration
	}

	stored := &item
	b.items = append(b.items, stored)
	b.byUID[stored.UID] = stored

	for len(b.items) > constants.BoardCapacity {
		oldest := b.items[0]
		b.items = b.items[1:]
		delete(b.byUID, oldest.UID)
	}
	return stored.UID
}

// MoveTo overwrites the item's position after clamping. Vanishing or
// unknown uids are ignored.
func (b *Board) MoveTo(uid string, x, y int) {
	item, ok := b.byUID[uid]
	if !ok || item.Vanishing {
		return
	}
	item.X, item.Y = b.clamp(x, y)
}

// MarkVanishing flips the vanishing flag and arms the removal deadline for
// each uid present. The novelty highlight drops with it; a frozen item
// renders as consumed, not as new. Unknown uids are silently ignored.
func (b *Board) MarkVanishing(uids ...string) {
	for _, uid := range uids {
		item, ok := b.byUID[uid]
		if !ok || item.Vanishing {
			continue
		}
		item.Vanishing = true
		item.VanishRemaining = constants.VanishDuration
		item.Highlighted = false
		item.HighlightRemaining = 0
	}
}

// RemoveAll deletes items by uid. Unknown uids are silently ignored, which
// absorbs removal deadlines firing after an eviction already took the item.
func (b *Board) RemoveAll(uids ...string) {
	if len(uids) == 0 {
		return
	}
	drop := make(map[string]bool, len(uids))
	for _, uid := range uids {
		if _, ok := b.byUID[uid]; ok {
			drop[uid] = true
			delete(b.byUID, uid)
		}
	}
	if len(drop) == 0 {
		return
	}
	kept := b.items[:0]
	for _, item := range b.items {
		if !drop[item.UID] {
			kept = append(kept, item)
		}
	}
	b.items = kept
}

// Get returns the resident item for uid.
func (b *Board) Get(uid string) (*PlacedItem, bool) {
	item, ok := b.byUID[uid]
	return item, ok
}

// Items returns the resident items in insertion order. The returned slice
// is shared with the board; callers must not retain it across mutations.
func (b *Board) Items() []*PlacedItem {
	return b.items
}

// Len returns the number of resident items, vanishing ones included.
func (b *Board) Len() int {
	return len(b.items)
}

// HitTest returns the earliest-placed non-vanishing item whose box contains
// (x, y), excluding the given uid. Insertion order breaks overlap ties.
func (b *Board) HitTest(x, y int, excludeUID string) (*PlacedItem, bool) {
	for _, item := range b.items {
		if item.UID == excludeUID || item.Vanishing {
			continue
		}
		if item.Box(x, y) {
			return item, true
		}
	}
	return nil, false
}

// TopItemAt returns the latest-placed non-vanishing item whose box contains
// (x, y). Later items render on top, so they win grab resolution.
func (b *Board) TopItemAt(x, y int) (*PlacedItem, bool) {
	for i := len(b.items) - 1; i >= 0; i-- {
		item := b.items[i]
		if item.Vanishing {
			continue
		}
		if item.Box(x, y) {
			return item, true
		}
	}
	return nil, false
}

func (b *Board) clamp(x, y int) (int, int) {
	maxX := b.width - constants.ItemBoxWidth - constants.BoardMargin
	maxY := b.height - constants.ItemBoxHeight - constants.BoardMargin
	if maxX < constants.BoardMargin {
		maxX = constants.BoardMargin
	}
	if maxY < constants.BoardMargin {
		maxY = constants.BoardMargin
	}
	if x < constants.BoardMargin {
		x = constants.BoardMargin
	}
	if x > maxX {
		x = maxX
	}
	if y < constants.BoardMargin {
		y = constants.BoardMargin
	}
	if y > maxY {
		y = maxY
	}
	return x, y
}
