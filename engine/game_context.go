package engine

import (
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/meldworks/meldboard/catalog"
	"github.com/meldworks/meldboard/constants"
	"github.com/meldworks/meldboard/events"
	"github.com/meldworks/meldboard/session"
)

// Popper plays the combination pop sound. A nil Popper is silent.
type Popper interface {
	Pop()
}

// SidebarState is the catalog palette view state
type SidebarState struct {
	Scroll    int
	Filter    string
	Filtering bool // Filter text entry active
}

// ToastState is the single visible notification, if any
type ToastState struct {
	Message   string
	Severity  events.ToastSeverity
	Remaining time.Duration
}

// Active reports whether a toast is currently shown
func (t *ToastState) Active() bool {
	return t.Message != ""
}

// GameContext holds all game state shared by the systems. Every mutation
// happens on the game loop goroutine; the context is not locked.
type GameContext struct {
	Board     *Board
	Selection *Selection
	Catalog   *catalog.Cache
	Queue     *events.Queue
	Time      TimeProvider
	Rand      *rand.Rand
	Audio     Popper

	// Session identity and persisted preferences
	Prefs session.Prefs
	Store *session.Store

	// Screen dimensions
	Width, Height int

	// Board region (screen coordinates)
	BoardX, BoardY         int
	BoardWidth, BoardHeight int

	// Sidebar region
	SidebarX int

	Sidebar SidebarState
	Toast   ToastState
}

// NewGameContext creates the context and lays out the board and sidebar
// for the given screen size.
func NewGameContext(width, height int, tp TimeProvider, queue *events.Queue, cache *catalog.Cache) *GameContext {
	ctx := &GameContext{
		Selection: NewSelection(),
		Catalog:   cache,
		Queue:     queue,
		Time:      tp,
		Rand:      rand.New(rand.NewSource(tp.Now().UnixNano())),
		Width:     width,
		Height:    height,
	}
	ctx.updateLayout()
	ctx.Board = NewBoard(ctx.BoardWidth, ctx.BoardHeight)
	return ctx
}

// Resize recomputes the layout and re-clamps resident items.
func (ctx *GameContext) Resize(width, height int) {
	ctx.Width = width
	ctx.Height = height
	ctx.updateLayout()
	ctx.Board.Resize(ctx.BoardWidth, ctx.BoardHeight)
}

func (ctx *GameContext) updateLayout() {
	ctx.BoardX = 0
	ctx.BoardY = constants.TopBarHeight
	ctx.SidebarX = ctx.Width - constants.SidebarWidth
	if ctx.SidebarX < 0 {
		ctx.SidebarX = 0
	}
	ctx.BoardWidth = ctx.SidebarX
	ctx.BoardHeight = ctx.Height - constants.TopBarHeight - constants.StatusBarHeight
	if ctx.BoardWidth < 1 {
		ctx.BoardWidth = 1
	}
	if ctx.BoardHeight < 1 {
		ctx.BoardHeight = 1
	}
}

// BoardLocal converts screen coordinates to board-local coordinates.
func (ctx *GameContext) BoardLocal(x, y int) (int, int, bool) {
	bx := x - ctx.BoardX
	by := y - ctx.BoardY
	inside := bx >= 0 && bx < ctx.BoardWidth && by >= 0 && by < ctx.BoardHeight
	return bx, by, inside
}

// InSidebar reports whether the screen coordinate falls in the palette.
func (ctx *GameContext) InSidebar(x, y int) bool {
	return x >= ctx.SidebarX && y >= constants.TopBarHeight &&
		y < ctx.Height-constants.StatusBarHeight
}

// RandomSpawn returns a random clamped board position for palette spawns.
func (ctx *GameContext) RandomSpawn() (int, int) {
	maxX := ctx.BoardWidth - constants.ItemBoxWidth - constants.BoardMargin
	maxY := ctx.BoardHeight - constants.ItemBoxHeight - constants.BoardMargin
	if maxX <= constants.BoardMargin || maxY <= constants.BoardMargin {
		return constants.BoardMargin, constants.BoardMargin
	}
	x := constants.BoardMargin + ctx.Rand.Intn(maxX-constants.BoardMargin+1)
	y := constants.BoardMargin + ctx.Rand.Intn(maxY-constants.BoardMargin+1)
	return x, y
}

// Pinned reports whether the catalog id is pinned.
func (ctx *GameContext) Pinned(id int) bool {
	for _, pinned := range ctx.Prefs.PinnedIDs {
		if pinned == id {
			return true
		}
	}
	return false
}

// TogglePin flips the pinned state of a catalog id and persists it.
func (ctx *GameContext) TogglePin(id int) {
	next := make([]int, 0, len(ctx.Prefs.PinnedIDs)+1)
	found := false
	for _, pinned := range ctx.Prefs.PinnedIDs {
		if pinned == id {
			found = true
			continue
		}
		next = append(next, pinned)
	}
	if !found {
		next = append(next, id)
	}
	ctx.Prefs.PinnedIDs = next
	ctx.persistPrefs()
}

// ToggleTheme switches between the light and dark palettes and persists.
func (ctx *GameContext) ToggleTheme() {
	if ctx.Prefs.Theme == "dark" {
		ctx.Prefs.Theme = "light"
	} else {
		ctx.Prefs.Theme = "dark"
	}
	ctx.persistPrefs()
}

func (ctx *GameContext) persistPrefs() {
	if ctx.Store == nil {
		return
	}
	if err := ctx.Store.Save(ctx.Prefs); err != nil {
		log.Printf("prefs save failed: %v", err)
	}
}

// SidebarEntryAt maps a screen coordinate inside the palette to the
// catalog entry rendered on that row.
func (ctx *GameContext) SidebarEntryAt(x, y int) (catalog.Entry, bool) {
	if !ctx.InSidebar(x, y) {
		return catalog.Entry{}, false
	}
	idx := y - constants.TopBarHeight - constants.SidebarHeaderRows + ctx.Sidebar.Scroll
	entries := ctx.SidebarEntries()
	if idx < 0 || idx >= len(entries) {
		return catalog.Entry{}, false
	}
	return entries[idx], true
}

// SidebarEntries returns the palette list: pinned entries first in pin
// order, then the rest in catalog order, filtered by the sidebar filter.
func (ctx *GameContext) SidebarEntries() []catalog.Entry {
	filter := strings.ToLower(strings.TrimSpace(ctx.Sidebar.Filter))
	matches := func(e catalog.Entry) bool {
		return filter == "" || strings.Contains(strings.ToLower(e.Name), filter)
	}

	all := ctx.Catalog.Entries()
	out := make([]catalog.Entry, 0, len(all))
	for _, id := range ctx.Prefs.PinnedIDs {
		if e, ok := ctx.Catalog.Get(id); ok && matches(e) {
			out = append(out, e)
		}
	}
	for _, e := range all {
		if ctx.Pinned(e.ID) {
			continue
		}
		if matches(e) {
			out = append(out, e)
		}
	}
	return out
}
