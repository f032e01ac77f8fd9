package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/meldworks/meldboard/catalog"
	"github.com/meldworks/meldboard/constants"
	"github.com/meldworks/meldboard/engine"
	"github.com/meldworks/meldboard/events"
)

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("sim screen init: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func newRenderContext(width, height int) *engine.GameContext {
	tp := engine.NewMockTimeProvider(time.Unix(1700000000, 0))
	return engine.NewGameContext(width, height, tp, events.NewQueue(), catalog.NewCache())
}

func rowText(screen tcell.SimulationScreen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(ch)
	}
	return sb.String()
}

func TestFrameShowsPlacedItem(t *testing.T) {
	screen := newTestScreen(t, 120, 42)
	ctx := newRenderContext(120, 42)
	ctx.Board.Insert(engine.PlacedItem{ItemID: 1, Name: "Fire", Glyph: "F", X: 10, Y: 5})

	NewBoardRenderer("dark").Draw(screen, ctx)

	x := ctx.BoardX + 10
	y := ctx.BoardY + 5
	if ch, _, _, _ := screen.GetContent(x, y); ch != tcell.RuneULCorner {
		t.Errorf("no box corner at (%d,%d): got %q", x, y, ch)
	}
	nameRow := rowText(screen, y+2, 120)
	if !strings.Contains(nameRow, "Fire") {
		t.Errorf("item name missing from row %d: %q", y+2, nameRow)
	}
}

func TestSidebarListsCatalogEntries(t *testing.T) {
	screen := newTestScreen(t, 120, 42)
	ctx := newRenderContext(120, 42)
	ctx.Catalog.Put(catalog.Entry{ID: 1, Name: "Water", Glyph: "W", Seed: true})

	NewBoardRenderer("dark").Draw(screen, ctx)

	row := constants.TopBarHeight + constants.SidebarHeaderRows
	line := rowText(screen, row, 120)
	if !strings.Contains(line, "Water") {
		t.Errorf("sidebar row %d missing entry: %q", row, line)
	}
}

func TestToastRendersAboveStatusBar(t *testing.T) {
	screen := newTestScreen(t, 120, 42)
	ctx := newRenderContext(120, 42)
	ctx.Toast = engine.ToastState{
		Message:   "Steam is now in your collection!",
		Severity:  events.ToastSuccess,
		Remaining: constants.ToastDuration,
	}

	NewBoardRenderer("dark").Draw(screen, ctx)

	y := ctx.Height - constants.StatusBarHeight - 2
	line := rowText(screen, y, 120)
	if !strings.Contains(line, "Steam is now in your collection!") {
		t.Errorf("toast missing from row %d: %q", y, line)
	}
}

func TestThemeFollowsPreference(t *testing.T) {
	screen := newTestScreen(t, 120, 42)
	ctx := newRenderContext(120, 42)
	r := NewBoardRenderer("dark")
	r.Draw(screen, ctx)

	ctx.Prefs.Theme = "light"
	r.Draw(screen, ctx)
	if r.themeName != "light" {
		t.Errorf("renderer kept theme %q after preference change", r.themeName)
	}
}
