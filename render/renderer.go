package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/meldworks/meldboard/constants"
	"github.com/meldworks/meldboard/engine"
	"github.com/meldworks/meldboard/events"
)

// BoardRenderer draws the whole frame: top bar, board items, palette
// sidebar, status bar and the toast overlay. It holds no state of its own
// beyond the active theme; everything it draws comes from the context.
type BoardRenderer struct {
	theme     Theme
	themeName string
}

func NewBoardRenderer(themeName string) *BoardRenderer {
	return &BoardRenderer{theme: ThemeByName(themeName), themeName: themeName}
}

// Draw renders one frame. Items draw in insertion order so the most
// recently placed item ends up on top, matching how grabs resolve.
func (r *BoardRenderer) Draw(screen tcell.Screen, ctx *engine.GameContext) {
	if ctx.Prefs.Theme != r.themeName {
		r.themeName = ctx.Prefs.Theme
		r.theme = ThemeByName(r.themeName)
	}

	screen.Fill(' ', tcell.StyleDefault.Background(r.theme.Background))

	r.drawTopBar(screen, ctx)
	for _, item := range ctx.Board.Items() {
		r.drawItem(screen, ctx, item)
	}
	r.drawSidebar(screen, ctx)
	r.drawStatusBar(screen, ctx)
	if ctx.Toast.Active() {
		r.drawToast(screen, ctx)
	}
}

func (r *BoardRenderer) drawTopBar(screen tcell.Screen, ctx *engine.GameContext) {
	fillRow(screen, 0, 0, ctx.Width, r.theme.TopBar)
	title := fmt.Sprintf(" Meldboard — %d/%d placed, %d discovered",
		ctx.Board.Len(), constants.BoardCapacity, ctx.Catalog.Len())
	drawText(screen, 1, 0, ctx.Width-2, title, r.theme.TopBar)
}

func (r *BoardRenderer) drawItem(screen tcell.Screen, ctx *engine.GameContext, item *engine.PlacedItem) {
	x := ctx.BoardX + item.X
	y := ctx.BoardY + item.Y

	border := r.theme.BoxBorder
	name := r.theme.BoxName
	if selected, ok := ctx.Selection.Selected(); ok && selected == item.UID {
		border = r.theme.BoxSelected
		name = r.theme.BoxSelected
	}
	if item.Highlighted {
		border = r.theme.BoxHighlighted
	}
	if item.FirstEver && item.Highlighted {
		border = r.theme.BoxFirstEver
	}
	if item.Vanishing {
		border = r.theme.BoxVanishing
		name = r.theme.BoxVanishing
	}

	w, h := constants.ItemBoxWidth, constants.ItemBoxHeight
	drawBox(screen, x, y, w, h, border, r.theme.Background)

	glyph := item.Glyph
	if item.Vanishing {
		glyph = "·"
	}
	drawCentered(screen, x+1, y+1, w-2, glyph, r.theme.BoxFill)
	drawCentered(screen, x+1, y+2, w-2, truncate(item.Name, w-2), name)
	if item.FirstEver && !item.Vanishing {
		drawCentered(screen, x+1, y+3, w-2, "first!", r.theme.BoxFirstEver)
	}
}

func (r *BoardRenderer) drawSidebar(screen tcell.Screen, ctx *engine.GameContext) {
	top := constants.TopBarHeight
	bottom := ctx.Height - constants.StatusBarHeight
	for y := top; y < bottom; y++ {
		fillRow(screen, ctx.SidebarX, y, ctx.Width-ctx.SidebarX, r.theme.SidebarEntry)
	}

	drawText(screen, ctx.SidebarX+1, top, constants.SidebarWidth-2, "Elements", r.theme.SidebarHeader)

	filterRow := " /" + ctx.Sidebar.Filter
	filterStyle := r.theme.SidebarEntry
	if ctx.Sidebar.Filtering {
		filterRow += "█"
		filterStyle = r.theme.SidebarFilter
	} else if ctx.Sidebar.Filter == "" {
		filterRow = " / filter"
	}
	drawText(screen, ctx.SidebarX, top+1, constants.SidebarWidth-1, filterRow, filterStyle)

	entries := ctx.SidebarEntries()
	rows := bottom - top - constants.SidebarHeaderRows
	for row := 0; row < rows; row++ {
		idx := row + ctx.Sidebar.Scroll
		if idx < 0 || idx >= len(entries) {
			continue
		}
		e := entries[idx]
		style := r.theme.SidebarEntry
		marker := "  "
		if ctx.Pinned(e.ID) {
			style = r.theme.SidebarPinned
			marker = " •"
		}
		line := fmt.Sprintf("%s %s %s", marker, e.Glyph, e.Name)
		drawText(screen, ctx.SidebarX, top+constants.SidebarHeaderRows+row,
			constants.SidebarWidth-1, line, style)
	}
}

func (r *BoardRenderer) drawStatusBar(screen tcell.Screen, ctx *engine.GameContext) {
	y := ctx.Height - 1
	fillRow(screen, 0, y, ctx.Width, r.theme.StatusBar)

	hints := " click:select  drag:combine  /:filter  t:theme  q:quit"
	if ctx.Sidebar.Filtering {
		hints = " type to filter  enter:apply  esc:cancel"
	}
	drawText(screen, 0, y, ctx.Width-12, hints, r.theme.StatusBar)

	if ctx.Prefs.SafetyOverride {
		label := "unsafe"
		drawText(screen, ctx.Width-len(label)-1, y, len(label), label, r.theme.StatusBar.Bold(true))
	}
}

func (r *BoardRenderer) drawToast(screen tcell.Screen, ctx *engine.GameContext) {
	style := r.theme.ToastInfo
	switch ctx.Toast.Severity {
	case events.ToastSuccess:
		style = r.theme.ToastSuccess
	case events.ToastCelebrate:
		style = r.theme.ToastCelebrate
	case events.ToastWarning:
		style = r.theme.ToastWarning
	case events.ToastError:
		style = r.theme.ToastError
	}

	msg := truncate(ctx.Toast.Message, ctx.Width-6)
	w := runewidth.StringWidth(msg) + 4
	x := (ctx.Width - w) / 2
	if x < 0 {
		x = 0
	}
	y := ctx.Height - constants.StatusBarHeight - 2
	fillRow(screen, x, y, w, style)
	drawText(screen, x+2, y, w-4, msg, style)
}

// --- drawing primitives ---

func drawText(screen tcell.Screen, x, y, max int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			cw = 1
		}
		if col+cw > x+max {
			break
		}
		screen.SetContent(col, y, ch, nil, style)
		col += cw
	}
}

func drawCentered(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	tw := runewidth.StringWidth(text)
	off := (width - tw) / 2
	if off < 0 {
		off = 0
	}
	drawText(screen, x+off, y, width-off, text, style)
}

func fillRow(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

func drawBox(screen tcell.Screen, x, y, w, h int, style tcell.Style, bg tcell.Color) {
	fill := tcell.StyleDefault.Background(bg)
	for row := 1; row < h-1; row++ {
		for col := 1; col < w-1; col++ {
			screen.SetContent(x+col, y+row, ' ', nil, fill)
		}
	}
	for col := 1; col < w-1; col++ {
		screen.SetContent(x+col, y, tcell.RuneHLine, nil, style)
		screen.SetContent(x+col, y+h-1, tcell.RuneHLine, nil, style)
	}
	for row := 1; row < h-1; row++ {
		screen.SetContent(x, y+row, tcell.RuneVLine, nil, style)
		screen.SetContent(x+w-1, y+row, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)
}

func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "…")
}
