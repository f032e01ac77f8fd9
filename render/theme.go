package render

import "github.com/gdamore/tcell/v2"

// Theme is the palette for one color scheme. Styles are pre-combined so
// the draw loop never builds styles per cell.
type Theme struct {
	Background tcell.Color

	TopBar    tcell.Style
	StatusBar tcell.Style

	BoxBorder      tcell.Style
	BoxFill        tcell.Style
	BoxName        tcell.Style
	BoxSelected    tcell.Style
	BoxHighlighted tcell.Style
	BoxFirstEver   tcell.Style
	BoxVanishing   tcell.Style

	SidebarHeader tcell.Style
	SidebarEntry  tcell.Style
	SidebarPinned tcell.Style
	SidebarFilter tcell.Style

	ToastInfo      tcell.Style
	ToastSuccess   tcell.Style
	ToastCelebrate tcell.Style
	ToastWarning   tcell.Style
	ToastError     tcell.Style
}

var darkTheme = func() Theme {
	bg := tcell.NewRGBColor(22, 24, 28)
	panel := tcell.NewRGBColor(32, 35, 42)
	base := tcell.StyleDefault.Background(bg)
	onPanel := tcell.StyleDefault.Background(panel)

	return Theme{
		Background: bg,

		TopBar:    onPanel.Foreground(tcell.NewRGBColor(220, 220, 225)).Bold(true),
		StatusBar: onPanel.Foreground(tcell.NewRGBColor(150, 155, 165)),

		BoxBorder:      base.Foreground(tcell.NewRGBColor(95, 100, 110)),
		BoxFill:        base.Foreground(tcell.NewRGBColor(210, 210, 215)),
		BoxName:        base.Foreground(tcell.NewRGBColor(210, 210, 215)),
		BoxSelected:    base.Foreground(tcell.NewRGBColor(120, 190, 255)).Bold(true),
		BoxHighlighted: base.Foreground(tcell.NewRGBColor(255, 215, 120)).Bold(true),
		BoxFirstEver:   base.Foreground(tcell.NewRGBColor(255, 160, 255)).Bold(true),
		BoxVanishing:   base.Foreground(tcell.NewRGBColor(70, 72, 78)).Dim(true),

		SidebarHeader: onPanel.Foreground(tcell.NewRGBColor(220, 220, 225)).Bold(true),
		SidebarEntry:  onPanel.Foreground(tcell.NewRGBColor(185, 190, 200)),
		SidebarPinned: onPanel.Foreground(tcell.NewRGBColor(255, 215, 120)),
		SidebarFilter: onPanel.Foreground(tcell.NewRGBColor(120, 190, 255)),

		ToastInfo:      styleOn(tcell.NewRGBColor(60, 65, 75), tcell.NewRGBColor(220, 220, 225)),
		ToastSuccess:   styleOn(tcell.NewRGBColor(30, 80, 45), tcell.NewRGBColor(190, 240, 200)),
		ToastCelebrate: styleOn(tcell.NewRGBColor(95, 45, 110), tcell.NewRGBColor(250, 210, 255)),
		ToastWarning:   styleOn(tcell.NewRGBColor(110, 85, 20), tcell.NewRGBColor(255, 235, 170)),
		ToastError:     styleOn(tcell.NewRGBColor(110, 35, 35), tcell.NewRGBColor(255, 200, 200)),
	}
}()

var lightTheme = func() Theme {
	bg := tcell.NewRGBColor(245, 245, 242)
	panel := tcell.NewRGBColor(228, 228, 224)
	base := tcell.StyleDefault.Background(bg)
	onPanel := tcell.StyleDefault.Background(panel)

	return Theme{
		Background: bg,

		TopBar:    onPanel.Foreground(tcell.NewRGBColor(40, 40, 45)).Bold(true),
		StatusBar: onPanel.Foreground(tcell.NewRGBColor(110, 110, 115)),

		BoxBorder:      base.Foreground(tcell.NewRGBColor(165, 165, 160)),
		BoxFill:        base.Foreground(tcell.NewRGBColor(45, 45, 50)),
		BoxName:        base.Foreground(tcell.NewRGBColor(45, 45, 50)),
		BoxSelected:    base.Foreground(tcell.NewRGBColor(20, 110, 200)).Bold(true),
		BoxHighlighted: base.Foreground(tcell.NewRGBColor(175, 120, 0)).Bold(true),
		BoxFirstEver:   base.Foreground(tcell.NewRGBColor(160, 50, 170)).Bold(true),
		BoxVanishing:   base.Foreground(tcell.NewRGBColor(200, 200, 196)).Dim(true),

		SidebarHeader: onPanel.Foreground(tcell.NewRGBColor(40, 40, 45)).Bold(true),
		SidebarEntry:  onPanel.Foreground(tcell.NewRGBColor(70, 70, 75)),
		SidebarPinned: onPanel.Foreground(tcell.NewRGBColor(175, 120, 0)),
		SidebarFilter: onPanel.Foreground(tcell.NewRGBColor(20, 110, 200)),

		ToastInfo:      styleOn(tcell.NewRGBColor(215, 215, 210), tcell.NewRGBColor(40, 40, 45)),
		ToastSuccess:   styleOn(tcell.NewRGBColor(200, 235, 205), tcell.NewRGBColor(20, 85, 40)),
		ToastCelebrate: styleOn(tcell.NewRGBColor(240, 215, 245), tcell.NewRGBColor(110, 40, 125)),
		ToastWarning:   styleOn(tcell.NewRGBColor(250, 235, 190), tcell.NewRGBColor(120, 90, 10)),
		ToastError:     styleOn(tcell.NewRGBColor(250, 210, 210), tcell.NewRGBColor(140, 30, 30)),
	}
}()

func styleOn(bg, fg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Background(bg).Foreground(fg)
}

// ThemeByName resolves a persisted theme name. Unknown names fall back to
// the dark palette.
func ThemeByName(name string) Theme {
	if name == "light" {
		return lightTheme
	}
	return darkTheme
}
