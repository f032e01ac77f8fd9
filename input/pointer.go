// Package input turns the raw mouse event stream into discrete gestures:
// press, drag motion and release, with a release that saw no intervening
// motion reported as a click.
package input

// GestureKind classifies a pointer gesture
type GestureKind uint8

const (
	GesturePress GestureKind = iota
	GestureMove
	GestureRelease
)

// Gesture is a single pointer gesture in screen coordinates
type Gesture struct {
	Kind      GestureKind
	X, Y      int
	Secondary bool // Started with the secondary button
	Clicked   bool // Release with no motion since the press
}

// Pointer tracks button state across mouse events. Feed is called from the
// input goroutine with each terminal mouse report.
type Pointer struct {
	held      bool
	secondary bool
	moved     bool
	lastX     int
	lastY     int
}

// Feed consumes one mouse report and returns the gestures it completes.
func (p *Pointer) Feed(x, y int, primary, secondary bool) []Gesture {
	pressed := primary || secondary

	switch {
	case !p.held && pressed:
		p.held = true
		p.secondary = secondary && !primary
		p.moved = false
		p.lastX, p.lastY = x, y
		return []Gesture{{Kind: GesturePress, X: x, Y: y, Secondary: p.secondary}}

	case p.held && pressed:
		if x == p.lastX && y == p.lastY {
			return nil
		}
		p.moved = true
		p.lastX, p.lastY = x, y
		if p.secondary {
			return nil
		}
		return []Gesture{{Kind: GestureMove, X: x, Y: y}}

	case p.held && !pressed:
		p.held = false
		return []Gesture{{
			Kind:      GestureRelease,
			X:         x,
			Y:         y,
			Secondary: p.secondary,
			Clicked:   !p.moved,
		}}
	}
	return nil
}
