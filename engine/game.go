package engine

import (
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/meldworks/meldboard/constants"
	"github.com/meldworks/meldboard/events"
	"github.com/meldworks/meldboard/input"
)

// System is a game loop participant. Systems run every tick in priority
// order; lower priority values run first.
type System interface {
	Priority() int
	Update(ctx *GameContext, dt time.Duration)
}

// Renderer draws the full frame. Kept as an interface so the engine does
// not depend on the render package.
type Renderer interface {
	Draw(screen tcell.Screen, ctx *GameContext)
}

// Game owns the event loop: one goroutine polls terminal input and feeds
// the queue, the loop goroutine drains the queue, ticks the systems and
// renders. All state mutation happens on the loop goroutine.
type Game struct {
	ctx      *GameContext
	screen   tcell.Screen
	router   *events.Router[*GameContext]
	systems  []System
	renderer Renderer
	pointer  input.Pointer

	// OnSafetyToggle is invoked off-loop when the safety override flips,
	// so the shell can sync the remote session
	OnSafetyToggle func(enabled bool)

	quit     chan struct{}
	quitOnce sync.Once
}

// NewGame creates the loop around an initialized screen and context.
func NewGame(screen tcell.Screen, ctx *GameContext, renderer Renderer) *Game {
	g := &Game{
		ctx:      ctx,
		screen:   screen,
		router:   events.NewRouter[*GameContext](ctx.Queue),
		renderer: renderer,
		quit:     make(chan struct{}),
	}
	g.router.Register(g)
	return g
}

// AddSystem registers a system, keeping the slice sorted by priority.
// Systems that implement events.Handler also join the router.
func (g *Game) AddSystem(s System) {
	g.systems = append(g.systems, s)
	for i := len(g.systems) - 1; i > 0; i-- {
		if g.systems[i-1].Priority() <= g.systems[i].Priority() {
			break
		}
		g.systems[i-1], g.systems[i] = g.systems[i], g.systems[i-1]
	}
	if h, ok := s.(events.Handler[*GameContext]); ok {
		g.router.Register(h)
	}
}

// Stop ends the loop. Safe to call from any goroutine.
func (g *Game) Stop() {
	g.quitOnce.Do(func() { close(g.quit) })
}

// Run blocks until Stop is called or the terminal closes.
func (g *Game) Run() error {
	go g.pollInput()

	ticker := time.NewTicker(constants.TickInterval)
	defer ticker.Stop()

	last := g.ctx.Time.Now()
	for {
		select {
		case <-g.quit:
			return nil
		case <-ticker.C:
			now := g.ctx.Time.Now()
			dt := now.Sub(last)
			last = now

			g.router.DispatchAll(g.ctx)
			for _, s := range g.systems {
				s.Update(g.ctx, dt)
			}
			g.renderer.Draw(g.screen, g.ctx)
			g.screen.Show()
		}
	}
}

// pollInput runs on its own goroutine and is the only other event
// producer besides the combination dispatchers.
func (g *Game) pollInput() {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			g.Stop()
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventMouse:
			g.handleMouse(ev)
		case *tcell.EventKey:
			g.handleKey(ev)
		case *tcell.EventResize:
			w, h := ev.Size()
			g.push(events.EventResize, &events.ResizePayload{Width: w, Height: h})
		}
	}
}

func (g *Game) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	if buttons&tcell.WheelUp != 0 {
		g.push(events.EventScroll, &events.ScrollPayload{X: x, Y: y, Delta: -1})
	}
	if buttons&tcell.WheelDown != 0 {
		g.push(events.EventScroll, &events.ScrollPayload{X: x, Y: y, Delta: 1})
	}

	primary := buttons&tcell.Button1 != 0
	secondary := buttons&tcell.Button2 != 0
	for _, gesture := range g.pointer.Feed(x, y, primary, secondary) {
		payload := &events.PointerPayload{X: gesture.X, Y: gesture.Y, Clicked: gesture.Clicked}
		if gesture.Secondary {
			payload.Button = events.ButtonSecondary
		}
		switch gesture.Kind {
		case input.GesturePress:
			g.push(events.EventPointerDown, payload)
		case input.GestureMove:
			g.push(events.EventPointerMove, payload)
		case input.GestureRelease:
			g.push(events.EventPointerUp, payload)
		}
	}
}

func (g *Game) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		g.Stop()
		return
	case tcell.KeyEscape:
		g.push(events.EventKeyPressed, &events.KeyPayload{Name: "esc"})
		return
	case tcell.KeyEnter:
		g.push(events.EventKeyPressed, &events.KeyPayload{Name: "enter"})
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		g.push(events.EventKeyPressed, &events.KeyPayload{Name: "backspace"})
		return
	case tcell.KeyUp:
		g.push(events.EventKeyPressed, &events.KeyPayload{Name: "up"})
		return
	case tcell.KeyDown:
		g.push(events.EventKeyPressed, &events.KeyPayload{Name: "down"})
		return
	case tcell.KeyRune:
		g.push(events.EventKeyPressed, &events.KeyPayload{Rune: ev.Rune()})
	}
}

func (g *Game) push(t events.EventType, payload any) {
	g.ctx.Queue.Push(events.GameEvent{Type: t, Payload: payload, Timestamp: g.ctx.Time.Now()})
}

// EventTypes returns the shell-level events Game handles on the loop
func (g *Game) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventResize,
		events.EventScroll,
		events.EventKeyPressed,
		events.EventPinToggle,
	}
}

// HandleEvent processes shell events: resize, sidebar scrolling, key
// commands and pin toggles
func (g *Game) HandleEvent(ctx *GameContext, event events.GameEvent) {
	switch event.Type {
	case events.EventResize:
		if p, ok := event.Payload.(*events.ResizePayload); ok {
			ctx.Resize(p.Width, p.Height)
			g.screen.Sync()
		}
	case events.EventScroll:
		if p, ok := event.Payload.(*events.ScrollPayload); ok {
			if ctx.InSidebar(p.X, p.Y) {
				g.scrollSidebar(ctx, p.Delta)
			}
		}
	case events.EventPinToggle:
		if p, ok := event.Payload.(*events.PinTogglePayload); ok {
			ctx.TogglePin(p.ItemID)
		}
	case events.EventKeyPressed:
		if p, ok := event.Payload.(*events.KeyPayload); ok {
			g.handleCommand(ctx, p)
		}
	}
}

func (g *Game) scrollSidebar(ctx *GameContext, delta int) {
	max := len(ctx.SidebarEntries()) - 1
	if max < 0 {
		max = 0
	}
	ctx.Sidebar.Scroll += delta
	if ctx.Sidebar.Scroll < 0 {
		ctx.Sidebar.Scroll = 0
	}
	if ctx.Sidebar.Scroll > max {
		ctx.Sidebar.Scroll = max
	}
}

func (g *Game) handleCommand(ctx *GameContext, p *events.KeyPayload) {
	if ctx.Sidebar.Filtering {
		switch p.Name {
		case "esc":
			ctx.Sidebar.Filtering = false
			ctx.Sidebar.Filter = ""
			ctx.Sidebar.Scroll = 0
		case "enter":
			ctx.Sidebar.Filtering = false
		case "backspace":
			if n := len(ctx.Sidebar.Filter); n > 0 {
				ctx.Sidebar.Filter = trimLastRune(ctx.Sidebar.Filter)
				ctx.Sidebar.Scroll = 0
			}
		default:
			if p.Rune != 0 {
				ctx.Sidebar.Filter += string(p.Rune)
				ctx.Sidebar.Scroll = 0
			}
		}
		return
	}

	switch p.Name {
	case "esc":
		ctx.Selection.Clear()
		return
	case "up":
		g.scrollSidebar(ctx, -1)
		return
	case "down":
		g.scrollSidebar(ctx, 1)
		return
	}

	switch p.Rune {
	case 'q':
		g.Stop()
	case 't':
		ctx.ToggleTheme()
	case '/':
		ctx.Sidebar.Filtering = true
	case 's':
		ctx.Prefs.SafetyOverride = !ctx.Prefs.SafetyOverride
		if ctx.Store != nil {
			if err := ctx.Store.Save(ctx.Prefs); err != nil {
				log.Printf("prefs save failed: %v", err)
			}
		}
		if g.OnSafetyToggle != nil {
			enabled := ctx.Prefs.SafetyOverride
			go g.OnSafetyToggle(enabled)
		}
	}
}

func trimLastRune(s string) string {
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
