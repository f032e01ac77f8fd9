package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventPointerDown signals a primary-button press on the surface
	// Trigger: input goroutine | Consumer: SurfaceSystem | Payload: *PointerPayload
	EventPointerDown EventType = iota

	// EventPointerMove signals pointer motion while the button is held
	// Trigger: input goroutine | Consumer: SurfaceSystem | Payload: *PointerPayload
	EventPointerMove

	// EventPointerUp signals a button release; Clicked marks a press+release
	// with no intervening motion
	// Trigger: input goroutine | Consumer: SurfaceSystem | Payload: *PointerPayload
	EventPointerUp

	// EventScroll signals wheel movement (sidebar scrolling)
	// Trigger: input goroutine | Consumer: shell | Payload: *ScrollPayload
	EventScroll

	// EventKeyPressed signals a key press routed to the shell
	// Trigger: input goroutine | Consumer: shell | Payload: *KeyPayload
	EventKeyPressed

	// EventResize signals a terminal size change
	// Trigger: input goroutine | Consumer: shell | Payload: *ResizePayload
	EventResize

	// EventPaletteDrop requests spawning a catalog item on the board
	// Trigger: SurfaceSystem (sidebar click), shell | Consumer: SurfaceSystem
	// Payload: *PaletteDropPayload
	EventPaletteDrop

	// EventItemPick signals a discrete click on a live board item
	// Trigger: SurfaceSystem | Consumer: SelectionSystem | Payload: *ItemPickPayload
	EventItemPick

	// EventClearSelection signals a click on empty board area
	// Trigger: SurfaceSystem | Consumer: SelectionSystem | Payload: nil
	EventClearSelection

	// EventCombineRequest pairs two placed items for the generator service
	// Trigger: SurfaceSystem (drop on target), SelectionSystem (second pick)
	// Consumer: CombineSystem | Payload: *CombineRequestPayload
	EventCombineRequest

	// EventCombineResolved carries the asynchronous outcome of a
	// combination request back onto the game loop
	// Trigger: CombineSystem goroutine | Consumer: CombineSystem
	// Payload: *CombineResolvedPayload
	EventCombineResolved

	// EventToastRequest displays a short-lived notification
	// Trigger: CombineSystem | Consumer: ToastSystem | Payload: *ToastPayload
	EventToastRequest

	// EventPinToggle flips the pinned state of a catalog id
	// Trigger: SurfaceSystem (sidebar right-click) | Consumer: shell
	// Payload: *PinTogglePayload
	EventPinToggle
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}
