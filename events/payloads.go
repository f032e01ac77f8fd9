package events

// PointerButton identifies which button a pointer event refers to
type PointerButton uint8

const (
	ButtonPrimary PointerButton = iota
	ButtonSecondary
)

// PointerPayload carries surface-global pointer coordinates
type PointerPayload struct {
	X, Y    int
	Button  PointerButton
	Clicked bool // Release with no intervening motion
}

// ScrollPayload carries wheel movement, positive Delta scrolls down
type ScrollPayload struct {
	X, Y  int
	Delta int
}

// KeyPayload carries a key press for shell handling
type KeyPayload struct {
	Rune rune
	Name string // Non-rune keys: "esc", "up", "down", "backspace", "enter"
}

// ResizePayload carries the new terminal dimensions
type ResizePayload struct {
	Width, Height int
}

// PaletteDropPayload requests a spawn of catalog item ItemID at
// board-local coordinates
type PaletteDropPayload struct {
	ItemID int
	X, Y   int
}

// ItemPickPayload identifies the clicked board item by instance uid
type ItemPickPayload struct {
	UID string
}

// CombineRequestPayload pairs two placed items by instance uid
type CombineRequestPayload struct {
	SourceUID string
	TargetUID string
}

// CombineOutcome classifies a resolved combination
type CombineOutcome uint8

const (
	OutcomeSuccess CombineOutcome = iota
	OutcomeRateLimited
	OutcomeFailure
)

// ResultElement is the catalog entry carried by a successful combination
type ResultElement struct {
	ID          int
	Name        string
	Glyph       string
	Description string
	Tags        []string
}

// CombineResolvedPayload carries the service outcome plus the dispatch-time
// context needed to apply it: the two consumed uids and the spawn position
// computed from the target's anchor
type CombineResolvedPayload struct {
	Outcome   CombineOutcome
	SourceUID string
	TargetUID string
	SpawnX    int
	SpawnY    int

	Element       ResultElement
	FirstEver     bool
	NewForSession bool
}

// ToastSeverity defines message type for styling
type ToastSeverity uint8

const (
	ToastInfo ToastSeverity = iota
	ToastSuccess
	ToastCelebrate
	ToastWarning
	ToastError
)

// ToastPayload carries a human-readable notification
type ToastPayload struct {
	Message  string
	Severity ToastSeverity
}

// PinTogglePayload flips the pinned state of a catalog id
type PinTogglePayload struct {
	ItemID int
}
