package engine

// SelectionState is the tagged state of the two-phase pick protocol
type SelectionState uint8

const (
	// SelectionIdle means no item is selected
	SelectionIdle SelectionState = iota
	// SelectionPicked means one item is selected, awaiting a second pick
	SelectionPicked
)

// Selection turns two separate pick gestures into one combination request.
// Transitions:
//
//	Idle        --pick(A)-->        Picked(A)
//	Picked(A)   --pick(A)-->        Picked(A)   (refresh, no request)
//	Picked(A)   --pick(B), B!=A-->  Idle        (request A+B raised by caller)
//
// The pair is returned before the state resets so the caller raises the
// request synchronously, independent of how it later resolves.
type Selection struct {
	state SelectionState
	uid   string
}

// NewSelection creates an idle selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Pick processes a pick gesture on the given uid. When the pick completes a
// pair, it returns the previously selected uid as source and combine=true,
// with the state already back to idle.
func (s *Selection) Pick(uid string) (source string, combine bool) {
	switch {
	case s.state == SelectionIdle:
		s.state = SelectionPicked
		s.uid = uid
		return "", false
	case s.uid == uid:
		// Re-picking the selected item is a selection refresh
		return "", false
	default:
		source = s.uid
		s.state = SelectionIdle
		s.uid = ""
		return source, true
	}
}

// Clear resets the selection to idle.
func (s *Selection) Clear() {
	s.state = SelectionIdle
	s.uid = ""
}

// ClearIfAny resets the selection when it references one of the given uids.
// Returns true if the selection was cleared.
func (s *Selection) ClearIfAny(uids ...string) bool {
	if s.state == SelectionIdle {
		return false
	}
	for _, uid := range uids {
		if s.uid == uid {
			s.Clear()
			return true
		}
	}
	return false
}

// Selected returns the selected uid, if any.
func (s *Selection) Selected() (string, bool) {
	if s.state == SelectionIdle {
		return "", false
	}
	return s.uid, true
}
