package suggest

import "strings"

// EventKind enumerates the interactions the dropdown reacts to.
type EventKind int

const (
	EventNewQuery EventKind = iota
	EventArrowDown
	EventArrowUp
	EventEnter
	EventEscape
	EventMouseEnter
	EventDismiss
)

// Event is one interaction applied to a Selection. Query is read for
// EventNewQuery, Index for EventMouseEnter.
type Event struct {
	Kind  EventKind
	Query string
	Index int
}

// Selection is the dropdown state: the rendered suggestions plus the
// cursor shared between keyboard navigation and hover. Cursor is -1
// when nothing is selected; it never leaves [-1, len(Items)-1].
type Selection struct {
	Items  []Suggestion
	Cursor int
	Open   bool
}

// Outcome tells the caller what side effect an event produced.
type Outcome struct {
	// Committed is set when a suggestion was chosen; Commit carries its
	// raw text for the bound input field. The caller must re-dispatch
	// the field's input event so validation observes the new value.
	Committed bool
	Commit    string
	// Blur asks the caller to drop focus from the input (Escape).
	Blur bool
}

// NewSelection returns the initial hidden state.
func NewSelection() Selection {
	return Selection{Cursor: -1}
}

// Apply advances the state machine by one event. names is the shared
// municipality list consulted on EventNewQuery.
func (s Selection) Apply(names []string, ev Event) (Selection, Outcome) {
	switch ev.Kind {
	case EventNewQuery:
		s.Items = Filter(names, ev.Query)
		s.Cursor = -1
		// An empty query hides the dropdown; a non-empty query keeps it
		// open even with zero matches so the caller can render the
		// "no results" placeholder.
		s.Open = strings.TrimSpace(ev.Query) != ""
	case EventArrowDown:
		if s.Cursor < len(s.Items)-1 {
			s.Cursor++
		}
	case EventArrowUp:
		if s.Cursor > -1 {
			s.Cursor--
		}
	case EventEnter:
		if s.Cursor >= 0 && s.Cursor < len(s.Items) {
			value := s.Items[s.Cursor].Value
			return NewSelection(), Outcome{Committed: true, Commit: value}
		}
		// Enter with no selection is consumed without committing, so an
		// open dropdown never triggers an implicit form submission.
	case EventEscape:
		return NewSelection(), Outcome{Blur: true}
	case EventMouseEnter:
		if ev.Index >= 0 && ev.Index < len(s.Items) {
			s.Cursor = ev.Index
		}
	case EventDismiss:
		return NewSelection(), Outcome{}
	}
	return s, Outcome{}
}

// ClampCursor restores the cursor invariant for values arriving from
// the wire (the fragment round-trips the cursor as a query parameter).
func (s Selection) ClampCursor() Selection {
	if s.Cursor < -1 {
		s.Cursor = -1
	}
	if s.Cursor > len(s.Items)-1 {
		s.Cursor = len(s.Items) - 1
	}
	return s
}

// ParseKey maps a DOM KeyboardEvent key name to an event kind. The
// second return is false for keys the dropdown does not handle.
func ParseKey(key string) (EventKind, bool) {
	switch key {
	case "ArrowDown":
		return EventArrowDown, true
	case "ArrowUp":
		return EventArrowUp, true
	case "Enter":
		return EventEnter, true
	case "Escape":
		return EventEscape, true
	}
	return 0, false
}
