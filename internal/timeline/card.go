package timeline

// CardState is the disclosure state of a desktop card.
type CardState int

const (
	Collapsed CardState = iota
	Expanded
)

func (s CardState) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// CardEvent is a pointer or keyboard interaction on a card.
type CardEvent int

const (
	PointerEnter CardEvent = iota
	PointerLeave
	Focus
	Blur
)

// ParseCardEvent maps DOM event names onto CardEvent.
func ParseCardEvent(name string) (CardEvent, bool) {
	switch name {
	case "mouseenter", "pointerenter":
		return PointerEnter, true
	case "mouseleave", "pointerleave":
		return PointerLeave, true
	case "focus", "focusin":
		return Focus, true
	case "blur", "focusout":
		return Blur, true
	}
	return 0, false
}

// Next is the transition function: enter/focus expand, leave/blur collapse.
func (s CardState) Next(ev CardEvent) CardState {
	switch ev {
	case PointerEnter, Focus:
		return Expanded
	case PointerLeave, Blur:
		return Collapsed
	}
	return s
}

// Card tracks one card's state and whether it has ever been expanded.
type Card struct {
	ID       string
	State    CardState
	revealed bool
}

// Handle applies ev. firstReveal is true only on the first transition into
// Expanded during the card's lifetime.
func (c *Card) Handle(ev CardEvent) (changed, firstReveal bool) {
	next := c.State.Next(ev)
	changed = next != c.State
	c.State = next
	if next == Expanded && !c.revealed {
		c.revealed = true
		firstReveal = true
	}
	return changed, firstReveal
}

func (c *Card) Revealed() bool { return c.revealed }
