package navview

// OverlayPhase tracks the minimal overlay through its lifecycle. Opening
// is not a separate phase: a mounted overlay is Open until its exit
// animation starts.
type OverlayPhase uint8

const (
	OverlayClosed  OverlayPhase = iota
	OverlayOpen                 // mounted and stable
	OverlayClosing              // mounted, animating out
)

func (p OverlayPhase) String() string {
	switch p {
	case OverlayOpen:
		return "open"
	case OverlayClosing:
		return "closing"
	default:
		return "closed"
	}
}

// State holds the transient flags of a navigation view. Transitions are pure
// and return the next state.
type State struct {
	Mode            DisplayMode // last resolved concrete mode
	Overlay         OverlayPhase
	CompactExpanded bool
}

// OverlayPresent reports whether an overlay is mounted, stable or closing.
func (s State) OverlayPresent() bool {
	return s.Overlay != OverlayClosed
}

// WithMode records a newly resolved concrete mode. Leaving Compact clears
// CompactExpanded.
func (s State) WithMode(m DisplayMode) State {
	if m == Auto {
		fatal(ErrUnresolvedMode, "state cannot hold auto")
	}
	s.Mode = m
	if m != Compact {
		s.CompactExpanded = false
	}
	return s
}

// OpenOverlay mounts the overlay. It reports false, leaving s unchanged,
// while another overlay is still mounted, including one that is closing.
func (s State) OpenOverlay() (State, bool) {
	if s.Overlay != OverlayClosed {
		return s, false
	}
	s.Overlay = OverlayOpen
	return s, true
}

// StartBack begins the exit animation of an open overlay.
func (s State) StartBack() State {
	if s.Overlay == OverlayOpen {
		s.Overlay = OverlayClosing
	}
	return s
}

// Back records that the overlay is unmounted.
func (s State) Back() State {
	s.Overlay = OverlayClosed
	return s
}

// ExpandCompact opens the compact flyout. Only meaningful in Compact.
func (s State) ExpandCompact() State {
	if s.Mode == Compact {
		s.CompactExpanded = true
	}
	return s
}

// CollapseCompact closes the compact flyout.
func (s State) CollapseCompact() State {
	s.CompactExpanded = false
	return s
}

// ToggleCompact flips the compact flyout.
func (s State) ToggleCompact() State {
	if s.CompactExpanded {
		return s.CollapseCompact()
	}
	return s.ExpandCompact()
}
