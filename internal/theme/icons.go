package theme

// Chrome glyphs.
const (
	IconMenu      = "☰"
	IconBack      = "←"
	IconExpand    = "»"
	IconCollapse  = "«"
	IconSearch    = "⌕"
	IconIndicator = "▌"
	IconMore      = "…"
)
