package tui

// UI layout constants
const (
	// PagerMaxVisible is how many page numbers the pager shows before
	// collapsing with ellipses.
	PagerMaxVisible = 5

	// MinimalBorderMargin keeps content off the terminal edge
	MinimalBorderMargin = 2

	// HelpChromeLines is the space the help title and footer consume
	HelpChromeLines = 5

	// StatusTruncateLength bounds footer messages
	StatusTruncateLength = 100

	// Column widths for the list tables
	ColNameWidth   = 24
	ColEmailWidth  = 30
	ColTitleWidth  = 40
	ColStatusWidth = 10
)
