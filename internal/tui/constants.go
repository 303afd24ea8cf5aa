package tui

import "time"

const (
	defaultWidth      = 80
	maxTextareaHeight = 4
	minTextareaHeight = 1
	minWrapWidth      = 40

	// imagePanePercent is the share of free rows given to the image pane.
	imagePanePercent = 55
	minImageRows     = 4

	// nudgeStep is the keyboard step of the compare divider, in percent.
	nudgeStep = 5.0

	spinnerFPS = 80 * time.Millisecond
)

const (
	emptyHint   = "Ask for advice or switch to Refine mode to edit the image directly."
	loadingText = "Generating Design..."
	visualBadge = "Visual Edit Request"
	afterLabel  = "Redesign"
	beforeLabel = "Original"
)
