package utils

import (
	"fmt"
	"math"
	"time"
)

// MessageType selects the color of a message printed by the CLI.
type MessageType int

const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// ANSI escape sequences of the message colors.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

var palette = map[MessageType]string{
	DefaultMessage: DefaultColor,
	SuccessMessage: SuccessColor,
	ErrorMessage:   ErrorColor,
	StatusMessage:  StatusColor,
}

// NoColor disables the text decoration, e.g. when the output is not a terminal.
var NoColor = false

// DecorateText wraps s in the color of msgType and resets the color after it.
// Unknown message types are returned undecorated.
func DecorateText(s string, msgType MessageType) string {
	color, ok := palette[msgType]
	if NoColor || !ok {
		return s
	}
	return color + s + DefaultColor
}

// FormatTime formats time.Duration output to a human readable value.
func FormatTime(d time.Duration) string {
	switch {
	case d.Seconds() < 60.0:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d.Minutes() < 60.0:
		return fmt.Sprintf("%dm %.2fs", int64(d.Minutes()), math.Mod(d.Seconds(), 60))
	default:
		return fmt.Sprintf("%dh %dm %.2fs",
			int64(d.Hours()), int64(math.Mod(d.Minutes(), 60)), math.Mod(d.Seconds(), 60))
	}
}
