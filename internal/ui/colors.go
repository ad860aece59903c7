// Package ui holds the ANSI styling used by the CLI's terminal output.
package ui

// Style escape codes. Commands compose these directly when they need
// fine-grained control; the helpers below cover the common cases.
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
)

// Bold emphasizes s.
func Bold(s string) string {
	return ColorBold + s + ColorReset
}

// Heading styles a section heading in command output.
func Heading(s string) string {
	return ColorBold + ColorWhite + s + ColorReset
}

// Success styles a completed-action message.
func Success(s string) string {
	return ColorGreen + s + ColorReset
}

// Info styles a low-priority status message.
func Info(s string) string {
	return ColorDim + ColorYellow + s + ColorReset
}
