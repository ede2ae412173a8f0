package helpers

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	Reset = "\033[0m"
	Red   = "\033[31m"
)

var colorEnabled = detectColorSupport(os.Stderr)

func detectColorSupport(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(f)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func SupportsColor() bool {
	return colorEnabled
}

func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

func Colorize(text, color string) string {
	if !colorEnabled {
		return text
	}
	return color + text + Reset
}

func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
