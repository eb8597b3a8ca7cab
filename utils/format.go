package utils

import (
	"fmt"
	"strings"
	"time"
)

// MessageType selects the color of a CLI message.
type MessageType int

// The message types printed by the CLI. Detected and Lost report the
// tracking state of the current frame.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
	DetectedMessage
	LostMessage
)

// ANSI escape sequences of the message colors.
const (
	DefaultColor  = "\x1b[0m"
	StatusColor   = "\x1b[36m"
	SuccessColor  = "\x1b[32m"
	ErrorColor    = "\x1b[31m"
	LostColor     = "\x1b[33m"
	DetectedColor = "\x1b[92m"
)

var messageColors = map[MessageType]string{
	DefaultMessage:  DefaultColor,
	StatusMessage:   StatusColor,
	SuccessMessage:  SuccessColor,
	ErrorMessage:    ErrorColor,
	DetectedMessage: DetectedColor,
	LostMessage:     LostColor,
}

// DecorateText wraps the message in the color of its type.
// Unknown types are returned unchanged.
func DecorateText(s string, msgType MessageType) string {
	c, ok := messageColors[msgType]
	if !ok {
		return s
	}
	return c + s + DefaultColor
}

// FormatTime formats a duration as days, hours, minutes and seconds,
// omitting the leading units that are zero.
func FormatTime(d time.Duration) string {
	days := int64(d / (24 * time.Hour))
	hours := int64(d/time.Hour) % 24
	mins := int64(d/time.Minute) % 60
	secs := (d % time.Minute).Seconds()

	var parts []string
	switch {
	case days > 0:
		parts = append(parts, fmt.Sprintf("%dd", days))
		fallthrough
	case hours > 0:
		parts = append(parts, fmt.Sprintf("%dh", hours))
		fallthrough
	case mins > 0:
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	parts = append(parts, fmt.Sprintf("%.2fs", secs))
	return strings.Join(parts, " ")
}

// FormatRate returns the processing throughput in frames per second.
func FormatRate(frames int, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f fps", float64(frames)/d.Seconds())
}
