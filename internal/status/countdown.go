package status

import (
	"fmt"
	"time"
)

// CompactCountdown renders the largest non-zero unit, e.g. "2h", "5m" or "30s".
func CompactCountdown(d time.Duration) string {
	hours, minutes, seconds := split(d)
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// ExpandedCountdown renders hours and minutes together, e.g. "2h 15m".
func ExpandedCountdown(d time.Duration) string {
	hours, minutes, seconds := split(d)
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func split(d time.Duration) (hours, minutes, seconds int64) {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return total / 3600, (total % 3600) / 60, total % 60
}
