package stopwatch

import (
	"fmt"
	"time"
)

// Format renders d as HH:MM:SS.CC. Hours keep growing past 24 and every unit
// is truncated, never rounded. Negative durations render as zero.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := int64(d / (10 * time.Millisecond))

	hours := cs / 360_000
	minutes := (cs / 6_000) % 60
	seconds := (cs / 100) % 60
	hundredths := cs % 100

	return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, seconds, hundredths)
}
