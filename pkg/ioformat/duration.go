package ioformat

import (
	"fmt"
	"time"
)

// FormatDuration renders d as "<hours>h <minutes>m <seconds>s", zero-padding
// minutes and seconds to two digits.
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, seconds)
}
