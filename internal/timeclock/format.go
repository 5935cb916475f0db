package timeclock

import "fmt"

// FormatDuration renders minutes as "7h 30m", dropping a zero minute part.
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if mins > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dh", hours)
}

// FormatMinutes renders short spans as bare minutes ("45m") and falls back
// to FormatDuration from an hour up.
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return FormatDuration(minutes)
}
