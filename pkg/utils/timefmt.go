package utils

import (
	"fmt"
	"time"
)

const DateLayout = "Jan 2, 2006, 03:04 PM"

// StartOfDay t 所在时区的零点
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(DateLayout)
}

// TimeAgo <60s / <1h / <1d / <7d 相对时间，超过一周给绝对日期
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	secs := int64(now.Sub(t) / time.Second)
	switch {
	case secs < 60:
		return "just now"
	case secs < 3600:
		return fmt.Sprintf("%d minutes ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%d hours ago", secs/3600)
	case secs < 604800:
		return fmt.Sprintf("%d days ago", secs/86400)
	}
	return FormatDate(t)
}
