package app

import (
	"fmt"
	"time"
)

// Now 可替换的时钟，时间格式化测试固定它。
var Now = time.Now

// FormatAgo 把时间格式化成 "N days ago" 一类的相对描述。
// 零值时间表示从未见过该镜像，显示 never。
func FormatAgo(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
