// Package datefmt renders timestamps in the long Chinese calendar form used
// by the now command.
package datefmt

import (
	"fmt"
	"time"
)

var weekdays = [...]string{"星期天", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// Weekday returns the Chinese name of d. Sunday is 星期天.
func Weekday(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return "未知"
	}
	return weekdays[d]
}

// Format renders t in its own location as "YYYY年MM月DD日 星期X HH时mm分ss秒".
func Format(t time.Time) string {
	return fmt.Sprintf("%d年%02d月%02d日 %s %02d时%02d分%02d秒",
		t.Year(), int(t.Month()), t.Day(), Weekday(t.Weekday()),
		t.Hour(), t.Minute(), t.Second())
}
