// FILE: logtools/src/internal/timefmt/format.go
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format renders t using the compiled tokens.
func (f *Format) Format(t time.Time) string {
	var b strings.Builder
	b.Grow(len(f.source) + 16)

	for _, it := range f.items {
		switch it.kind {
		case kindLiteral:
			b.WriteString(it.lit)
		case kindYear:
			fmt.Fprintf(&b, "%04d", t.Year())
		case kindYear2:
			pad2(&b, t.Year()%100)
		case kindMonth:
			pad2(&b, int(t.Month()))
		case kindDay:
			pad2(&b, t.Day())
		case kindDaySpace:
			fmt.Fprintf(&b, "%2d", t.Day())
		case kindHour:
			pad2(&b, t.Hour())
		case kindHour12:
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			pad2(&b, h)
		case kindAMPM:
			if t.Hour() < 12 {
				b.WriteString("AM")
			} else {
				b.WriteString("PM")
			}
		case kindMinute:
			pad2(&b, t.Minute())
		case kindSecond:
			pad2(&b, t.Second())
		case kindFrac:
			b.WriteString(nanos(t)[:it.width])
		case kindDotFrac:
			width := it.width
			if width == 0 {
				width = autoWidth(t.Nanosecond())
				if width == 0 {
					continue
				}
			}
			b.WriteByte('.')
			b.WriteString(nanos(t)[:width])
		case kindYearDay:
			fmt.Fprintf(&b, "%03d", t.YearDay())
		case kindMonthShort:
			b.WriteString(t.Month().String()[:3])
		case kindMonthLong:
			b.WriteString(t.Month().String())
		case kindWeekdayShort:
			b.WriteString(t.Weekday().String()[:3])
		case kindWeekdayLong:
			b.WriteString(t.Weekday().String())
		case kindOffset:
			b.WriteString(t.Format("-0700"))
		case kindOffsetColon:
			b.WriteString(t.Format("-07:00"))
		case kindZoneName:
			b.WriteString(t.Format("MST"))
		case kindUnix:
			b.WriteString(strconv.FormatInt(t.Unix(), 10))
		}
	}
	return b.String()
}

func pad2(b *strings.Builder, n int) {
	if n < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(n))
}

func nanos(t time.Time) string {
	return fmt.Sprintf("%09d", t.Nanosecond())
}

// autoWidth picks the shortest of 3, 6 or 9 digits that keeps ns exact.
func autoWidth(ns int) int {
	switch {
	case ns == 0:
		return 0
	case ns%1_000_000 == 0:
		return 3
	case ns%1_000 == 0:
		return 6
	default:
		return 9
	}
}
