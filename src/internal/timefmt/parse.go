// FILE: logtools/src/internal/timefmt/parse.go
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

var (
	monthNames   = []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
	weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
)

// fields accumulates parsed values before the instant is built
type fields struct {
	year, month, day     int
	hour, minute, second int
	nsec                 int
	yday                 int
	hour12, pm           bool
	ampm                 bool
	offset               int
	hasOffset            bool
	unix                 int64
	hasUnix              bool
	hasMonthDay          bool
}

// Parse reads value according to the format. loc is attached when the format
// carries no offset token; nil means UTC. The whole value must be consumed.
// Missing date fields default to 1970-01-01.
func (f *Format) Parse(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	p := fields{year: 1970, month: 1, day: 1}
	pos := 0
	var err error

	for _, it := range f.items {
		switch it.kind {
		case kindLiteral:
			if !strings.HasPrefix(value[pos:], it.lit) {
				return time.Time{}, fmt.Errorf("expected %q at offset %d in %q", it.lit, pos, value)
			}
			pos += len(it.lit)
		case kindYear:
			p.year, pos, err = digits(value, pos, 1, 4)
		case kindYear2:
			var yy int
			yy, pos, err = digits(value, pos, 1, 2)
			if yy >= 69 {
				p.year = 1900 + yy
			} else {
				p.year = 2000 + yy
			}
		case kindMonth:
			p.month, pos, err = digits(value, pos, 1, 2)
			p.hasMonthDay = true
		case kindDay:
			p.day, pos, err = digits(value, pos, 1, 2)
			p.hasMonthDay = true
		case kindDaySpace:
			if pos < len(value) && value[pos] == ' ' {
				pos++
			}
			p.day, pos, err = digits(value, pos, 1, 2)
			p.hasMonthDay = true
		case kindHour:
			p.hour, pos, err = digits(value, pos, 1, 2)
		case kindHour12:
			p.hour, pos, err = digits(value, pos, 1, 2)
			p.hour12 = true
		case kindAMPM:
			switch {
			case hasPrefixFold(value[pos:], "AM"):
				p.pm = false
			case hasPrefixFold(value[pos:], "PM"):
				p.pm = true
			default:
				return time.Time{}, fmt.Errorf("expected AM/PM at offset %d in %q", pos, value)
			}
			p.ampm = true
			pos += 2
		case kindMinute:
			p.minute, pos, err = digits(value, pos, 1, 2)
		case kindSecond:
			p.second, pos, err = digits(value, pos, 1, 2)
		case kindFrac:
			p.nsec, pos, err = fraction(value, pos, it)
		case kindDotFrac:
			if pos < len(value) && value[pos] == '.' {
				pos++
				p.nsec, pos, err = fraction(value, pos, item{width: it.width, flex: it.width == 0})
			} else if it.width != 0 {
				return time.Time{}, fmt.Errorf("expected '.' at offset %d in %q", pos, value)
			}
		case kindYearDay:
			p.yday, pos, err = digits(value, pos, 1, 3)
		case kindMonthShort:
			p.month, pos, err = name(value, pos, monthNames, true)
			p.hasMonthDay = true
		case kindMonthLong:
			p.month, pos, err = name(value, pos, monthNames, false)
			p.hasMonthDay = true
		case kindWeekdayShort:
			_, pos, err = name(value, pos, weekdayNames, true)
		case kindWeekdayLong:
			_, pos, err = name(value, pos, weekdayNames, false)
		case kindOffset:
			p.offset, pos, err = offset(value, pos, false)
			p.hasOffset = true
		case kindOffsetColon:
			p.offset, pos, err = offset(value, pos, true)
			p.hasOffset = true
		case kindZoneName:
			start := pos
			for pos < len(value) && isLetter(value[pos]) {
				pos++
			}
			if pos == start {
				return time.Time{}, fmt.Errorf("expected zone name at offset %d in %q", start, value)
			}
		case kindUnix:
			p.unix, pos, err = unixSeconds(value, pos)
			p.hasUnix = true
		}
		if err != nil {
			return time.Time{}, err
		}
	}

	if pos != len(value) {
		return time.Time{}, fmt.Errorf("unparsed trailing text %q", value[pos:])
	}

	return p.build(loc)
}

func (p *fields) build(loc *time.Location) (time.Time, error) {
	if p.hasOffset {
		loc = time.FixedZone("", p.offset)
	}
	if p.hasUnix {
		return time.Unix(p.unix, int64(p.nsec)).In(loc), nil
	}

	if p.hour12 {
		if p.hour < 1 || p.hour > 12 {
			return time.Time{}, fmt.Errorf("12-hour clock value out of range: %d", p.hour)
		}
		p.hour %= 12
	}
	if p.ampm && p.pm && p.hour < 12 {
		p.hour += 12
	}

	if p.yday > 0 && !p.hasMonthDay {
		days := 365
		if isLeap(p.year) {
			days = 366
		}
		if p.yday > days {
			return time.Time{}, fmt.Errorf("day of year out of range: %d", p.yday)
		}
		t := time.Date(p.year, time.January, 1, 0, 0, 0, 0, loc).AddDate(0, 0, p.yday-1)
		p.month, p.day = int(t.Month()), t.Day()
	}

	if p.month < 1 || p.month > 12 {
		return time.Time{}, fmt.Errorf("month out of range: %d", p.month)
	}
	if p.day < 1 || p.day > daysIn(time.Month(p.month), p.year) {
		return time.Time{}, fmt.Errorf("day out of range: %d", p.day)
	}
	if p.hour > 23 {
		return time.Time{}, fmt.Errorf("hour out of range: %d", p.hour)
	}
	if p.minute > 59 {
		return time.Time{}, fmt.Errorf("minute out of range: %d", p.minute)
	}
	// 60 is a leap second and normalises into the next minute
	if p.second > 60 {
		return time.Time{}, fmt.Errorf("second out of range: %d", p.second)
	}

	return time.Date(p.year, time.Month(p.month), p.day, p.hour, p.minute, p.second, p.nsec, loc), nil
}

// digits reads between min and max decimal digits starting at pos.
func digits(value string, pos, min, max int) (int, int, error) {
	n, start := 0, pos
	for pos < len(value) && pos-start < max && isDigit(value[pos]) {
		n = n*10 + int(value[pos]-'0')
		pos++
	}
	if pos-start < min {
		return 0, pos, fmt.Errorf("expected digits at offset %d in %q", start, value)
	}
	return n, pos, nil
}

// fraction reads a fixed-width or 1..9 digit fraction and scales it to nanoseconds.
func fraction(value string, pos int, it item) (int, int, error) {
	min, max := it.width, it.width
	if it.flex {
		min, max = 1, 9
	}
	start := pos
	n, pos, err := digits(value, pos, min, max)
	if err != nil {
		return 0, pos, err
	}
	for i := pos - start; i < 9; i++ {
		n *= 10
	}
	return n, pos, nil
}

func name(value string, pos int, names []string, short bool) (int, int, error) {
	for i, full := range names {
		candidate := full
		if short {
			candidate = full[:3]
		}
		if hasPrefixFold(value[pos:], candidate) {
			return i + 1, pos + len(candidate), nil
		}
	}
	return 0, pos, fmt.Errorf("expected name at offset %d in %q", pos, value)
}

func offset(value string, pos int, colon bool) (int, int, error) {
	if pos < len(value) && value[pos] == 'Z' {
		return 0, pos + 1, nil
	}
	if pos >= len(value) || (value[pos] != '+' && value[pos] != '-') {
		return 0, pos, fmt.Errorf("expected UTC offset at offset %d in %q", pos, value)
	}
	sign := 1
	if value[pos] == '-' {
		sign = -1
	}
	pos++

	hh, pos, err := digits(value, pos, 2, 2)
	if err != nil {
		return 0, pos, err
	}
	if colon {
		if pos >= len(value) || value[pos] != ':' {
			return 0, pos, fmt.Errorf("expected ':' in UTC offset at offset %d in %q", pos, value)
		}
		pos++
	}
	mm, pos, err := digits(value, pos, 2, 2)
	if err != nil {
		return 0, pos, err
	}
	if hh > 23 || mm > 59 {
		return 0, pos, fmt.Errorf("UTC offset out of range in %q", value)
	}
	return sign * (hh*3600 + mm*60), pos, nil
}

func unixSeconds(value string, pos int) (int64, int, error) {
	neg := false
	if pos < len(value) && value[pos] == '-' {
		neg = true
		pos++
	}
	start := pos
	var n int64
	for pos < len(value) && pos-start < 19 && isDigit(value[pos]) {
		n = n*10 + int64(value[pos]-'0')
		pos++
	}
	if pos == start {
		return 0, pos, fmt.Errorf("expected unix seconds at offset %d in %q", start, value)
	}
	if neg {
		n = -n
	}
	return n, pos, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
