// FILE: logtools/src/internal/timefmt/timefmt.go

// Package timefmt implements the strftime-style token language used to
// describe log timestamps, e.g. "%Y-%m-%d %H:%M:%S,%3f".
package timefmt

import (
	"fmt"
	"strings"

	"logtools/src/internal/core"
)

type kind int

const (
	kindLiteral kind = iota
	kindYear
	kindYear2
	kindMonth
	kindDay
	kindDaySpace
	kindHour
	kindHour12
	kindAMPM
	kindMinute
	kindSecond
	kindFrac    // %f, %3f, %6f, %9f
	kindDotFrac // %.f, %.3f, %.6f, %.9f
	kindYearDay
	kindMonthShort
	kindMonthLong
	kindWeekdayShort
	kindWeekdayLong
	kindOffset
	kindOffsetColon
	kindZoneName
	kindUnix
)

type item struct {
	kind  kind
	lit   string
	width int  // fraction digits, 0 = automatic
	flex  bool // accept 1..9 digits when parsing
}

// Format is a compiled timestamp format. It is immutable and safe for
// concurrent use.
type Format struct {
	source  string
	items   []item
	hasZone bool
}

// composites expand to other tokens
var composites = map[byte]string{
	'F': "%Y-%m-%d",
	'T': "%H:%M:%S",
	'D': "%m/%d/%y",
	'R': "%H:%M",
}

var simple = map[byte]kind{
	'Y': kindYear,
	'y': kindYear2,
	'm': kindMonth,
	'd': kindDay,
	'e': kindDaySpace,
	'H': kindHour,
	'I': kindHour12,
	'p': kindAMPM,
	'M': kindMinute,
	'S': kindSecond,
	'j': kindYearDay,
	'b': kindMonthShort,
	'h': kindMonthShort,
	'B': kindMonthLong,
	'a': kindWeekdayShort,
	'A': kindWeekdayLong,
	'z': kindOffset,
	'Z': kindZoneName,
	's': kindUnix,
}

// Compile parses a format string into a reusable Format.
func Compile(format string) (*Format, error) {
	if format == "" {
		return nil, fmt.Errorf("%w: empty timestamp format", core.ErrPatternCompile)
	}
	f := &Format{source: format}
	if err := f.compile(format); err != nil {
		return nil, fmt.Errorf("%w: timestamp format %q: %v", core.ErrPatternCompile, format, err)
	}
	return f, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(format string) *Format {
	f, err := Compile(format)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Format) compile(format string) error {
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			f.items = append(f.items, item{kind: kindLiteral, lit: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			lit.WriteByte(c)
			continue
		}

		i++
		if i >= len(format) {
			return fmt.Errorf("trailing '%%'")
		}

		dot := false
		if format[i] == '.' {
			dot = true
			i++
		}
		width := 0
		if i < len(format) && format[i] >= '1' && format[i] <= '9' {
			width = int(format[i] - '0')
			i++
		}
		colon := false
		if !dot && width == 0 && i < len(format) && format[i] == ':' {
			colon = true
			i++
		}
		if i >= len(format) {
			return fmt.Errorf("incomplete token at end of format")
		}
		spec := format[i]

		switch {
		case dot || width > 0:
			if spec != 'f' {
				return fmt.Errorf("width and '.' modifiers are only valid with %%f, got %%%c", spec)
			}
			if width != 0 && width != 3 && width != 6 && width != 9 {
				return fmt.Errorf("fraction width must be 3, 6 or 9, got %d", width)
			}
			flush()
			if dot {
				f.items = append(f.items, item{kind: kindDotFrac, width: width})
			} else {
				f.items = append(f.items, item{kind: kindFrac, width: width})
			}
			continue
		case colon:
			if spec != 'z' {
				return fmt.Errorf("':' modifier is only valid with %%z")
			}
			flush()
			f.items = append(f.items, item{kind: kindOffsetColon})
			f.hasZone = true
			continue
		}

		switch spec {
		case '%':
			lit.WriteByte('%')
		case 'n':
			lit.WriteByte('\n')
		case 't':
			lit.WriteByte('\t')
		case 'f':
			flush()
			f.items = append(f.items, item{kind: kindFrac, width: 9, flex: true})
		default:
			if sub, ok := composites[spec]; ok {
				flush()
				if err := f.compile(sub); err != nil {
					return err
				}
				continue
			}
			k, ok := simple[spec]
			if !ok {
				return fmt.Errorf("unknown token %%%c", spec)
			}
			flush()
			f.items = append(f.items, item{kind: k})
			if k == kindOffset {
				f.hasZone = true
			}
		}
	}
	flush()
	return nil
}

// String returns the source format.
func (f *Format) String() string {
	return f.source
}

// HasZone reports whether the format carries a UTC offset token.
func (f *Format) HasZone() bool {
	return f.hasZone
}

// IsWallClock reports whether the format describes a local wall-clock
// reading only: no offset, zone name or unix seconds token.
func (f *Format) IsWallClock() bool {
	for _, it := range f.items {
		switch it.kind {
		case kindOffset, kindOffsetColon, kindZoneName, kindUnix:
			return false
		}
	}
	return true
}
