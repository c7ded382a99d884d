// Package typefmt implements per-type structural validation and
// format-compatibility checks for the field types text, number, date, time
// and boolean. Validation here is plausibility, not semantic enforcement:
// unrecognized format strings fall back to the most permissive interpretation
// for their type and never hard-fail.
package typefmt

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// currencyPrefixes are the currency symbols accepted ahead of a number.
var currencyPrefixes = []string{"$", "€", "£", "¥"}

// Number parses a numeric literal, accepting an optional leading currency
// symbol, a trailing percent sign and digit-grouping commas. The returned
// value is the literal's magnitude; percent is not rescaled.
func Number(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	for _, p := range currencyPrefixes {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
			break
		}
	}
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" || !validGrouping(s) {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// validGrouping rejects grouping commas that are not between digits.
func validGrouping(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ',' {
			continue
		}
		if i == 0 || i == len(s)-1 {
			return false
		}
		if !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// NumberCompatible reports whether a numeric token fits the format string's
// implied decimal precision. Formats without any #/0 placeholder are treated
// as unconstrained. A token with more decimal places than the format allows
// is incompatible; fewer is fine.
func NumberCompatible(raw, format string) bool {
	if _, ok := Number(raw); !ok {
		return false
	}
	if !strings.ContainsAny(format, "#0") {
		return true
	}
	allowed := 0
	if dot := strings.LastIndexByte(format, '.'); dot >= 0 {
		for _, c := range format[dot+1:] {
			if c == '#' || c == '0' {
				allowed++
			}
		}
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	if dot := strings.LastIndexByte(s, '.'); dot >= 0 {
		if len(s)-dot-1 > allowed {
			return false
		}
	}
	return true
}

// dateLayouts are the recognized permissive input patterns for dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// Date validates a date token against the recognized input patterns.
func Date(raw string) (time.Time, bool) {
	return tryLayouts(raw, dateLayouts)
}

// timeLayouts are the recognized permissive input patterns for times of day,
// covering both 24-hour and 12-hour clocks.
var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
}

// Time validates a time-of-day token against the recognized input patterns.
func Time(raw string) (time.Time, bool) {
	return tryLayouts(raw, timeLayouts)
}

func tryLayouts(raw string, layouts []string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a date token under the given input pattern. An empty or
// unrecognized pattern falls back to the permissive layout set.
func ParseDate(raw, pattern string) (time.Time, bool) {
	return parseTemporal(raw, pattern, Date)
}

// ParseTime is ParseDate for times of day.
func ParseTime(raw, pattern string) (time.Time, bool) {
	return parseTemporal(raw, pattern, Time)
}

// DateCompatible reports whether a date token parses under the given input
// pattern.
func DateCompatible(raw, pattern string) bool {
	_, ok := ParseDate(raw, pattern)
	return ok
}

// TimeCompatible is DateCompatible for times of day.
func TimeCompatible(raw, pattern string) bool {
	_, ok := ParseTime(raw, pattern)
	return ok
}

func parseTemporal(raw, pattern string, permissive func(string) (time.Time, bool)) (time.Time, bool) {
	layout, recognized := Layout(pattern)
	if !recognized {
		return permissive(raw)
	}
	t, err := time.Parse(layout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// layoutReplacer maps symbolic date/time pattern tokens to Go layout
// elements. Longer tokens first so e.g. YYYY wins over YY.
var layoutReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MMMM", "January",
	"MMM", "Jan",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"hh", "03",
	"mm", "04",
	"ss", "05",
	"A", "PM",
	"a", "pm",
)

// Layout converts a symbolic pattern (YYYY-MM-DD, hh:mm A, ...) to a Go time
// layout. recognized is false when the pattern contains no symbolic tokens at
// all, which callers treat as "use the permissive defaults".
func Layout(pattern string) (layout string, recognized bool) {
	if pattern == "" {
		return "", false
	}
	layout = layoutReplacer.Replace(pattern)
	return layout, layout != pattern
}

// Bool validates a boolean token. Recognized, case-insensitively:
// true/false, yes/no, y/n, 1/0.
func Bool(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	}
	return false, false
}
