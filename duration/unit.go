package duration

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Unit is one of the ten duration categories a pair may name.
type Unit uint8

const (
	Nanosecond Unit = iota
	Microsecond
	Millisecond
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year

	numUnits = int(Year) + 1
)

type unitInfo struct {
	name     string
	short    string // canonical alias used by the formatter
	singular string
	plural   string
	aliases  []string
}

// The alias rows are part of the accepted input language. Pattern is built
// from them.
var unitTable = [numUnits]unitInfo{
	Nanosecond: {
		name: "Nanosecond", short: "ns", singular: "nanosecond", plural: "nanoseconds",
		aliases: []string{"ns", "nsec", "nsecs", "nanosec", "nanosecs", "nanosecond", "nanoseconds"},
	},
	Microsecond: {
		name: "Microsecond", short: "us", singular: "microsecond", plural: "microseconds",
		aliases: []string{"μs", "us", "usec", "usecs", "microsec", "microsecs", "microsecond", "microseconds"},
	},
	Millisecond: {
		name: "Millisecond", short: "ms", singular: "millisecond", plural: "milliseconds",
		aliases: []string{"ms", "msec", "msecs", "millisecond", "milliseconds"},
	},
	Second: {
		name: "Second", short: "s", singular: "second", plural: "seconds",
		aliases: []string{"s", "sec", "secs", "second", "seconds"},
	},
	Minute: {
		name: "Minute", short: "m", singular: "minute", plural: "minutes",
		aliases: []string{"m", "min", "mins", "minute", "minutes"},
	},
	Hour: {
		name: "Hour", short: "h", singular: "hour", plural: "hours",
		aliases: []string{"h", "hr", "hrs", "hour", "hours"},
	},
	Day: {
		name: "Day", short: "d", singular: "day", plural: "days",
		aliases: []string{"d", "day", "days"},
	},
	Week: {
		name: "Week", short: "w", singular: "week", plural: "weeks",
		aliases: []string{"w", "wk", "wks", "week", "weeks"},
	},
	Month: {
		name: "Month", short: "mo", singular: "month", plural: "months",
		aliases: []string{"mo", "month", "months"},
	},
	Year: {
		name: "Year", short: "y", singular: "year", plural: "years",
		aliases: []string{"y", "yr", "yrs", "year", "years"},
	},
}

type alias struct {
	text string
	unit Unit
}

// aliasesByLength holds every alias, longest first, so the first prefix
// match is also the longest one.
var aliasesByLength = func() []alias {
	var all []alias
	for u := range unitTable {
		for _, a := range unitTable[u].aliases {
			all = append(all, alias{text: a, unit: Unit(u)})
		}
	}
	slices.SortStableFunc(all, func(a, b alias) int {
		return utf8.RuneCountInString(b.text) - utf8.RuneCountInString(a.text)
	})
	return all
}()

// Units lists every category from the smallest to the largest.
func Units() []Unit {
	units := make([]Unit, numUnits)
	for i := range units {
		units[i] = Unit(i)
	}
	return units
}

// String returns the category name, e.g. "Second".
func (u Unit) String() string {
	if !u.valid() {
		return fmt.Sprintf("Unit(%d)", uint8(u))
	}
	return unitTable[u].name
}

// Symbol returns the short alias the formatter writes for u.
func (u Unit) Symbol() string {
	if !u.valid() {
		return ""
	}
	return unitTable[u].short
}

// Aliases returns every spelling accepted for u.
func (u Unit) Aliases() []string {
	if !u.valid() {
		return nil
	}
	return slices.Clone(unitTable[u].aliases)
}

func (u Unit) valid() bool {
	return int(u) < numUnits
}

// MatchUnit finds the longest alias that prefixes s, ignoring case. It
// returns the alias's unit and the number of bytes of s it covers.
func MatchUnit(s string) (u Unit, n int, ok bool) {
	for _, a := range aliasesByLength {
		if size, matched := hasPrefixFold(s, a.text); matched {
			return a.unit, size, true
		}
	}
	return 0, 0, false
}

// ParseUnit returns the unit spelled by s, which must be a single alias.
func ParseUnit(s string) (Unit, error) {
	trimmed := strings.TrimSpace(s)
	u, n, ok := MatchUnit(trimmed)
	if !ok || n != len(trimmed) {
		return 0, fmt.Errorf("%w %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// hasPrefixFold reports whether s starts with alias under case folding.
// ASCII alias letters only match ASCII input so that runes like U+017F
// (long s) or U+212A (Kelvin) never pass for "s" or "k".
func hasPrefixFold(s, alias string) (int, bool) {
	n := 0
	for _, want := range alias {
		if n >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[n:])
		if want < utf8.RuneSelf {
			if r >= utf8.RuneSelf || unicode.ToLower(r) != want {
				return 0, false
			}
		} else if foldRune(r) != want {
			return 0, false
		}
		n += size
	}
	return n, true
}

// foldRune maps every case variant of a rune to its lower-case form. The
// round trip through upper case sends U+00B5 (micro sign) to μ.
func foldRune(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}

// UnitSet is a fixed-size set of units.
type UnitSet uint16

// NewUnitSet returns a set holding units.
func NewUnitSet(units ...Unit) UnitSet {
	var s UnitSet
	for _, u := range units {
		s = s.Add(u)
	}
	return s
}

// Add returns s with u included.
func (s UnitSet) Add(u Unit) UnitSet {
	return s | 1<<u
}

// Has reports whether u is in s.
func (s UnitSet) Has(u Unit) bool {
	return s&(1<<u) != 0
}

// Len returns the number of units in s.
func (s UnitSet) Len() int {
	n := 0
	for u := 0; u < numUnits; u++ {
		if s.Has(Unit(u)) {
			n++
		}
	}
	return n
}
