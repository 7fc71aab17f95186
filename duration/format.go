package duration

import (
	"strconv"
	"strings"
)

// formatOrder is the order in which the formatter writes units. Week is
// absent because weeks are stored as days.
var formatOrder = [...]Unit{
	Year, Month, Day, Hour, Minute, Second, Millisecond, Microsecond, Nanosecond,
}

// FormatOptions controls Format. The zero value yields the canonical form.
type FormatOptions struct {
	// LongNames writes "2 hours 1 minute" instead of "2h1m".
	LongNames bool
	// ShowZero writes units whose count is zero.
	ShowZero bool
	// Omit lists units to leave out entirely.
	Omit UnitSet
}

// String returns the canonical form of d, e.g. "1y2mo25d5h". A zero
// Duration is written as "0s".
func (d Duration) String() string {
	return d.Format(FormatOptions{})
}

// Format renders d according to opts. The result always parses back to a
// Duration with the same counts for the units it shows. When nothing is
// shown, Format writes zero of the smallest unit not omitted, or zero
// seconds if every unit is omitted.
func (d Duration) Format(opts FormatOptions) string {
	var b strings.Builder
	for _, u := range formatOrder {
		if opts.Omit.Has(u) {
			continue
		}
		v := d.Get(u)
		if v == 0 && !opts.ShowZero {
			continue
		}
		writeUnit(&b, v, u, opts.LongNames)
	}

	if b.Len() == 0 {
		writeUnit(&b, 0, zeroUnit(opts.Omit), opts.LongNames)
	}
	return b.String()
}

// zeroUnit picks the unit for an empty result: Second unless omitted, then
// the smallest unit still shown.
func zeroUnit(omit UnitSet) Unit {
	if !omit.Has(Second) {
		return Second
	}
	for i := len(formatOrder) - 1; i >= 0; i-- {
		if u := formatOrder[i]; !omit.Has(u) {
			return u
		}
	}
	return Second
}

func writeUnit(b *strings.Builder, v uint64, u Unit, long bool) {
	if !long {
		b.WriteString(strconv.FormatUint(v, 10))
		b.WriteString(unitTable[u].short)
		return
	}

	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(strconv.FormatUint(v, 10))
	b.WriteByte(' ')
	if v == 1 {
		b.WriteString(unitTable[u].singular)
	} else {
		b.WriteString(unitTable[u].plural)
	}
}
