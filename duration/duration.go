// Package duration parses and formats composite human-readable durations
// such as "1yr2mo3w4d5h6m7s8ms9microsec10ns".
//
// A Duration keeps one count per unit instead of a single scalar, so "90m"
// stays 90 minutes and "1mo" stays one month. Weeks have no field of their
// own and are folded into days.
package duration

import (
	"fmt"
	"math/bits"
)

// Duration holds the literal count written for each unit.
type Duration struct {
	Years        uint64
	Months       uint64
	Days         uint64
	Hours        uint64
	Minutes      uint64
	Seconds      uint64
	Milliseconds uint64
	Microseconds uint64
	Nanoseconds  uint64
}

// Amount is a count of one unit, the input to New.
type Amount struct {
	Unit  Unit
	Value uint64
}

// Years returns an Amount of n years.
func Years(n uint64) Amount { return Amount{Year, n} }

// Months returns an Amount of n months.
func Months(n uint64) Amount { return Amount{Month, n} }

// Weeks returns an Amount of n weeks, which New folds into days.
func Weeks(n uint64) Amount { return Amount{Week, n} }

// Days returns an Amount of n days.
func Days(n uint64) Amount { return Amount{Day, n} }

// Hours returns an Amount of n hours.
func Hours(n uint64) Amount { return Amount{Hour, n} }

// Minutes returns an Amount of n minutes.
func Minutes(n uint64) Amount { return Amount{Minute, n} }

// Seconds returns an Amount of n seconds.
func Seconds(n uint64) Amount { return Amount{Second, n} }

// Milliseconds returns an Amount of n milliseconds.
func Milliseconds(n uint64) Amount { return Amount{Millisecond, n} }

// Microseconds returns an Amount of n microseconds.
func Microseconds(n uint64) Amount { return Amount{Microsecond, n} }

// Nanoseconds returns an Amount of n nanoseconds.
func Nanoseconds(n uint64) Amount { return Amount{Nanosecond, n} }

// New builds a Duration under the same rules as Parse: each unit at most
// once, weeks folded into days.
func New(amounts ...Amount) (Duration, error) {
	var d Duration
	var seen UnitSet
	for _, a := range amounts {
		if !a.Unit.valid() {
			return Duration{}, fmt.Errorf("%w %s", ErrUnknownUnit, a.Unit)
		}
		if seen.Has(a.Unit) {
			return Duration{}, fmt.Errorf("%w %s", ErrDuplicateUnit, a.Unit)
		}
		seen = seen.Add(a.Unit)
		if err := d.set(a.Unit, a.Value); err != nil {
			return Duration{}, err
		}
	}
	return d, nil
}

// set records value for u. Days and weeks accumulate into the same field.
func (d *Duration) set(u Unit, value uint64) error {
	switch u {
	case Week:
		hi, days := bits.Mul64(value, 7)
		if hi != 0 {
			return fmt.Errorf("%w: %d weeks", ErrValueOutOfRange, value)
		}
		return d.addDays(days)
	case Day:
		return d.addDays(value)
	}
	*d.field(u) = value
	return nil
}

func (d *Duration) addDays(n uint64) error {
	sum, carry := bits.Add64(d.Days, n, 0)
	if carry != 0 {
		return fmt.Errorf("%w: days", ErrValueOutOfRange)
	}
	d.Days = sum
	return nil
}

// field returns the storage slot for u. Week shares Days.
func (d *Duration) field(u Unit) *uint64 {
	switch u {
	case Nanosecond:
		return &d.Nanoseconds
	case Microsecond:
		return &d.Microseconds
	case Millisecond:
		return &d.Milliseconds
	case Second:
		return &d.Seconds
	case Minute:
		return &d.Minutes
	case Hour:
		return &d.Hours
	case Day, Week:
		return &d.Days
	case Month:
		return &d.Months
	case Year:
		return &d.Years
	default:
		panic(fmt.Sprintf("duration: invalid unit %d", u))
	}
}

// Get returns the stored count for u. Week always reports 0 because weeks
// are stored as days.
func (d Duration) Get(u Unit) uint64 {
	if u == Week || !u.valid() {
		return 0
	}
	return *d.field(u)
}

// Equal reports whether d and other hold the same count for every unit.
func (d Duration) Equal(other Duration) bool {
	return d == other
}

// IsZero reports whether every count is zero.
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// carries lists the fixed ratios Normalize applies, smallest unit first.
// A month is taken as 30 days and a year as 12 months.
var carries = []struct {
	from, to Unit
	ratio    uint64
}{
	{Nanosecond, Microsecond, 1000},
	{Microsecond, Millisecond, 1000},
	{Millisecond, Second, 1000},
	{Second, Minute, 60},
	{Minute, Hour, 60},
	{Hour, Day, 24},
	{Day, Month, 30},
	{Month, Year, 12},
}

// Normalize carries overflowing counts into the next larger unit, so that
// "90m" becomes "1h30m". The ratios are fixed and ignore the calendar.
func (d Duration) Normalize() (Duration, error) {
	for _, c := range carries {
		from, to := d.field(c.from), d.field(c.to)
		if *from < c.ratio {
			continue
		}
		sum, carry := bits.Add64(*to, *from/c.ratio, 0)
		if carry != 0 {
			return Duration{}, fmt.Errorf("%w: normalizing %s", ErrValueOutOfRange, c.to)
		}
		*to = sum
		*from %= c.ratio
	}
	return d, nil
}
