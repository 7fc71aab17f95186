package duration

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxDigits is the longest number a single pair may carry.
const MaxDigits = 32

type parseState int

const (
	expectValue parseState = iota
	expectUnit
	expectValueOrEnd
)

type parser struct {
	input string
	pos   int
	value uint64
	// valueStart is where the current pair's number began.
	valueStart int
	seen       UnitSet
	d          Duration
}

// Parse reads a duration such as "2h 30m" or "1yr2mo3w". Pairs may come in
// any order and may be separated by whitespace, but each unit may appear
// only once. Any failure is reported as a *ParseError and no partial
// Duration is returned.
func Parse(s string) (Duration, error) {
	if strings.TrimFunc(s, unicode.IsSpace) == "" {
		return Duration{}, &ParseError{Input: s, Err: ErrEmptyInput}
	}

	p := &parser{input: s}
	state := expectValue
	for {
		switch state {
		case expectValue:
			p.skipSpace()
			if err := p.scanNumber(); err != nil {
				return Duration{}, err
			}
			state = expectUnit
		case expectUnit:
			p.skipSpace()
			if err := p.scanUnit(); err != nil {
				return Duration{}, err
			}
			state = expectValueOrEnd
		case expectValueOrEnd:
			p.skipSpace()
			if p.pos == len(p.input) {
				return p.d, nil
			}
			if !isDigit(p.input[p.pos]) {
				return Duration{}, p.errorAt(p.pos, len(p.input), ErrTrailingGarbage)
			}
			state = expectValue
		}
	}
}

// MustParse is like Parse but panics if s is not a valid duration.
func MustParse(s string) Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *parser) scanNumber() error {
	start := p.pos
	for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
		p.pos++
	}

	switch digits := p.pos - start; {
	case digits == 0:
		_, size := utf8.DecodeRuneInString(p.input[start:])
		return p.errorAt(start, start+size, ErrInvalidNumber)
	case digits > MaxDigits:
		return p.errorAt(start, p.pos, ErrNumberTooLong)
	}

	value, err := strconv.ParseUint(p.input[start:p.pos], 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return p.errorAt(start, p.pos, ErrValueOutOfRange)
		}
		return p.errorAt(start, p.pos, ErrInvalidNumber)
	}
	p.value = value
	p.valueStart = start
	return nil
}

func (p *parser) scanUnit() error {
	start := p.pos
	u, n, ok := MatchUnit(p.input[start:])

	// A unit word must end where the alias ends; "5secx" is an unknown
	// unit, not "5sec" followed by garbage.
	end := p.wordEnd(start + n)
	if !ok || end != start+n {
		if end == start && start < len(p.input) {
			_, size := utf8.DecodeRuneInString(p.input[start:])
			end = start + size
		}
		return p.errorAt(start, end, ErrUnknownUnit)
	}

	if p.seen.Has(u) {
		err := p.errorAt(start, end, ErrDuplicateUnit)
		err.Unit = u
		return err
	}
	if err := p.d.set(u, p.value); err != nil {
		return p.errorAt(p.valueStart, end, ErrValueOutOfRange)
	}
	p.seen = p.seen.Add(u)
	p.pos = end
	return nil
}

// wordEnd returns the end of the run of letters starting at i.
func (p *parser) wordEnd(i int) int {
	for i < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[i:])
		if !unicode.IsLetter(r) {
			break
		}
		i += size
	}
	return i
}

func (p *parser) errorAt(start, end int, err error) *ParseError {
	return &ParseError{
		Input:  p.input,
		Offset: start,
		End:    end,
		Text:   p.input[start:end],
		Err:    err,
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
