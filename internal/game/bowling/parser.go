package bowling

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RollPattern is the grammar of a roll sequence: zero or more
// whitespace-separated non-negative base-10 integers, optionally surrounded by
// whitespace.
const RollPattern = `^\s*(\d+(\s+\d+)*)?\s*$`

var rollPattern = regexp.MustCompile(RollPattern)

// Parser converts roll text into Rolls validated against a set of Rules.
//
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	rules Rules
}

// NewParser returns a Parser that accepts rolls in [0, rules.Pins].
//
// Precondition: rules.Validate() == nil.
func NewParser(rules Rules) *Parser {
	return &Parser{rules: rules}
}

// Rules returns the rules the parser validates against.
func (p *Parser) Rules() Rules { return p.rules }

// Parse converts text into Rolls.
//
// Only the zero-length string is empty input; whitespace-only text is a valid
// sequence of zero rolls.
//
// Postcondition: Returns a non-nil Rolls with every value in [0, Pins], or an
// error wrapping ErrEmptyInput, ErrMalformedInput or ErrRollOutOfRange.
func (p *Parser) Parse(text string) (Rolls, error) {
	if text == "" {
		return nil, fmt.Errorf("bowling: %w", ErrEmptyInput)
	}
	if !rollPattern.MatchString(text) {
		return nil, fmt.Errorf("bowling: parsing %q: %w", text, ErrMalformedInput)
	}

	fields := strings.Fields(text)
	rolls := make(Rolls, 0, len(fields))
	for i, f := range fields {
		// The pattern admits only digits, so Atoi can fail only on overflow, and
		// then v is clamped to math.MaxInt.
		v, err := strconv.Atoi(f)
		if err != nil || v > p.rules.Pins {
			return nil, &RollError{Index: i, Value: v, Err: ErrRollOutOfRange}
		}
		rolls = append(rolls, v)
	}
	return rolls, nil
}

// Parse converts text into Rolls under StandardRules.
func Parse(text string) (Rolls, error) {
	return NewParser(StandardRules).Parse(text)
}
