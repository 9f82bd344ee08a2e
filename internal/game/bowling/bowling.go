// Package bowling parses ten-pin bowling roll sequences and computes the total
// score of a game, validating that the sequence is legal as it goes.
package bowling

import (
	"fmt"
	"strconv"
	"strings"
)

// Rules holds the game dimensions shared by the Parser and the scorer.
//
// Invariant: Pins >= 1 and Frames >= 1 for any Rules passed to this package.
type Rules struct {
	Pins   int // pins standing at the start of a frame
	Frames int // regular frames in a game
}

// StandardRules are the ten-pin rules: ten pins, ten frames.
var StandardRules = Rules{Pins: 10, Frames: 10}

// MaxScore returns the score of a perfect game under r.
//
// Postcondition: return value == 3 * Pins * Frames.
func (r Rules) MaxScore() int {
	return 3 * r.Pins * r.Frames
}

// Validate reports whether r describes a playable game.
//
// Postcondition: Returns nil, or an error naming every invalid dimension.
func (r Rules) Validate() error {
	var errs []string
	if r.Pins < 1 {
		errs = append(errs, fmt.Sprintf("pins must be >= 1, got %d", r.Pins))
	}
	if r.Frames < 1 {
		errs = append(errs, fmt.Sprintf("frames must be >= 1, got %d", r.Frames))
	}
	if len(errs) > 0 {
		return fmt.Errorf("bowling: invalid rules: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Rolls is the ordered sequence of pin counts knocked down by each ball, in the
// order bowled.
type Rolls []int

// String renders the rolls in the canonical space-separated form accepted by Parse.
//
// Postcondition: Parse(r.String()) yields a sequence equal to r when r is non-empty
// and every roll is in range.
func (r Rolls) String() string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
