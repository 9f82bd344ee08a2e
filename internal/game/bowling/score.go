package bowling

// phase is the scoring state machine's top-level state.
type phase int

const (
	// phaseRegular: frames 1..Frames are in progress.
	phaseRegular phase = iota
	// phaseBonus: all regular frames are complete and only the bonus rolls the
	// final frame earned remain. Terminal.
	phaseBonus
)

// scoringState carries one game's progress between rolls. It is owned by a
// single Score call and discarded afterwards.
//
// Invariant: ballInFrame ∈ {0, 1}; frameCount <= rules.Frames;
// phase == phaseBonus implies frameCount == rules.Frames;
// bonusRollsSeen <= bonusRollsAllowed.
type scoringState struct {
	rules Rules

	total       int
	frameCount  int
	ballInFrame int

	prevRoll     int
	prevPrevRoll int
	pendingSpare bool // the last completed frame was a spare and owes one ball

	phase             phase
	bonusRollsAllowed int
	bonusRollsSeen    int

	rollIndex int
}

func newScoringState(rules Rules) *scoringState {
	return &scoringState{rules: rules}
}

// apply advances the state by one roll.
//
// Postcondition: on error the state must not be used again.
func (s *scoringState) apply(roll int) error {
	defer func() { s.rollIndex++ }()

	if roll < 0 || roll > s.rules.Pins {
		return s.fail(roll, ErrRollOutOfRange)
	}
	if s.phase == phaseBonus {
		return s.applyBonus(roll)
	}
	if s.frameCount == s.rules.Frames {
		return s.fail(roll, ErrIneligibleBonusRoll)
	}
	return s.applyRegular(roll)
}

// applyBonus scores a roll that only resolves the final frame's bonus.
func (s *scoringState) applyBonus(roll int) error {
	if s.bonusRollsSeen == s.bonusRollsAllowed {
		return s.fail(roll, ErrIneligibleBonusRoll)
	}
	s.total += roll
	// A full-pin ball two back still owes its second look-ahead ball.
	if s.bonusRollsSeen == 0 && s.prevPrevRoll == s.rules.Pins {
		s.total += roll
	}
	s.bonusRollsSeen++
	s.shift(roll)
	return nil
}

func (s *scoringState) applyRegular(roll int) error {
	if s.ballInFrame == 1 && s.prevRoll+roll > s.rules.Pins {
		return s.fail(roll, ErrFrameScoreExceeded)
	}

	s.total += roll
	// Look-ahead keys on the pin count of the earlier ball, not on whether it
	// opened its frame: the second ball of a 0-then-all frame also collects two.
	if s.pendingSpare || s.prevRoll == s.rules.Pins {
		s.total += roll
		s.pendingSpare = false
	}
	if s.prevPrevRoll == s.rules.Pins {
		s.total += roll
	}

	switch {
	case s.ballInFrame == 1:
		s.frameCount++
		s.ballInFrame = 0
		if s.prevRoll+roll == s.rules.Pins {
			s.pendingSpare = true
			if s.frameCount == s.rules.Frames {
				s.enterBonus(1)
			}
		}
	case roll == s.rules.Pins:
		s.frameCount++
		if s.frameCount == s.rules.Frames {
			s.enterBonus(2)
		}
	default:
		s.ballInFrame = 1
	}

	s.shift(roll)
	return nil
}

func (s *scoringState) enterBonus(allowed int) {
	s.phase = phaseBonus
	s.bonusRollsAllowed = allowed
	s.bonusRollsSeen = 0
}

func (s *scoringState) shift(roll int) {
	s.prevPrevRoll, s.prevRoll = s.prevRoll, roll
}

func (s *scoringState) fail(roll int, err error) error {
	return &RollError{Index: s.rollIndex, Value: roll, Err: err}
}

// Result summarizes a scored roll sequence.
type Result struct {
	Total      int // accumulated score
	Frames     int // regular frames completed
	BonusRolls int // bonus rolls bowled after the final frame
	Complete   bool
}

func (s *scoringState) result() Result {
	complete := s.frameCount == s.rules.Frames
	if s.phase == phaseBonus {
		complete = s.bonusRollsSeen == s.bonusRollsAllowed
	}
	return Result{
		Total:      s.total,
		Frames:     s.frameCount,
		BonusRolls: s.bonusRollsSeen,
		Complete:   complete,
	}
}

// Evaluate scores rolls under rules and reports how far the game got.
//
// Incomplete games are scored as far as they go; Result.Complete reports whether
// every frame and earned bonus roll was bowled.
//
// Precondition: rules.Validate() == nil.
// Postcondition: Returns the Result, or a *RollError wrapping ErrRollOutOfRange,
// ErrFrameScoreExceeded or ErrIneligibleBonusRoll for the first illegal roll.
func Evaluate(rules Rules, rolls Rolls) (Result, error) {
	s := newScoringState(rules)
	for _, roll := range rolls {
		if err := s.apply(roll); err != nil {
			return Result{}, err
		}
	}
	return s.result(), nil
}

// ScoreWithRules computes the total score of rolls under rules.
func ScoreWithRules(rules Rules, rolls Rolls) (int, error) {
	res, err := Evaluate(rules, rolls)
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

// Score computes the total score of rolls under StandardRules.
func Score(rolls Rolls) (int, error) {
	return ScoreWithRules(StandardRules, rolls)
}

// CalculateScore parses text and scores it under StandardRules.
//
// Postcondition: Returns the total score or the first parse or scoring error.
func CalculateScore(text string) (int, error) {
	rolls, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return Score(rolls)
}
