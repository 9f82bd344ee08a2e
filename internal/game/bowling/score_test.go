package bowling_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/bowling/internal/game/bowling"
)

func repeat(roll, n int) bowling.Rolls {
	rolls := make(bowling.Rolls, n)
	for i := range rolls {
		rolls[i] = roll
	}
	return rolls
}

// gutterFrames returns n frames of two gutter balls.
func gutterFrames(n int) bowling.Rolls {
	return repeat(0, 2*n)
}

func concat(parts ...bowling.Rolls) bowling.Rolls {
	var out bowling.Rolls
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestScore_PerfectGame(t *testing.T) {
	score, err := bowling.Score(repeat(10, 12))
	require.NoError(t, err)
	assert.Equal(t, 300, score)
}

func TestScore_OpenFrames(t *testing.T) {
	score, err := bowling.Score(bowling.Rolls{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 10, score)
}

func TestScore_Spares(t *testing.T) {
	score, err := bowling.Score(bowling.Rolls{9, 1, 9, 1})
	require.NoError(t, err)
	assert.Equal(t, 29, score)
}

func TestScore_StrikeBonusIsNextTwoRolls(t *testing.T) {
	score, err := bowling.Score(bowling.Rolls{9, 0, 1, 4, 10, 6, 3, 6, 2, 10, 3, 4})
	require.NoError(t, err)
	// 9 + 5 + (10+6+3) + 9 + 8 + (10+3+4) + 7
	assert.Equal(t, 74, score)
}

func TestScore_Empty(t *testing.T) {
	score, err := bowling.Score(nil)
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestScore_GutterThenTenCollectsTwoBalls(t *testing.T) {
	score, err := bowling.CalculateScore("0 10 3 4")
	require.NoError(t, err)
	// (10+3+4) + 7
	assert.Equal(t, 24, score)

	score, err = bowling.Score(concat(gutterFrames(8), bowling.Rolls{0, 10, 10, 5, 3}))
	require.NoError(t, err)
	// (10+10+5) + (10+5+3)
	assert.Equal(t, 43, score)
}

func TestScore_IncompleteGameIsScored(t *testing.T) {
	res, err := bowling.Evaluate(bowling.StandardRules, bowling.Rolls{10, 3})
	require.NoError(t, err)
	assert.Equal(t, 16, res.Total)
	assert.Equal(t, 1, res.Frames)
	assert.False(t, res.Complete)
}

// The four tenth-frame endgame shapes.
func TestScore_TenthFrameEndgames(t *testing.T) {
	tests := []struct {
		name       string
		rolls      bowling.Rolls
		want       int
		bonusRolls int
	}{
		{"strike strike any", concat(gutterFrames(9), bowling.Rolls{10, 10, 4}), 24, 2},
		{"strike then open pair", concat(gutterFrames(9), bowling.Rolls{10, 4, 5}), 19, 2},
		{"spare then any", concat(gutterFrames(9), bowling.Rolls{6, 4, 10}), 20, 1},
		{"open frame", concat(gutterFrames(9), bowling.Rolls{6, 3}), 9, 0},
		{"ninth strike into tenth strike", concat(gutterFrames(8), bowling.Rolls{10, 10, 4, 5}), 24 + 19, 2},
		{"ninth strike into tenth spare", concat(gutterFrames(8), bowling.Rolls{10, 4, 6, 5}), 20 + 15, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := bowling.Evaluate(bowling.StandardRules, tt.rolls)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Total)
			assert.Equal(t, 10, res.Frames)
			assert.Equal(t, tt.bonusRolls, res.BonusRolls)
			assert.True(t, res.Complete)
		})
	}
}

func TestScore_TenthFrameAwaitingBonus(t *testing.T) {
	res, err := bowling.Evaluate(bowling.StandardRules, concat(gutterFrames(9), bowling.Rolls{10, 4}))
	require.NoError(t, err)
	assert.Equal(t, 10, res.Frames)
	assert.Equal(t, 1, res.BonusRolls)
	assert.False(t, res.Complete)
}

func TestScore_Errors(t *testing.T) {
	tests := []struct {
		name  string
		rolls bowling.Rolls
		want  error
		index int
	}{
		{"roll above ten", bowling.Rolls{1, 2, 4, 12}, bowling.ErrRollOutOfRange, 3},
		{"negative roll", bowling.Rolls{1, -1}, bowling.ErrRollOutOfRange, 1},
		{"frame over ten", bowling.Rolls{1, 2, 4, 10}, bowling.ErrFrameScoreExceeded, 3},
		{"roll after open tenth", concat(gutterFrames(10), bowling.Rolls{3}), bowling.ErrIneligibleBonusRoll, 20},
		{"second bonus after spare", concat(gutterFrames(9), bowling.Rolls{5, 5, 2, 3}), bowling.ErrIneligibleBonusRoll, 21},
		{"third bonus after strike", concat(gutterFrames(9), bowling.Rolls{10, 5, 3, 1}), bowling.ErrIneligibleBonusRoll, 21},
		{"three rolls after spare", concat(repeat(10, 9), bowling.Rolls{5, 5, 2, 3, 4}), bowling.ErrIneligibleBonusRoll, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := bowling.Score(tt.rolls)
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, score)

			var rollErr *bowling.RollError
			require.True(t, errors.As(err, &rollErr))
			assert.Equal(t, tt.index, rollErr.Index)
			assert.Equal(t, tt.rolls[tt.index], rollErr.Value)
		})
	}
}

func TestScoreWithRules_ShortGame(t *testing.T) {
	rules := bowling.Rules{Pins: 5, Frames: 3}

	score, err := bowling.ScoreWithRules(rules, bowling.Rolls{5, 5, 5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, rules.MaxScore(), score)

	_, err = bowling.ScoreWithRules(rules, bowling.Rolls{3, 3})
	assert.ErrorIs(t, err, bowling.ErrFrameScoreExceeded)
}

func TestCalculateScore(t *testing.T) {
	score, err := bowling.CalculateScore("10 10 10 10 10 10 10 10 10 10 10 10")
	require.NoError(t, err)
	assert.Equal(t, 300, score)

	_, err = bowling.CalculateScore("1|2|3")
	assert.ErrorIs(t, err, bowling.ErrMalformedInput)
}

func TestRules(t *testing.T) {
	assert.Equal(t, 300, bowling.StandardRules.MaxScore())
	assert.NoError(t, bowling.StandardRules.Validate())
	assert.Error(t, bowling.Rules{Pins: 0, Frames: 10}.Validate())
	assert.Error(t, bowling.Rules{Pins: 10, Frames: 0}.Validate())

	err := bowling.Rules{Pins: 0, Frames: -2}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pins must be >= 1, got 0")
	assert.Contains(t, err.Error(), "frames must be >= 1, got -2")
}

// legalGame draws a complete, legal ten-pin game.
func legalGame(t *rapid.T) bowling.Rolls {
	var rolls bowling.Rolls
	for f := 0; f < 9; f++ {
		first := rapid.IntRange(0, 10).Draw(t, "first")
		if first == 10 {
			rolls = append(rolls, 10)
			continue
		}
		rolls = append(rolls, first, rapid.IntRange(0, 10-first).Draw(t, "second"))
	}

	first := rapid.IntRange(0, 10).Draw(t, "tenth_first")
	if first == 10 {
		b1 := rapid.IntRange(0, 10).Draw(t, "bonus1")
		limit := 10
		if b1 < 10 {
			limit = 10 - b1
		}
		return append(rolls, 10, b1, rapid.IntRange(0, limit).Draw(t, "bonus2"))
	}
	second := rapid.IntRange(0, 10-first).Draw(t, "tenth_second")
	rolls = append(rolls, first, second)
	if first+second == 10 {
		rolls = append(rolls, rapid.IntRange(0, 10).Draw(t, "bonus"))
	}
	return rolls
}

// frameScore scores a complete game frame by frame with look-ahead. Any ball of
// ten pins before the tenth frame collects the next two balls, including the
// second ball of a 0-10 spare.
func frameScore(rolls bowling.Rolls) int {
	score, i := 0, 0
	for f := 0; f < 10; f++ {
		switch {
		case rolls[i] == 10:
			score += 10 + rolls[i+1] + rolls[i+2]
			i++
		case rolls[i]+rolls[i+1] == 10:
			score += 10 + rolls[i+2]
			if f < 9 && rolls[i+1] == 10 {
				score += rolls[i+3]
			}
			i += 2
		default:
			score += rolls[i] + rolls[i+1]
			i += 2
		}
	}
	return score
}

// Property: every legal full game scores within [0, 300] and is complete.
func TestPropertyLegalGameScoreInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rolls := legalGame(t)
		res, err := bowling.Evaluate(bowling.StandardRules, rolls)
		if err != nil {
			t.Fatalf("legal game %v rejected: %v", rolls, err)
		}
		if res.Total < 0 || res.Total > 300 {
			t.Fatalf("score %d of %v outside [0, 300]", res.Total, rolls)
		}
		if !res.Complete {
			t.Fatalf("legal game %v reported incomplete", rolls)
		}
	})
}

// Property: the roll-by-roll state machine agrees with frame-by-frame scoring.
func TestPropertyMatchesFrameScoring(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rolls := legalGame(t)
		got, err := bowling.Score(rolls)
		if err != nil {
			t.Fatalf("legal game %v rejected: %v", rolls, err)
		}
		if want := frameScore(rolls); got != want {
			t.Fatalf("Score(%v) = %d, want %d", rolls, got, want)
		}
	})
}

// Property: any roll appended to a complete game is ineligible.
func TestPropertyExtraRollRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rolls := append(legalGame(t), rapid.IntRange(0, 10).Draw(t, "extra"))
		_, err := bowling.Score(rolls)
		if !errors.Is(err, bowling.ErrIneligibleBonusRoll) {
			t.Fatalf("Score(%v) = %v, want ErrIneligibleBonusRoll", rolls, err)
		}
	})
}

// Property: scoring is deterministic.
func TestPropertyScoreDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rolls := rapid.SliceOfN(rapid.IntRange(0, 10), 0, 24).Draw(t, "rolls")
		s1, err1 := bowling.Score(rolls)
		s2, err2 := bowling.Score(rolls)
		assert.Equal(t, s1, s2)
		assert.Equal(t, err1, err2)
	})
}
