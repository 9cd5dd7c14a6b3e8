package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat/internal/engine/dice"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

type RollerTestSuite struct {
	suite.Suite
	script *dice.Scripted
	roller *dice.Roller
}

func TestRollerSuite(t *testing.T) {
	suite.Run(t, new(RollerTestSuite))
}

func (s *RollerTestSuite) SetupTest() {
	s.script = dice.NewScripted()
	s.roller = dice.New(s.script)
}

func (s *RollerTestSuite) TestRollDie() {
	s.script.Push(4)

	v, err := s.roller.RollDie(6)
	s.Require().NoError(err)
	s.Equal(4, v)
}

func (s *RollerTestSuite) TestRollDieRejectsZeroSides() {
	_, err := s.roller.RollDie(0)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(0, s.script.Rolled())
}

func (s *RollerTestSuite) TestAdvantage() {
	s.script.Push(7, 15)

	result, err := s.roller.RollWithAdvantage()
	s.Require().NoError(err)
	s.Equal([2]int{7, 15}, result.Rolls)
	s.Equal(15, result.Kept)
}

func (s *RollerTestSuite) TestDisadvantage() {
	s.script.Push(7, 15)

	result, err := s.roller.RollWithDisadvantage()
	s.Require().NoError(err)
	s.Equal([2]int{7, 15}, result.Rolls)
	s.Equal(7, result.Kept)
}

func (s *RollerTestSuite) TestRollNotation() {
	s.script.Push(3, 5)

	result, err := s.roller.Roll("2d6+2")
	s.Require().NoError(err)
	s.Equal("2d6+2", result.Notation)
	s.Equal([]int{3, 5}, result.Dice)
	s.Equal(2, result.Modifier)
	s.Equal(10, result.Total)
}

func (s *RollerTestSuite) TestRollDiceTotal() {
	s.script.Push(8)

	total, err := s.roller.RollDice("d10-3")
	s.Require().NoError(err)
	s.Equal(5, total)
}

func (s *RollerTestSuite) TestMalformedNotationRollsNothing() {
	s.script.Push(1)

	_, err := s.roller.RollDice("banana")
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(1, s.script.Remaining())
}

func (s *RollerTestSuite) TestExhaustedScript() {
	_, err := s.roller.RollDie(20)
	s.Require().Error(err)
}

func (s *RollerTestSuite) TestScriptValueOutOfRange() {
	s.script.Push(9)

	_, err := s.roller.RollDie(6)
	s.Require().Error(err)
}

func TestParseNotation(t *testing.T) {
	tests := []struct {
		input    string
		expected dice.Notation
	}{
		{input: "1d20", expected: dice.Notation{Count: 1, Sides: 20}},
		{input: "d8", expected: dice.Notation{Count: 1, Sides: 8}},
		{input: "3D6", expected: dice.Notation{Count: 3, Sides: 6}},
		{input: " 2d4 + 2 ", expected: dice.Notation{Count: 2, Sides: 4, Modifier: 2}},
		{input: "1d6-1", expected: dice.Notation{Count: 1, Sides: 6, Modifier: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := dice.ParseNotation(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestParseNotation_Invalid(t *testing.T) {
	for _, input := range []string{"", "2d", "0d6", "2d0", "d", "2x6", "2d6+", "1d6*2", "101d6", "1d1001"} {
		t.Run(input, func(t *testing.T) {
			_, err := dice.ParseNotation(input)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestNotationString(t *testing.T) {
	assert.Equal(t, "1d6-1", dice.Notation{Count: 1, Sides: 6, Modifier: -1}.String())
	assert.Equal(t, "4d4+4", dice.Notation{Count: 4, Sides: 4, Modifier: 4}.String())
}

func TestDefaultRollerStaysInRange(t *testing.T) {
	r := dice.New(nil)
	for i := 0; i < 200; i++ {
		v, err := r.RollDie(6)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 6)
	}
}
