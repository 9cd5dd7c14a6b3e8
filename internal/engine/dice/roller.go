// Package dice is the dice primitive of the combat engine: single dice,
// advantage and disadvantage pairs, and "NdM+K" notation.
package dice

import (
	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// D20 is the die used for checks, initiative and attack rolls
const D20 = 20

// Result is the outcome of rolling a notation
type Result struct {
	Notation string
	Dice     []int
	Modifier int
	Total    int
}

// PairResult is an advantage or disadvantage roll with both raw dice
type PairResult struct {
	Rolls [2]int
	Kept  int
}

// Roller rolls dice from an rpg-toolkit randomness source
type Roller struct {
	source toolkitdice.Roller
}

// New creates a roller. A nil source uses the crypto-backed toolkit default.
func New(source toolkitdice.Roller) *Roller {
	if source == nil {
		source = toolkitdice.DefaultRoller
	}
	return &Roller{source: source}
}

// RollDie returns a uniform value in [1, sides]
func (r *Roller) RollDie(sides int) (int, error) {
	if sides < 1 {
		return 0, errors.InvalidArgumentf("die must have at least one side, got %d", sides)
	}

	v, err := r.source.Roll(sides)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll d%d", sides)
	}
	if v < 1 || v > sides {
		return 0, errors.Internalf("roller returned %d for a d%d", v, sides)
	}
	return v, nil
}

// RollWithAdvantage rolls two d20 and keeps the higher
func (r *Roller) RollWithAdvantage() (PairResult, error) {
	return r.rollPair(func(a, b int) int {
		if a >= b {
			return a
		}
		return b
	})
}

// RollWithDisadvantage rolls two d20 and keeps the lower
func (r *Roller) RollWithDisadvantage() (PairResult, error) {
	return r.rollPair(func(a, b int) int {
		if a <= b {
			return a
		}
		return b
	})
}

func (r *Roller) rollPair(keep func(a, b int) int) (PairResult, error) {
	first, err := r.RollDie(D20)
	if err != nil {
		return PairResult{}, err
	}
	second, err := r.RollDie(D20)
	if err != nil {
		return PairResult{}, err
	}
	return PairResult{Rolls: [2]int{first, second}, Kept: keep(first, second)}, nil
}

// Roll parses and rolls a notation
func (r *Roller) Roll(notation string) (*Result, error) {
	n, err := ParseNotation(notation)
	if err != nil {
		return nil, err
	}
	return r.RollParsed(n)
}

// RollParsed rolls an already parsed notation
func (r *Roller) RollParsed(n Notation) (*Result, error) {
	result := &Result{
		Notation: n.String(),
		Dice:     make([]int, 0, n.Count),
		Modifier: n.Modifier,
		Total:    n.Modifier,
	}
	for i := 0; i < n.Count; i++ {
		v, err := r.RollDie(n.Sides)
		if err != nil {
			return nil, err
		}
		result.Dice = append(result.Dice, v)
		result.Total += v
	}
	return result, nil
}

// RollDice returns only the total of a notation
func (r *Roller) RollDice(notation string) (int, error) {
	result, err := r.Roll(notation)
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}
