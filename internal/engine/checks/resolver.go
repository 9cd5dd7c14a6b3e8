// Package checks resolves d20 skill checks against a difficulty class.
package checks

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-combat/internal/engine/dice"
	"github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Resolver performs skill checks with a dice roller
type Resolver struct {
	roller *dice.Roller
}

// NewResolver creates a resolver
func NewResolver(roller *dice.Roller) *Resolver {
	if roller == nil {
		roller = dice.New(nil)
	}
	return &Resolver{roller: roller}
}

// CheckInput describes one check to resolve
type CheckInput struct {
	Combatant     *combat.Combatant
	CheckType     combat.CheckType
	Circumstances []string
	// DC overrides the base DC of the check type when above 0
	DC int
}

// PerformSkillCheck rolls exactly one d20 and resolves the check
func (r *Resolver) PerformSkillCheck(input CheckInput) (*combat.SkillCheckResult, error) {
	if _, ok := Lookup(input.CheckType); !ok {
		return nil, errors.InvalidArgumentf("unknown check type: %s", input.CheckType)
	}
	if input.Combatant == nil {
		return nil, errors.InvalidArgument("combatant is required")
	}

	roll, err := r.roller.RollDie(dice.D20)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll check")
	}

	return Resolve(input, roll)
}

// Resolve computes a check result from a given d20 roll.
// The same input and roll always produce an identical result.
func Resolve(input CheckInput, roll int) (*combat.SkillCheckResult, error) {
	def, ok := Lookup(input.CheckType)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown check type: %s", input.CheckType)
	}
	if input.Combatant == nil {
		return nil, errors.InvalidArgument("combatant is required")
	}
	if roll < 1 || roll > dice.D20 {
		return nil, errors.InvalidArgumentf("d20 roll must be between 1 and 20, got %d", roll)
	}

	c := input.Combatant
	primaryMod := c.Modifier(def.Primary)
	secondaryMod := c.Modifier(def.Secondary)

	proficiency := 0
	if c.IsProficient(input.CheckType) {
		proficiency = combat.ProficiencyBonus(c.Level)
	}

	circumstances := NormalizeCircumstances(input.Circumstances)
	circumstanceMod := 0
	for _, key := range circumstances {
		circumstanceMod += CircumstanceModifier(key)
	}

	dc := def.BaseDC
	if input.DC > 0 {
		dc = input.DC
	}

	total := roll + primaryMod + proficiency + circumstanceMod
	success := total >= dc
	margin := total - dc

	return &combat.SkillCheckResult{
		CheckType:            input.CheckType,
		Roll:                 roll,
		Total:                total,
		DC:                   dc,
		PrimaryAbility:       def.Primary,
		SecondaryAbility:     def.Secondary,
		PrimaryModifier:      primaryMod,
		SecondaryModifier:    secondaryMod,
		ProficiencyModifier:  proficiency,
		CircumstanceModifier: circumstanceMod,
		Circumstances:        circumstances,
		Success:              success,
		Margin:               margin,
		Degree:               combat.DegreeFor(success, margin),
	}, nil
}

// NormalizeCircumstances lower-cases, de-duplicates and sorts circumstance keys.
// Spaces and dashes become underscores so "high ground" matches "high_ground".
func NormalizeCircumstances(circumstances []string) []string {
	seen := make(map[string]bool, len(circumstances))
	var out []string
	for _, c := range circumstances {
		key := strings.ToLower(strings.TrimSpace(c))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
