// Package calculations computes damage and healing for each combat action.
// Results depend only on the combatant, the request extras and the dice.
package calculations

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-combat/internal/engine/dice"
	"github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Adversary scaling per level above 1, in tenths
const (
	physicalScalingTenths = 3
	spellScalingTenths    = 4
)

// TeamUpPartnerBonus is the flat damage added per coordinating partner
const TeamUpPartnerBonus = 3

// Result is the magnitude of one action before it is applied to a session
type Result struct {
	Damage   int
	Healing  int
	Critical bool
	Area     bool
	Cleanse  bool
	// Effect is applied to the target
	Effect *combat.StatusEffect
	// Source is the spell, item, feature or weapon that produced the result
	Source string
	Rolls  []combat.RollRecord
}

// Calculator computes action results with a dice roller
type Calculator struct {
	roller *dice.Roller
}

// New creates a calculator
func New(roller *dice.Roller) *Calculator {
	if roller == nil {
		roller = dice.New(nil)
	}
	return &Calculator{roller: roller}
}

// LevelBonus is the flat per-level bonus, floor(level / 2)
func LevelBonus(level int) int {
	if level < 1 {
		return 0
	}
	return level / 2
}

// Attack computes weapon damage
func (c *Calculator) Attack(actor *combat.Combatant) (*Result, error) {
	caps := actor.Archetype.Capabilities()
	weapon, _ := actor.Equipped(combat.SlotWeapon)
	notation := weapon.Dice
	if notation == "" {
		notation = caps.DefaultWeaponDice
	}

	result := &Result{Source: weapon.Name}
	if result.Source == "" {
		result.Source = "unarmed"
	}

	attackRoll, err := c.roll(result, "attack roll", "1d20")
	if err != nil {
		return nil, err
	}
	damage, err := c.roll(result, "weapon damage", notation)
	if err != nil {
		return nil, err
	}

	total := damage + actor.Modifier(combat.Strength) + LevelBonus(actor.Level) + weapon.Bonus
	if caps.Finesse {
		total += actor.Modifier(combat.Dexterity)
	}
	total = atLeastOne(total)

	if attackRoll == dice.D20 {
		result.Critical = true
		total *= 2
	}

	result.Damage = atLeastOne(scale(actor, total, physicalScalingTenths))
	return result, nil
}

// Spell computes spell damage or healing.
// Recognized extras: spell (sub-type, defaults to the archetype spell) and tier (default 1).
func (c *Calculator) Spell(actor *combat.Combatant, extra map[string]string) (*Result, error) {
	caps := actor.Archetype.Capabilities()
	name := strings.ToLower(strings.TrimSpace(extra[combat.ExtraSpell]))
	if name == "" {
		name = caps.DefaultSpell
	}
	profile, ok := Spell(name)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown spell: %s", name)
	}

	tier := 1
	if raw := strings.TrimSpace(extra[combat.ExtraTier]); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 9 {
			return nil, errors.InvalidArgumentf("spell tier must be between 1 and 9, got %q", raw)
		}
		tier = parsed
	}

	result := &Result{Source: name, Area: profile.Area, Effect: cloneEffect(profile.Effect)}

	checkRoll, err := c.roll(result, "spell check", "1d20")
	if err != nil {
		return nil, err
	}
	base, err := c.roll(result, "spell dice", profile.Dice)
	if err != nil {
		return nil, err
	}

	total := base +
		actor.Modifier(caps.CastingAbility) +
		2*tier +
		actor.EquipmentBonus(combat.SlotFocus) +
		LevelBonus(actor.Level)
	total = atLeastOne(total)

	if checkRoll >= 19 {
		result.Critical = true
		total = total * 3 / 2
	}

	if profile.Healing {
		result.Healing = total
		return result, nil
	}

	result.Damage = atLeastOne(scale(actor, total, spellScalingTenths))
	return result, nil
}

// Special computes the archetype special action
func (c *Calculator) Special(actor *combat.Combatant) (*Result, error) {
	caps := actor.Archetype.Capabilities()
	result := &Result{Source: string(actor.Archetype), Effect: cloneEffect(caps.SpecialEffect)}

	base, err := c.roll(result, "special dice", caps.SpecialDice)
	if err != nil {
		return nil, err
	}

	total := base +
		actor.Modifier(caps.SpecialAbility) +
		LevelBonus(actor.Level) +
		actor.EquipmentBonus(combat.SlotWeapon)

	result.Damage = atLeastOne(scale(actor, atLeastOne(total), physicalScalingTenths))
	return result, nil
}

// Item computes the effect of using an item
func (c *Calculator) Item(item string) (*Result, error) {
	name := strings.ToLower(strings.TrimSpace(item))
	profile, ok := Item(name)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown item: %s", item)
	}

	result := &Result{Source: name, Cleanse: profile.Cleanse}
	if profile.Dice == "" {
		return result, nil
	}

	total, err := c.roll(result, "item", profile.Dice)
	if err != nil {
		return nil, err
	}
	if profile.Healing {
		result.Healing = atLeastOne(total)
	} else {
		result.Damage = atLeastOne(total)
	}
	return result, nil
}

// TeamUp computes a coordinated attack with the given number of partners
func (c *Calculator) TeamUp(actor *combat.Combatant, partners int) (*Result, error) {
	if partners < 0 {
		return nil, errors.InvalidArgumentf("partner count cannot be negative: %d", partners)
	}
	result := &Result{Source: "team-up"}

	base, err := c.roll(result, "team-up", "1d8")
	if err != nil {
		return nil, err
	}

	best := actor.Modifier(combat.Strength)
	if dex := actor.Modifier(combat.Dexterity); dex > best {
		best = dex
	}

	result.Damage = atLeastOne(base + best + TeamUpPartnerBonus*partners)
	return result, nil
}

// Environmental computes damage from using a feature of the surroundings
func (c *Calculator) Environmental(actor *combat.Combatant, feature string) (*Result, error) {
	name := strings.ToLower(strings.TrimSpace(feature))
	notation, effect := featureFor(name)
	result := &Result{Source: name, Effect: cloneEffect(effect)}

	base, err := c.roll(result, "environment", notation)
	if err != nil {
		return nil, err
	}

	result.Damage = atLeastOne(base + actor.Modifier(combat.Dexterity) + LevelBonus(actor.Level))
	return result, nil
}

func (c *Calculator) roll(result *Result, purpose, notation string) (int, error) {
	rolled, err := c.roller.Roll(notation)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %s", purpose)
	}
	result.Rolls = append(result.Rolls, combat.RollRecord{
		Purpose:  purpose,
		Notation: rolled.Notation,
		Dice:     rolled.Dice,
		Modifier: rolled.Modifier,
		Total:    rolled.Total,
	})
	return rolled.Total, nil
}

// scale applies the adversary level multiplier, 1 + tenths/10 per level above 1, floored.
func scale(actor *combat.Combatant, total, tenths int) int {
	if actor.Faction != combat.FactionAdversary || actor.Level <= 1 {
		return total
	}
	return total * (10 + tenths*(actor.Level-1)) / 10
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func cloneEffect(e *combat.StatusEffect) *combat.StatusEffect {
	if e == nil {
		return nil
	}
	out := *e
	return &out
}
