// Package adversary picks the action of an adversary each turn using a fixed
// priority of rules.
package adversary

import (
	"github.com/KirkDiggler/rpg-combat/internal/engine/dice"
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// HP thresholds as fractions of MaxHP
const (
	HealerThreshold    = 0.4
	LowHealthThreshold = 0.3
	WoundedThreshold   = 0.5
)

// Decider chooses adversary actions
type Decider struct {
	roller *dice.Roller
}

// New creates a decider. Uniform target choice uses the roller.
func New(roller *dice.Roller) *Decider {
	if roller == nil {
		roller = dice.New(nil)
	}
	return &Decider{roller: roller}
}

// ChooseAction returns the request the adversary should execute.
// Rules in order: archetype behavior, low health guard, coordinated area
// spell, then attack with a random fallback and finally defend.
func (d *Decider) ChooseAction(adv *entities.Combatant, s *entities.Session) (entities.ActionRequest, error) {
	if adv == nil || s == nil {
		return entities.ActionRequest{}, errors.InvalidArgument("adversary and session are required")
	}

	targets := s.Living(entities.FactionParty)
	if len(targets) == 0 {
		return defend(adv), nil
	}

	if req, ok, err := d.archetypeRule(adv, targets); err != nil || ok {
		return req, err
	}

	if adv.HPRatio() < LowHealthThreshold {
		if req, ok := healWithItem(adv); ok {
			return req, nil
		}
		return defend(adv), nil
	}

	if !adv.IsOnCooldown(entities.ActionSpell) && woundedAllies(s) > 1 {
		target, err := d.pick(targets)
		if err != nil {
			return entities.ActionRequest{}, err
		}
		return entities.ActionRequest{
			Type:     entities.ActionSpell,
			ActorID:  adv.ID,
			TargetID: target.ID,
			Extra:    map[string]string{entities.ExtraSpell: entities.SpellFireball},
		}, nil
	}

	if !adv.IsOnCooldown(entities.ActionAttack) {
		target, err := d.pick(targets)
		if err != nil {
			return entities.ActionRequest{}, err
		}
		return entities.ActionRequest{Type: entities.ActionAttack, ActorID: adv.ID, TargetID: target.ID}, nil
	}

	return d.fallback(adv, s, targets)
}

func (d *Decider) archetypeRule(adv *entities.Combatant, targets []*entities.Combatant) (entities.ActionRequest, bool, error) {
	caps := adv.Archetype.Capabilities()

	switch caps.Role {
	case entities.RoleHealer:
		if adv.HPRatio() >= HealerThreshold {
			return entities.ActionRequest{}, false, nil
		}
		if !adv.IsOnCooldown(entities.ActionSpell) {
			return entities.ActionRequest{
				Type:     entities.ActionSpell,
				ActorID:  adv.ID,
				TargetID: adv.ID,
				Extra:    map[string]string{entities.ExtraSpell: entities.SpellHeal},
			}, true, nil
		}
		req, ok := healWithItem(adv)
		return req, ok, nil

	case entities.RoleCaster:
		if adv.IsOnCooldown(entities.ActionSpell) {
			return entities.ActionRequest{}, false, nil
		}
		target, err := d.pick(targets)
		if err != nil {
			return entities.ActionRequest{}, false, err
		}
		return entities.ActionRequest{
			Type:     entities.ActionSpell,
			ActorID:  adv.ID,
			TargetID: target.ID,
			Extra:    map[string]string{entities.ExtraSpell: caps.DefaultSpell},
		}, true, nil

	case entities.RoleHeavy:
		if adv.IsOnCooldown(entities.ActionSpecial) {
			return entities.ActionRequest{}, false, nil
		}
		target, err := d.pick(targets)
		if err != nil {
			return entities.ActionRequest{}, false, err
		}
		return entities.ActionRequest{Type: entities.ActionSpecial, ActorID: adv.ID, TargetID: target.ID}, true, nil
	}

	return entities.ActionRequest{}, false, nil
}

// fallback picks uniformly among the other available actions
func (d *Decider) fallback(adv *entities.Combatant, s *entities.Session, targets []*entities.Combatant) (entities.ActionRequest, error) {
	var options []entities.ActionType
	if !adv.IsOnCooldown(entities.ActionSpell) {
		options = append(options, entities.ActionSpell)
	}
	if !adv.IsOnCooldown(entities.ActionSpecial) {
		options = append(options, entities.ActionSpecial)
	}
	if _, ok := healWithItem(adv); ok {
		options = append(options, entities.ActionItem)
	}
	if !adv.IsOnCooldown(entities.ActionEnvironmental) && len(s.EnvironmentalFeatures) > 0 {
		options = append(options, entities.ActionEnvironmental)
	}
	if len(options) == 0 {
		return defend(adv), nil
	}

	idx, err := d.index(len(options))
	if err != nil {
		return entities.ActionRequest{}, err
	}

	switch options[idx] {
	case entities.ActionItem:
		req, _ := healWithItem(adv)
		return req, nil
	case entities.ActionSpell:
		spell := adv.Archetype.Capabilities().DefaultSpell
		if spell == entities.SpellHeal {
			return entities.ActionRequest{
				Type:     entities.ActionSpell,
				ActorID:  adv.ID,
				TargetID: adv.ID,
				Extra:    map[string]string{entities.ExtraSpell: spell},
			}, nil
		}
		target, err := d.pick(targets)
		if err != nil {
			return entities.ActionRequest{}, err
		}
		return entities.ActionRequest{
			Type:     entities.ActionSpell,
			ActorID:  adv.ID,
			TargetID: target.ID,
			Extra:    map[string]string{entities.ExtraSpell: spell},
		}, nil
	case entities.ActionEnvironmental:
		target, err := d.pick(targets)
		if err != nil {
			return entities.ActionRequest{}, err
		}
		return entities.ActionRequest{
			Type:     entities.ActionEnvironmental,
			ActorID:  adv.ID,
			TargetID: target.ID,
			Extra:    map[string]string{entities.ExtraFeature: s.EnvironmentalFeatures[0]},
		}, nil
	default:
		target, err := d.pick(targets)
		if err != nil {
			return entities.ActionRequest{}, err
		}
		return entities.ActionRequest{Type: options[idx], ActorID: adv.ID, TargetID: target.ID}, nil
	}
}

func (d *Decider) pick(targets []*entities.Combatant) (*entities.Combatant, error) {
	idx, err := d.index(len(targets))
	if err != nil {
		return nil, err
	}
	return targets[idx], nil
}

// index returns a uniform index in [0, n)
func (d *Decider) index(n int) (int, error) {
	if n == 1 {
		return 0, nil
	}
	roll, err := d.roller.RollDie(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to choose uniformly")
	}
	return roll - 1, nil
}

func healWithItem(adv *entities.Combatant) (entities.ActionRequest, bool) {
	if adv.IsOnCooldown(entities.ActionItem) {
		return entities.ActionRequest{}, false
	}
	item, ok := adv.HealingItem()
	if !ok {
		return entities.ActionRequest{}, false
	}
	return entities.ActionRequest{
		Type:     entities.ActionItem,
		ActorID:  adv.ID,
		TargetID: adv.ID,
		Extra:    map[string]string{entities.ExtraItem: item},
	}, true
}

func defend(adv *entities.Combatant) entities.ActionRequest {
	return entities.ActionRequest{Type: entities.ActionDefend, ActorID: adv.ID}
}

func woundedAllies(s *entities.Session) int {
	n := 0
	for _, c := range s.Living(entities.FactionAdversary) {
		if c.HPRatio() < WoundedThreshold {
			n++
		}
	}
	return n
}
