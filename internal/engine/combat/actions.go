package combat

import (
	"strings"

	"github.com/KirkDiggler/rpg-combat/internal/engine/calculations"
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

type targetRule int

const (
	targetEnemy targetRule = iota
	targetAlly
	targetSelf
)

// plan is a fully validated action, ready to be applied
type plan struct {
	actor    *entities.Combatant
	target   *entities.Combatant
	partners []*entities.Combatant
	item     string
	feature  string
}

// ExecuteAction validates and applies one action. A rejected action returns an
// error and leaves the session untouched.
func (e *Engine) ExecuteAction(s *entities.Session, req entities.ActionRequest) (*entities.Outcome, error) {
	p, err := e.prepare(s, req)
	if err != nil {
		return nil, err
	}

	result, err := e.calculate(p, req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to calculate "+string(req.Type))
	}

	outcome := &entities.Outcome{
		Action:  req.Type,
		ActorID: p.actor.ID,
		Rolls:   result.Rolls,
	}
	if p.target != nil {
		outcome.TargetID = p.target.ID
	}

	e.apply(s, p, req, result, outcome)

	isCurrent := false
	if current, ok := s.Current(); ok && current.ID == p.actor.ID {
		isCurrent = true
	}

	s.AddLog(p.actor.ID, req.Type, outcome.Narrative)
	if !e.CheckCombatEnd(s).IsTerminal() && isCurrent {
		e.AdvanceTurn(s)
	}

	outcome.State = s.State
	outcome.Cooldowns = copyCooldowns(p.actor.Cooldowns)
	if p.target != nil {
		outcome.TargetHP = p.target.HP
	}
	return outcome, nil
}

func (e *Engine) prepare(s *entities.Session, req entities.ActionRequest) (*plan, error) {
	if s == nil {
		return nil, errors.InvalidArgument("session is required")
	}
	if s.State != entities.StateActive {
		return nil, errors.FailedPreconditionf("combat is not active (state: %s)", s.State)
	}
	if !req.Type.IsValid() {
		return nil, errors.InvalidArgumentf("unknown action type: %s", req.Type)
	}

	actor, ok := s.Combatant(req.ActorID)
	if !ok {
		return nil, errors.NotFoundf("actor not found: %s", req.ActorID)
	}
	if !actor.IsAlive() {
		return nil, errors.FailedPreconditionf("%s has no hit points left", actor.ID)
	}
	if actor.IsOnCooldown(req.Type) {
		return nil, errors.FailedPreconditionf("%s is on cooldown for %d more turns", req.Type, actor.Cooldown(req.Type)).
			WithMeta("cooldown", actor.Cooldown(req.Type))
	}

	p := &plan{actor: actor}

	rule, err := e.targetRuleFor(req, p)
	if err != nil {
		return nil, err
	}

	if rule == targetSelf {
		p.target = actor
	} else {
		target, err := resolveTarget(s, actor, req.TargetID, rule)
		if err != nil {
			return nil, err
		}
		p.target = target
	}

	if req.Type == entities.ActionTeamUp {
		partners, err := resolvePartners(s, actor, req.ExtraValue(entities.ExtraPartners, ""))
		if err != nil {
			return nil, err
		}
		p.partners = partners
	}

	if req.Type == entities.ActionEnvironmental {
		p.feature = req.ExtraValue(entities.ExtraFeature, "")
		if p.feature == "" && len(s.EnvironmentalFeatures) > 0 {
			p.feature = s.EnvironmentalFeatures[0]
		}
	}

	return p, nil
}

func (e *Engine) targetRuleFor(req entities.ActionRequest, p *plan) (targetRule, error) {
	switch req.Type {
	case entities.ActionDefend:
		return targetSelf, nil
	case entities.ActionSpell:
		name := strings.ToLower(req.ExtraValue(entities.ExtraSpell, p.actor.Archetype.Capabilities().DefaultSpell))
		profile, ok := calculations.Spell(name)
		if !ok {
			return 0, errors.InvalidArgumentf("unknown spell: %s", name)
		}
		if profile.Healing {
			return allyOrSelf(req), nil
		}
		return targetEnemy, nil
	case entities.ActionItem:
		item := strings.ToLower(strings.TrimSpace(req.ExtraValue(entities.ExtraItem, "")))
		if item == "" {
			return 0, errors.InvalidArgument("item action requires an item")
		}
		profile, ok := calculations.Item(item)
		if !ok {
			return 0, errors.InvalidArgumentf("unknown item: %s", item)
		}
		if p.actor.ItemCount(item) <= 0 {
			return 0, errors.FailedPreconditionf("%s has no %s", p.actor.ID, item)
		}
		p.item = item
		if profile.Healing || profile.Cleanse {
			return allyOrSelf(req), nil
		}
		return targetEnemy, nil
	default:
		return targetEnemy, nil
	}
}

func allyOrSelf(req entities.ActionRequest) targetRule {
	if req.TargetID == "" || req.TargetID == req.ActorID {
		return targetSelf
	}
	return targetAlly
}

func resolveTarget(s *entities.Session, actor *entities.Combatant, targetID string, rule targetRule) (*entities.Combatant, error) {
	if targetID == "" {
		return nil, errors.InvalidArgument("target is required")
	}
	target, ok := s.Combatant(targetID)
	if !ok {
		return nil, errors.NotFoundf("target not found: %s", targetID)
	}
	if !target.IsAlive() {
		return nil, errors.FailedPreconditionf("%s has no hit points left", target.ID)
	}

	switch rule {
	case targetEnemy:
		if !actor.Faction.Opposes(target.Faction) {
			return nil, errors.InvalidArgumentf("%s cannot target an ally", actor.ID)
		}
	case targetAlly:
		if actor.Faction.Opposes(target.Faction) {
			return nil, errors.InvalidArgumentf("%s can only target allies with this action", actor.ID)
		}
	}
	return target, nil
}

func resolvePartners(s *entities.Session, actor *entities.Combatant, raw string) ([]*entities.Combatant, error) {
	var partners []*entities.Combatant
	seen := make(map[string]bool)
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		partner, ok := s.Combatant(id)
		if !ok {
			return nil, errors.NotFoundf("team-up partner not found: %s", id)
		}
		if partner.ID == actor.ID || actor.Faction.Opposes(partner.Faction) {
			return nil, errors.InvalidArgumentf("%s cannot team up with %s", actor.ID, partner.ID)
		}
		if !partner.IsAlive() {
			return nil, errors.FailedPreconditionf("team-up partner %s has no hit points left", partner.ID)
		}
		partners = append(partners, partner)
	}
	if len(partners) == 0 {
		return nil, errors.InvalidArgument("team-up requires at least one partner")
	}
	return partners, nil
}

func (e *Engine) calculate(p *plan, req entities.ActionRequest) (*calculations.Result, error) {
	switch req.Type {
	case entities.ActionAttack:
		return e.calc.Attack(p.actor)
	case entities.ActionSpell:
		return e.calc.Spell(p.actor, req.Extra)
	case entities.ActionSpecial:
		return e.calc.Special(p.actor)
	case entities.ActionItem:
		return e.calc.Item(p.item)
	case entities.ActionTeamUp:
		return e.calc.TeamUp(p.actor, len(p.partners))
	case entities.ActionEnvironmental:
		return e.calc.Environmental(p.actor, p.feature)
	case entities.ActionDefend:
		return &calculations.Result{Effect: &entities.StatusEffect{Kind: entities.StatusDefending, Duration: 1}}, nil
	default:
		return nil, errors.InvalidArgumentf("unknown action type: %s", req.Type)
	}
}

func (e *Engine) apply(s *entities.Session, p *plan, req entities.ActionRequest, result *calculations.Result, outcome *entities.Outcome) {
	actor, target := p.actor, p.target

	if result.Damage > 0 {
		// damage and splash report HP actually lost, as healing does
		outcome.Damage = target.ApplyDamage(damageAgainst(target, result.Damage))
		outcome.Critical = result.Critical

		if result.Area {
			outcome.Splash = make(map[string]int)
			for _, other := range s.Living(target.Faction) {
				if other.ID == target.ID {
					continue
				}
				outcome.Splash[other.ID] = other.ApplyDamage(damageAgainst(other, result.Damage/2))
			}
		}
	}

	if result.Healing > 0 {
		outcome.Healing = target.ApplyHealing(result.Healing)
		outcome.Critical = result.Critical
	}

	if result.Cleanse {
		outcome.RemovedEffects = target.CleanseNegative()
	}

	if result.Effect != nil && target.IsAlive() {
		target.ApplyStatus(*result.Effect)
		outcome.AppliedEffects = append(outcome.AppliedEffects, *result.Effect)
	}

	if p.item != "" {
		actor.Items[p.item]--
		if actor.Items[p.item] <= 0 {
			delete(actor.Items, p.item)
		}
	}

	for action, remaining := range actor.Cooldowns {
		if action == req.Type {
			continue
		}
		if remaining <= 1 {
			delete(actor.Cooldowns, action)
			continue
		}
		actor.Cooldowns[action] = remaining - 1
	}
	if cd := req.Type.Cooldown(); cd > 0 {
		if actor.Cooldowns == nil {
			actor.Cooldowns = make(map[entities.ActionType]int)
		}
		actor.Cooldowns[req.Type] = cd
	}

	actor.LastAction = req.Type
	actor.TurnsTaken++

	outcome.Narrative = narrate(p, req, result, outcome)
}

// damageAgainst halves damage against a defending combatant, never below 1
func damageAgainst(target *entities.Combatant, damage int) int {
	if damage < 1 {
		damage = 1
	}
	if target.HasStatus(entities.StatusDefending) {
		damage /= 2
		if damage < 1 {
			damage = 1
		}
	}
	return damage
}

func copyCooldowns(in map[entities.ActionType]int) map[entities.ActionType]int {
	out := make(map[entities.ActionType]int, len(in))
	for k, v := range in {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}
