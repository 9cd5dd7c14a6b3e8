package combat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-combat/internal/engine/calculations"
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
)

var attackVerbs = map[entities.Archetype]string{
	entities.ArchetypeFighter:    "slashes at",
	entities.ArchetypeBarbarian:  "cleaves into",
	entities.ArchetypePaladin:    "smites",
	entities.ArchetypeRanger:     "looses an arrow at",
	entities.ArchetypeRogue:      "stabs",
	entities.ArchetypeMonk:       "strikes",
	entities.ArchetypeBrute:      "pummels",
	entities.ArchetypeSkirmisher: "darts in at",
	entities.ArchetypeBoss:       "crushes",
}

func narrate(p *plan, req entities.ActionRequest, result *calculations.Result, outcome *entities.Outcome) string {
	actor := p.actor.Name
	target := ""
	if p.target != nil {
		target = p.target.Name
	}

	var b strings.Builder
	switch req.Type {
	case entities.ActionAttack:
		verb, ok := attackVerbs[p.actor.Archetype]
		if !ok {
			verb = "attacks"
		}
		fmt.Fprintf(&b, "%s %s %s for %d damage", actor, verb, target, outcome.Damage)
	case entities.ActionSpell:
		if profile, _ := calculations.Spell(result.Source); profile.Healing {
			fmt.Fprintf(&b, "%s casts %s on %s, restoring %d HP", actor, result.Source, target, outcome.Healing)
		} else {
			fmt.Fprintf(&b, "%s casts %s at %s for %d damage", actor, result.Source, target, outcome.Damage)
		}
	case entities.ActionSpecial:
		fmt.Fprintf(&b, "%s unleashes a special technique on %s for %d damage", actor, target, outcome.Damage)
	case entities.ActionItem:
		switch {
		case outcome.Healing > 0:
			fmt.Fprintf(&b, "%s uses a %s on %s, restoring %d HP", actor, result.Source, target, outcome.Healing)
		case result.Cleanse:
			fmt.Fprintf(&b, "%s uses an %s on %s", actor, result.Source, target)
		default:
			fmt.Fprintf(&b, "%s throws a %s at %s for %d damage", actor, result.Source, target, outcome.Damage)
		}
	case entities.ActionTeamUp:
		names := make([]string, 0, len(p.partners))
		for _, partner := range p.partners {
			names = append(names, partner.Name)
		}
		fmt.Fprintf(&b, "%s and %s strike %s together for %d damage", actor, strings.Join(names, " and "), target, outcome.Damage)
	case entities.ActionEnvironmental:
		source := result.Source
		if source == "" {
			source = "the surroundings"
		}
		fmt.Fprintf(&b, "%s turns %s against %s for %d damage", actor, source, target, outcome.Damage)
	case entities.ActionDefend:
		fmt.Fprintf(&b, "%s takes a defensive stance", actor)
	}

	if outcome.Critical {
		b.WriteString(" (critical!)")
	}
	if len(outcome.Splash) > 0 {
		ids := make([]string, 0, len(outcome.Splash))
		for id := range outcome.Splash {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf("%s %d", id, outcome.Splash[id]))
		}
		fmt.Fprintf(&b, ", splashing %s", strings.Join(parts, ", "))
	}
	for _, effect := range outcome.AppliedEffects {
		if effect.Kind == entities.StatusDefending {
			continue
		}
		fmt.Fprintf(&b, "; %s is %s", target, effect.Kind)
	}
	if len(outcome.RemovedEffects) > 0 {
		kinds := make([]string, 0, len(outcome.RemovedEffects))
		for _, k := range outcome.RemovedEffects {
			kinds = append(kinds, string(k))
		}
		fmt.Fprintf(&b, "; cured of %s", strings.Join(kinds, ", "))
	}
	if p.target != nil && p.target != p.actor && !p.target.IsAlive() {
		fmt.Fprintf(&b, "; %s falls", target)
	}
	b.WriteString(".")
	return b.String()
}
