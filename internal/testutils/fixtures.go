package testutils

import (
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
)

// Hero returns a normalized party member record
func Hero(id, class string, hp int) entities.CombatantRecord {
	return entities.CombatantRecord{
		ID:    id,
		Name:  id,
		Class: class,
		HP:    &hp,
		MaxHP: &hp,
	}
}

// Foe returns an adversary record with the given current and max HP
func Foe(id, class string, hp, maxHP int) entities.CombatantRecord {
	return entities.CombatantRecord{
		ID:    id,
		Name:  id,
		Class: class,
		HP:    &hp,
		MaxHP: &maxHP,
	}
}

// WithItems adds consumables to a record
func WithItems(r entities.CombatantRecord, items map[string]int) entities.CombatantRecord {
	r.Items = items
	return r
}

// Session builds an active session directly from records, skipping initiative.
// Party members act first in the order given.
func Session(id string, party, adversaries []entities.CombatantRecord) *entities.Session {
	s := &entities.Session{
		ID:                    id,
		State:                 entities.StateActive,
		Round:                 1,
		MaxRounds:             entities.DefaultMaxRounds,
		EnvironmentalFeatures: []string{},
		TeamUpOpportunities:   []string{},
	}
	for i, r := range party {
		s.Combatants = append(s.Combatants, entities.NormalizeCombatant(r, entities.FactionParty, i))
	}
	for i, r := range adversaries {
		s.Combatants = append(s.Combatants, entities.NormalizeCombatant(r, entities.FactionAdversary, i))
	}
	return s
}
