// Package combat holds the combat data model: combatants, archetypes, status
// effects, actions, skill-check results and sessions.
package combat

// Ability names one of the six ability scores
type Ability string

// Abilities
const (
	Strength     Ability = "strength"
	Dexterity    Ability = "dexterity"
	Constitution Ability = "constitution"
	Intelligence Ability = "intelligence"
	Wisdom       Ability = "wisdom"
	Charisma     Ability = "charisma"
)

// Ability score bounds applied at normalization
const (
	DefaultAbilityScore = 10
	MinAbilityScore     = 1
	MaxAbilityScore     = 30
)

// AbilityScores holds the six ability scores of a combatant
type AbilityScores struct {
	Strength     int `json:"strength" yaml:"strength"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Constitution int `json:"constitution" yaml:"constitution"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`
}

// Score returns the score for an ability
func (a AbilityScores) Score(ability Ability) int {
	switch ability {
	case Strength:
		return a.Strength
	case Dexterity:
		return a.Dexterity
	case Constitution:
		return a.Constitution
	case Intelligence:
		return a.Intelligence
	case Wisdom:
		return a.Wisdom
	case Charisma:
		return a.Charisma
	default:
		return DefaultAbilityScore
	}
}

// Modifier returns the modifier for an ability
func (a AbilityScores) Modifier(ability Ability) int {
	return AbilityModifier(a.Score(ability))
}

// AbilityModifier returns floor((score - 10) / 2).
// Go truncates toward zero, so odd scores below 10 need the extra step down.
func AbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 && diff%2 != 0 {
		return diff/2 - 1
	}
	return diff / 2
}

// ProficiencyBonus returns floor((level - 1) / 4) + 2 for levels >= 1
func ProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	return (level-1)/4 + 2
}
