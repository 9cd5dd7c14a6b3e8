package combat

import "strings"

// Archetype is the class or role tag of a combatant
type Archetype string

// Party archetypes
const (
	ArchetypeFighter   Archetype = "fighter"
	ArchetypeBarbarian Archetype = "barbarian"
	ArchetypePaladin   Archetype = "paladin"
	ArchetypeRanger    Archetype = "ranger"
	ArchetypeRogue     Archetype = "rogue"
	ArchetypeMonk      Archetype = "monk"
	ArchetypeWizard    Archetype = "wizard"
	ArchetypeSorcerer  Archetype = "sorcerer"
	ArchetypeWarlock   Archetype = "warlock"
	ArchetypeCleric    Archetype = "cleric"
	ArchetypeDruid     Archetype = "druid"
	ArchetypeBard      Archetype = "bard"
)

// Adversary archetypes
const (
	ArchetypeBrute      Archetype = "brute"
	ArchetypeSkirmisher Archetype = "skirmisher"
	ArchetypeCaster     Archetype = "caster"
	ArchetypeHealer     Archetype = "healer"
	ArchetypeBoss       Archetype = "boss"
)

// ArchetypeCommoner is the fallback for unknown class names
const ArchetypeCommoner Archetype = "commoner"

// Role drives the adversary decision heuristics
type Role string

// Roles
const (
	RoleNone   Role = "none"
	RoleHealer Role = "healer"
	RoleCaster Role = "caster"
	RoleHeavy  Role = "heavy"
)

// Capabilities is the behavior record attached to an archetype
type Capabilities struct {
	Proficiencies     []CheckType
	CastingAbility    Ability
	Finesse           bool
	Role              Role
	DefaultWeaponDice string
	SpecialDice       string
	SpecialAbility    Ability
	SpecialEffect     *StatusEffect
	DefaultSpell      string
}

var archetypeCapabilities = map[Archetype]Capabilities{
	ArchetypeFighter: {
		Proficiencies:     []CheckType{CheckAttack, CheckClimb, CheckJump, CheckSwim, CheckForce, CheckIntimidate, CheckEndure},
		CastingAbility:    Intelligence,
		Role:              RoleNone,
		DefaultWeaponDice: "1d10",
		SpecialDice:       "2d8",
		SpecialAbility:    Strength,
		DefaultSpell:      SpellFirebolt,
	},
	ArchetypeBarbarian: {
		Proficiencies:     []CheckType{CheckAttack, CheckForce, CheckJump, CheckIntimidate, CheckSurvive, CheckEndure},
		CastingAbility:    Intelligence,
		Role:              RoleHeavy,
		DefaultWeaponDice: "1d12",
		SpecialDice:       "2d10",
		SpecialAbility:    Strength,
		DefaultSpell:      SpellFirebolt,
	},
	ArchetypePaladin: {
		Proficiencies:     []CheckType{CheckAttack, CheckPersuade, CheckIntimidate, CheckHeal, CheckEndure},
		CastingAbility:    Wisdom,
		Role:              RoleNone,
		DefaultWeaponDice: "1d8",
		SpecialDice:       "2d8",
		SpecialAbility:    Charisma,
		DefaultSpell:      SpellHeal,
	},
	ArchetypeRanger: {
		Proficiencies:     []CheckType{CheckAttack, CheckSneak, CheckSurvive, CheckSearch, CheckClimb},
		CastingAbility:    Wisdom,
		Finesse:           true,
		Role:              RoleNone,
		DefaultWeaponDice: "1d8",
		SpecialDice:       "2d6",
		SpecialAbility:    Dexterity,
		SpecialEffect:     &StatusEffect{Kind: StatusPoisoned, Duration: 2},
		DefaultSpell:      SpellPoisonSpray,
	},
	ArchetypeRogue: {
		Proficiencies:     []CheckType{CheckAttack, CheckSneak, CheckSleight, CheckTumble, CheckDeceive, CheckSearch, CheckInvestigate},
		CastingAbility:    Intelligence,
		Finesse:           true,
		Role:              RoleNone,
		DefaultWeaponDice: "1d6",
		SpecialDice:       "3d6",
		SpecialAbility:    Dexterity,
		SpecialEffect:     &StatusEffect{Kind: StatusPoisoned, Duration: 3},
		DefaultSpell:      SpellMagicMissile,
	},
	ArchetypeMonk: {
		Proficiencies:     []CheckType{CheckAttack, CheckTumble, CheckJump, CheckClimb, CheckInsight},
		CastingAbility:    Wisdom,
		Finesse:           true,
		Role:              RoleNone,
		DefaultWeaponDice: "1d6",
		SpecialDice:       "2d6",
		SpecialAbility:    Dexterity,
		SpecialEffect:     &StatusEffect{Kind: StatusParalyzed, Duration: 1},
		DefaultSpell:      SpellMagicMissile,
	},
	ArchetypeWizard: {
		Proficiencies:     []CheckType{CheckCast, CheckRecall, CheckInvestigate},
		CastingAbility:    Intelligence,
		Role:              RoleCaster,
		DefaultWeaponDice: "1d4",
		SpecialDice:       "2d6",
		SpecialAbility:    Intelligence,
		SpecialEffect:     &StatusEffect{Kind: StatusFrozen, Duration: 1},
		DefaultSpell:      SpellFirebolt,
	},
	ArchetypeSorcerer: {
		Proficiencies:     []CheckType{CheckCast, CheckRecall, CheckDeceive, CheckPersuade},
		CastingAbility:    Charisma,
		Role:              RoleCaster,
		DefaultWeaponDice: "1d4",
		SpecialDice:       "2d8",
		SpecialAbility:    Charisma,
		SpecialEffect:     &StatusEffect{Kind: StatusBurning, Duration: 2},
		DefaultSpell:      SpellLightning,
	},
	ArchetypeWarlock: {
		Proficiencies:     []CheckType{CheckCast, CheckDeceive, CheckIntimidate, CheckRecall},
		CastingAbility:    Charisma,
		Role:              RoleCaster,
		DefaultWeaponDice: "1d4",
		SpecialDice:       "2d8",
		SpecialAbility:    Charisma,
		DefaultSpell:      SpellMagicMissile,
	},
	ArchetypeCleric: {
		Proficiencies:     []CheckType{CheckCast, CheckHeal, CheckInsight, CheckPersuade, CheckRecall},
		CastingAbility:    Wisdom,
		Role:              RoleHealer,
		DefaultWeaponDice: "1d6",
		SpecialDice:       "2d8",
		SpecialAbility:    Wisdom,
		DefaultSpell:      SpellHeal,
	},
	ArchetypeDruid: {
		Proficiencies:     []CheckType{CheckCast, CheckHeal, CheckSurvive, CheckSearch},
		CastingAbility:    Wisdom,
		Role:              RoleHealer,
		DefaultWeaponDice: "1d6",
		SpecialDice:       "2d6",
		SpecialAbility:    Wisdom,
		SpecialEffect:     &StatusEffect{Kind: StatusPoisoned, Duration: 2},
		DefaultSpell:      SpellHeal,
	},
	ArchetypeBard: {
		Proficiencies:     []CheckType{CheckPerform, CheckPersuade, CheckDeceive, CheckSleight, CheckCast},
		CastingAbility:    Charisma,
		Role:              RoleNone,
		DefaultWeaponDice: "1d6",
		SpecialDice:       "2d6",
		SpecialAbility:    Charisma,
		SpecialEffect:     &StatusEffect{Kind: StatusParalyzed, Duration: 1},
		DefaultSpell:      SpellMagicMissile,
	},
	ArchetypeBrute: {
		Proficiencies:     []CheckType{CheckAttack, CheckForce, CheckIntimidate, CheckEndure},
		CastingAbility:    Intelligence,
		Role:              RoleHeavy,
		DefaultWeaponDice: "1d10",
		SpecialDice:       "2d10",
		SpecialAbility:    Strength,
		DefaultSpell:      SpellFirebolt,
	},
	ArchetypeSkirmisher: {
		Proficiencies:     []CheckType{CheckAttack, CheckSneak, CheckTumble},
		CastingAbility:    Intelligence,
		Finesse:           true,
		Role:              RoleNone,
		DefaultWeaponDice: "1d6",
		SpecialDice:       "2d6",
		SpecialAbility:    Dexterity,
		SpecialEffect:     &StatusEffect{Kind: StatusPoisoned, Duration: 2},
		DefaultSpell:      SpellMagicMissile,
	},
	ArchetypeCaster: {
		Proficiencies:     []CheckType{CheckCast, CheckRecall},
		CastingAbility:    Intelligence,
		Role:              RoleCaster,
		DefaultWeaponDice: "1d4",
		SpecialDice:       "2d8",
		SpecialAbility:    Intelligence,
		SpecialEffect:     &StatusEffect{Kind: StatusBurning, Duration: 2},
		DefaultSpell:      SpellFirebolt,
	},
	ArchetypeHealer: {
		Proficiencies:     []CheckType{CheckCast, CheckHeal},
		CastingAbility:    Wisdom,
		Role:              RoleHealer,
		DefaultWeaponDice: "1d6",
		SpecialDice:       "2d6",
		SpecialAbility:    Wisdom,
		DefaultSpell:      SpellHeal,
	},
	ArchetypeBoss: {
		Proficiencies:     []CheckType{CheckAttack, CheckIntimidate, CheckEndure, CheckCast},
		CastingAbility:    Charisma,
		Role:              RoleHeavy,
		DefaultWeaponDice: "2d6",
		SpecialDice:       "3d8",
		SpecialAbility:    Strength,
		SpecialEffect:     &StatusEffect{Kind: StatusParalyzed, Duration: 2},
		DefaultSpell:      SpellFireball,
	},
	ArchetypeCommoner: {
		CastingAbility:    Intelligence,
		Role:              RoleNone,
		DefaultWeaponDice: "1d4",
		SpecialDice:       "1d6",
		SpecialAbility:    Strength,
		DefaultSpell:      SpellMagicMissile,
	},
}

var archetypeAliases = map[string]Archetype{
	"warrior":   ArchetypeFighter,
	"soldier":   ArchetypeFighter,
	"knight":    ArchetypePaladin,
	"thief":     ArchetypeRogue,
	"assassin":  ArchetypeRogue,
	"archer":    ArchetypeRanger,
	"hunter":    ArchetypeRanger,
	"mage":      ArchetypeCaster,
	"sorceress": ArchetypeSorcerer,
	"shaman":    ArchetypeDruid,
	"priest":    ArchetypeHealer,
	"acolyte":   ArchetypeHealer,
	"ogre":      ArchetypeBrute,
	"troll":     ArchetypeBrute,
	"goblin":    ArchetypeSkirmisher,
	"bandit":    ArchetypeSkirmisher,
	"dragon":    ArchetypeBoss,
	"warlord":   ArchetypeBoss,
}

// ParseArchetype maps a free-form class name to an archetype.
// ok is false when the name was not recognized and commoner was returned.
func ParseArchetype(name string) (Archetype, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ArchetypeCommoner, false
	}
	if _, found := archetypeCapabilities[Archetype(key)]; found {
		return Archetype(key), true
	}
	if archetype, found := archetypeAliases[key]; found {
		return archetype, true
	}
	return ArchetypeCommoner, false
}

// Capabilities returns the capability record of the archetype
func (a Archetype) Capabilities() Capabilities {
	if caps, ok := archetypeCapabilities[a]; ok {
		return caps
	}
	return archetypeCapabilities[ArchetypeCommoner]
}

// IsProficient reports whether the archetype is proficient in a check
func (a Archetype) IsProficient(check CheckType) bool {
	for _, p := range a.Capabilities().Proficiencies {
		if p == check {
			return true
		}
	}
	return false
}
