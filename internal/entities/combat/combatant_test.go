package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestParseArchetype(t *testing.T) {
	a, ok := ParseArchetype("Fighter")
	assert.True(t, ok)
	assert.Equal(t, ArchetypeFighter, a)

	a, ok = ParseArchetype(" mage ")
	assert.True(t, ok)
	assert.Equal(t, ArchetypeCaster, a)

	a, ok = ParseArchetype("priest")
	assert.True(t, ok)
	assert.Equal(t, ArchetypeHealer, a)

	a, ok = ParseArchetype("figther")
	assert.False(t, ok)
	assert.Equal(t, ArchetypeCommoner, a)
}

func TestArchetypeCapabilities(t *testing.T) {
	assert.True(t, ArchetypeFighter.IsProficient(CheckAttack))
	assert.False(t, ArchetypeWizard.IsProficient(CheckAttack))
	assert.Equal(t, Intelligence, ArchetypeWizard.Capabilities().CastingAbility)
	assert.Equal(t, Charisma, ArchetypeBard.Capabilities().CastingAbility)
	assert.Equal(t, Wisdom, ArchetypeCleric.Capabilities().CastingAbility)
	assert.True(t, ArchetypeRogue.Capabilities().Finesse)
	assert.Equal(t, RoleHeavy, ArchetypeBoss.Capabilities().Role)
	assert.Equal(t, RoleHealer, ArchetypeHealer.Capabilities().Role)
	assert.Equal(t, RoleCaster, ArchetypeSorcerer.Capabilities().Role)
	assert.Equal(t, RoleNone, Archetype("unknown").Capabilities().Role)
}

func TestNormalizeCombatant_Defaults(t *testing.T) {
	c := NormalizeCombatant(CombatantRecord{}, FactionParty, 0)

	assert.Equal(t, "party-1", c.ID)
	assert.Equal(t, "party-1", c.Name)
	assert.Equal(t, FactionParty, c.Faction)
	assert.Equal(t, ArchetypeCommoner, c.Archetype)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 10, c.HP)
	assert.Equal(t, 10, c.MaxHP)
	assert.Equal(t, 10, c.ArmorClass)
	assert.Equal(t, AbilityScores{10, 10, 10, 10, 10, 10}, c.AbilityScores)
	assert.NotNil(t, c.Cooldowns)
	assert.NotNil(t, c.Items)
	assert.Equal(t, "party", c.GetType())
}

func TestNormalizeCombatant_ClampsAndParses(t *testing.T) {
	c := NormalizeCombatant(CombatantRecord{
		Name:  "Grog",
		Class: "Barbarian",
		Level: intPtr(0),
		Abilities: AbilityRecord{
			Strength:  intPtr(40),
			Dexterity: intPtr(-3),
		},
		HP:            intPtr(50),
		MaxHP:         intPtr(30),
		Proficiencies: []string{"Sneak", "sneak", " ", "ATTACK"},
		Equipment: map[string]EquipmentRecord{
			"Weapon": {Name: "Greataxe", Bonus: intPtr(1), Dice: "1D12"},
			"boots":  {Name: "ignored"},
		},
		Items: map[string]int{"Healing_Potion": 2, "bomb": 0},
		StatusEffects: []StatusEffect{
			{Kind: StatusPoisoned, Duration: 2},
			{Kind: StatusPoisoned, Duration: 3},
		},
	}, FactionAdversary, 1)

	assert.Equal(t, "adversary-2", c.ID)
	assert.Equal(t, ArchetypeBarbarian, c.Archetype)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 30, c.AbilityScores.Strength)
	assert.Equal(t, 1, c.AbilityScores.Dexterity)
	assert.Equal(t, 30, c.HP)
	assert.Equal(t, 30, c.MaxHP)
	assert.Equal(t, []string{"sneak", "attack"}, c.Proficiencies)
	assert.True(t, c.IsProficient(CheckSneak))
	assert.Equal(t, EquipmentItem{Name: "Greataxe", Bonus: 1, Dice: "1d12"}, c.Equipment[SlotWeapon])
	assert.Len(t, c.Equipment, 1)
	assert.Equal(t, 2, c.ItemCount(ItemHealingPotion))
	assert.Equal(t, 0, c.ItemCount(ItemBomb))
	require.Len(t, c.StatusEffects, 1)
	assert.Equal(t, 3, c.StatusEffects[0].Duration)
}

func TestNormalizeCombatant_NegativeHP(t *testing.T) {
	c := NormalizeCombatant(CombatantRecord{ID: "x", HP: intPtr(-5), MaxHP: intPtr(0)}, FactionParty, 0)
	assert.Equal(t, 1, c.MaxHP)
	assert.Equal(t, 0, c.HP)
	assert.False(t, c.IsAlive())
}

func TestCombatant_HPClamping(t *testing.T) {
	c := &Combatant{HP: 5, MaxHP: 10}

	assert.Equal(t, 5, c.ApplyHealing(20))
	assert.Equal(t, 10, c.HP)

	assert.Equal(t, 10, c.ApplyDamage(99))
	assert.Equal(t, 0, c.HP)

	assert.Equal(t, 0, c.ApplyDamage(-4))
	assert.Equal(t, 0, c.ApplyHealing(0))
	assert.Equal(t, 0, c.HP)
}

func TestCombatant_StatusRefresh(t *testing.T) {
	c := &Combatant{}

	assert.True(t, c.ApplyStatus(StatusEffect{Kind: StatusBurning, Duration: 2}))
	assert.False(t, c.ApplyStatus(StatusEffect{Kind: StatusBurning, Duration: 1}))
	require.Len(t, c.StatusEffects, 1)
	assert.Equal(t, 1, c.StatusEffects[0].Duration)
	assert.Equal(t, StatusBurning.DefaultDescription(), c.StatusEffects[0].Description)

	assert.False(t, c.ApplyStatus(StatusEffect{Kind: StatusHasted, Duration: 0}))

	c.ApplyStatus(StatusEffect{Kind: StatusHasted, Duration: 2})
	c.ApplyStatus(StatusEffect{Kind: StatusFrozen, Duration: 1})
	removed := c.CleanseNegative()
	assert.ElementsMatch(t, []StatusKind{StatusBurning, StatusFrozen}, removed)
	require.Len(t, c.StatusEffects, 1)
	assert.Equal(t, StatusHasted, c.StatusEffects[0].Kind)
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := &Session{
		ID: "s1",
		Combatants: []*Combatant{
			NormalizeCombatant(CombatantRecord{ID: "a"}, FactionParty, 0),
		},
		EnvironmentalFeatures: []string{"barrel"},
	}

	clone := s.Clone()
	clone.Combatants[0].HP = 1
	clone.Combatants[0].Cooldowns[ActionSpell] = 2
	clone.EnvironmentalFeatures[0] = "torch"

	assert.Equal(t, 10, s.Combatants[0].HP)
	assert.Equal(t, 0, s.Combatants[0].Cooldown(ActionSpell))
	assert.Equal(t, "barrel", s.EnvironmentalFeatures[0])
}

func TestActionType_Cooldown(t *testing.T) {
	expected := map[ActionType]int{
		ActionAttack:        0,
		ActionDefend:        0,
		ActionSpell:         2,
		ActionSpecial:       3,
		ActionItem:          2,
		ActionEnvironmental: 2,
		ActionTeamUp:        3,
	}
	for _, a := range AllActionTypes() {
		assert.Equal(t, expected[a], a.Cooldown(), string(a))
	}
	assert.False(t, ActionType("dance").IsValid())
}
