package combat

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Faction decides valid target sets and AI involvement
type Faction string

// Factions
const (
	FactionParty     Faction = "party"
	FactionAdversary Faction = "adversary"
)

// Opposes reports whether the other faction is hostile to f
func (f Faction) Opposes(other Faction) bool {
	return f != other
}

// EquipmentSlot names one slot of the equipment map
type EquipmentSlot string

// Equipment slots
const (
	SlotWeapon EquipmentSlot = "weapon"
	SlotArmor  EquipmentSlot = "armor"
	SlotFocus  EquipmentSlot = "focus"
)

// EquipmentItem is an equipped item with its numeric bonus
type EquipmentItem struct {
	Name  string `json:"name" yaml:"name"`
	Bonus int    `json:"bonus" yaml:"bonus"`
	// Dice is the damage notation of a weapon, empty for armor and foci
	Dice string `json:"dice,omitempty" yaml:"dice,omitempty"`
}

// Combatant is a normalized participant of a combat session
type Combatant struct {
	ID            string                          `json:"id"`
	Name          string                          `json:"name"`
	Faction       Faction                         `json:"faction"`
	Archetype     Archetype                       `json:"archetype"`
	Level         int                             `json:"level"`
	AbilityScores AbilityScores                   `json:"ability_scores"`
	HP            int                             `json:"hp"`
	MaxHP         int                             `json:"max_hp"`
	ArmorClass    int                             `json:"armor_class"`
	Proficiencies []string                        `json:"proficiencies,omitempty"`
	Equipment     map[EquipmentSlot]EquipmentItem `json:"equipment,omitempty"`
	StatusEffects []StatusEffect                  `json:"status_effects,omitempty"`
	Cooldowns     map[ActionType]int              `json:"cooldowns,omitempty"`
	Items         map[string]int                  `json:"items,omitempty"`
	Initiative    int                             `json:"initiative"`
	TurnsTaken    int                             `json:"turns_taken"`
	LastAction    ActionType                      `json:"last_action,omitempty"`
}

var _ core.Entity = (*Combatant)(nil)

// GetID returns the combatant ID
func (c *Combatant) GetID() string {
	return c.ID
}

// GetType returns the faction, which is how the rest of the system tells sides apart
func (c *Combatant) GetType() string {
	return string(c.Faction)
}

// IsAlive reports whether the combatant can still act or be targeted
func (c *Combatant) IsAlive() bool {
	return c.HP > 0
}

// HPRatio is HP as a fraction of MaxHP
func (c *Combatant) HPRatio() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP)
}

// Modifier returns the ability modifier of one of the combatant's scores
func (c *Combatant) Modifier(ability Ability) int {
	return c.AbilityScores.Modifier(ability)
}

// IsProficient checks explicit proficiency tags first, then the archetype table
func (c *Combatant) IsProficient(check CheckType) bool {
	for _, p := range c.Proficiencies {
		if p == string(check) {
			return true
		}
	}
	return c.Archetype.IsProficient(check)
}

// Equipped returns the item in a slot
func (c *Combatant) Equipped(slot EquipmentSlot) (EquipmentItem, bool) {
	item, ok := c.Equipment[slot]
	return item, ok
}

// EquipmentBonus returns the bonus of the item in a slot or 0
func (c *Combatant) EquipmentBonus(slot EquipmentSlot) int {
	return c.Equipment[slot].Bonus
}

// Cooldown returns the remaining turns before the action can be reused
func (c *Combatant) Cooldown(action ActionType) int {
	return c.Cooldowns[action]
}

// IsOnCooldown reports whether the action cannot be used yet
func (c *Combatant) IsOnCooldown(action ActionType) bool {
	return c.Cooldown(action) > 0
}

// ItemCount returns how many of an item the combatant carries
func (c *Combatant) ItemCount(item string) int {
	return c.Items[item]
}

// HealingItem returns the first healing item the combatant carries
func (c *Combatant) HealingItem() (string, bool) {
	for _, item := range []string{ItemHealingPotion, ItemGreaterHealingPotion} {
		if c.ItemCount(item) > 0 {
			return item, true
		}
	}
	return "", false
}

// ApplyDamage lowers HP, clamped at 0, and returns the HP actually lost
func (c *Combatant) ApplyDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := c.HP
	c.HP = clamp(c.HP-amount, 0, c.MaxHP)
	return before - c.HP
}

// ApplyHealing raises HP, clamped at MaxHP, and returns the HP actually gained
func (c *Combatant) ApplyHealing(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := c.HP
	c.HP = clamp(c.HP+amount, 0, c.MaxHP)
	return c.HP - before
}

// Clone returns a deep copy
func (c *Combatant) Clone() *Combatant {
	if c == nil {
		return nil
	}
	out := *c
	out.Proficiencies = append([]string(nil), c.Proficiencies...)
	out.StatusEffects = append([]StatusEffect(nil), c.StatusEffects...)
	if c.Equipment != nil {
		out.Equipment = make(map[EquipmentSlot]EquipmentItem, len(c.Equipment))
		for k, v := range c.Equipment {
			out.Equipment[k] = v
		}
	}
	if c.Cooldowns != nil {
		out.Cooldowns = make(map[ActionType]int, len(c.Cooldowns))
		for k, v := range c.Cooldowns {
			out.Cooldowns[k] = v
		}
	}
	if c.Items != nil {
		out.Items = make(map[string]int, len(c.Items))
		for k, v := range c.Items {
			out.Items[k] = v
		}
	}
	return &out
}

// AbilityRecord holds optional ability scores from an external record
type AbilityRecord struct {
	Strength     *int `json:"strength,omitempty" yaml:"strength,omitempty"`
	Dexterity    *int `json:"dexterity,omitempty" yaml:"dexterity,omitempty"`
	Constitution *int `json:"constitution,omitempty" yaml:"constitution,omitempty"`
	Intelligence *int `json:"intelligence,omitempty" yaml:"intelligence,omitempty"`
	Wisdom       *int `json:"wisdom,omitempty" yaml:"wisdom,omitempty"`
	Charisma     *int `json:"charisma,omitempty" yaml:"charisma,omitempty"`
}

// EquipmentRecord is an equipment entry of an external record
type EquipmentRecord struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Bonus *int   `json:"bonus,omitempty" yaml:"bonus,omitempty"`
	Dice  string `json:"dice,omitempty" yaml:"dice,omitempty"`
	// CatalogKey references an entry of the equipment catalog, e.g. "longsword"
	CatalogKey string `json:"catalog_key,omitempty" yaml:"catalog_key,omitempty"`
}

// CombatantRecord is a character record as supplied by the host application.
// Every numeric field is optional.
type CombatantRecord struct {
	ID            string                     `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string                     `json:"name,omitempty" yaml:"name,omitempty"`
	Class         string                     `json:"class,omitempty" yaml:"class,omitempty"`
	Level         *int                       `json:"level,omitempty" yaml:"level,omitempty"`
	Abilities     AbilityRecord              `json:"abilities,omitempty" yaml:"abilities,omitempty"`
	HP            *int                       `json:"hp,omitempty" yaml:"hp,omitempty"`
	MaxHP         *int                       `json:"max_hp,omitempty" yaml:"max_hp,omitempty"`
	ArmorClass    *int                       `json:"armor_class,omitempty" yaml:"armor_class,omitempty"`
	Proficiencies []string                   `json:"proficiencies,omitempty" yaml:"proficiencies,omitempty"`
	Equipment     map[string]EquipmentRecord `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	StatusEffects []StatusEffect             `json:"status_effects,omitempty" yaml:"status_effects,omitempty"`
	Items         map[string]int             `json:"items,omitempty" yaml:"items,omitempty"`
}

// Default values for missing record fields
const (
	DefaultHP         = 10
	DefaultArmorClass = 10
	DefaultLevel      = 1
)

// NormalizeCombatant converts an external record into a combatant with every
// numeric field defaulted. index is the position in the roster list, used to
// build an ID when the record has none.
func NormalizeCombatant(record CombatantRecord, faction Faction, index int) *Combatant {
	id := strings.TrimSpace(record.ID)
	if id == "" {
		id = fmt.Sprintf("%s-%d", faction, index+1)
	}

	archetype, _ := ParseArchetype(record.Class)

	name := strings.TrimSpace(record.Name)
	if name == "" {
		name = id
	}

	level := intOr(record.Level, DefaultLevel)
	if level < 1 {
		level = 1
	}

	maxHP := intOr(record.MaxHP, intOr(record.HP, DefaultHP))
	if maxHP < 1 {
		maxHP = 1
	}
	hp := clamp(intOr(record.HP, maxHP), 0, maxHP)

	c := &Combatant{
		ID:        id,
		Name:      name,
		Faction:   faction,
		Archetype: archetype,
		Level:     level,
		AbilityScores: AbilityScores{
			Strength:     abilityOr(record.Abilities.Strength),
			Dexterity:    abilityOr(record.Abilities.Dexterity),
			Constitution: abilityOr(record.Abilities.Constitution),
			Intelligence: abilityOr(record.Abilities.Intelligence),
			Wisdom:       abilityOr(record.Abilities.Wisdom),
			Charisma:     abilityOr(record.Abilities.Charisma),
		},
		HP:            hp,
		MaxHP:         maxHP,
		ArmorClass:    intOr(record.ArmorClass, DefaultArmorClass),
		Proficiencies: normalizeTags(record.Proficiencies),
		Equipment:     make(map[EquipmentSlot]EquipmentItem),
		Cooldowns:     make(map[ActionType]int),
		Items:         make(map[string]int),
	}

	for slot, rec := range record.Equipment {
		key := EquipmentSlot(strings.ToLower(strings.TrimSpace(slot)))
		switch key {
		case SlotWeapon, SlotArmor, SlotFocus:
		default:
			continue
		}
		itemName := rec.Name
		if itemName == "" {
			itemName = rec.CatalogKey
		}
		c.Equipment[key] = EquipmentItem{
			Name:  itemName,
			Bonus: intOr(rec.Bonus, 0),
			Dice:  strings.ToLower(strings.TrimSpace(rec.Dice)),
		}
	}

	for item, count := range record.Items {
		if count > 0 {
			c.Items[strings.ToLower(strings.TrimSpace(item))] += count
		}
	}

	for _, effect := range record.StatusEffects {
		c.ApplyStatus(effect)
	}

	return c
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func abilityOr(v *int) int {
	return clamp(intOr(v, DefaultAbilityScore), MinAbilityScore, MaxAbilityScore)
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
