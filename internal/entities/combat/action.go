package combat

// ActionType is the category of a combat action
type ActionType string

// Action types
const (
	ActionAttack        ActionType = "attack"
	ActionSpell         ActionType = "spell"
	ActionSpecial       ActionType = "special"
	ActionItem          ActionType = "item"
	ActionDefend        ActionType = "defend"
	ActionEnvironmental ActionType = "environmental"
	ActionTeamUp        ActionType = "teamUp"
)

// AllActionTypes lists the action types in a stable order
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionAttack,
		ActionSpell,
		ActionSpecial,
		ActionItem,
		ActionDefend,
		ActionEnvironmental,
		ActionTeamUp,
	}
}

// IsValid checks if the action type is known
func (a ActionType) IsValid() bool {
	switch a {
	case ActionAttack, ActionSpell, ActionSpecial, ActionItem,
		ActionDefend, ActionEnvironmental, ActionTeamUp:
		return true
	default:
		return false
	}
}

// Cooldown is the number of turns the actor waits before reusing the action
func (a ActionType) Cooldown() int {
	switch a {
	case ActionSpell, ActionItem, ActionEnvironmental:
		return 2
	case ActionSpecial, ActionTeamUp:
		return 3
	default:
		return 0
	}
}

// Keys recognized in ActionRequest.Extra
const (
	ExtraSpell    = "spell"
	ExtraTier     = "tier"
	ExtraItem     = "item"
	ExtraFeature  = "feature"
	ExtraPartners = "partners"
)

// Spell sub-types
const (
	SpellFirebolt     = "firebolt"
	SpellFrost        = "frost"
	SpellPoisonSpray  = "poison_spray"
	SpellLightning    = "lightning"
	SpellFireball     = "fireball"
	SpellMagicMissile = "magic_missile"
	SpellHeal         = "heal"
)

// Item sub-types
const (
	ItemHealingPotion        = "healing_potion"
	ItemGreaterHealingPotion = "greater_healing_potion"
	ItemAntidote             = "antidote"
	ItemBomb                 = "bomb"
)

// IsHealingItem reports whether the item restores HP
func IsHealingItem(item string) bool {
	return item == ItemHealingPotion || item == ItemGreaterHealingPotion
}

// ActionRequest asks the engine to execute one action
type ActionRequest struct {
	Type     ActionType        `json:"type"`
	ActorID  string            `json:"actor_id"`
	TargetID string            `json:"target_id,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// ExtraValue returns an extra parameter or the fallback when it is missing
func (r ActionRequest) ExtraValue(key, fallback string) string {
	if v, ok := r.Extra[key]; ok && v != "" {
		return v
	}
	return fallback
}

// RollRecord is one entry of the dice audit trail
type RollRecord struct {
	Purpose  string `json:"purpose"`
	Notation string `json:"notation"`
	Dice     []int  `json:"dice"`
	Modifier int    `json:"modifier,omitempty"`
	Total    int    `json:"total"`
}

// Outcome is the result of one executed action
type Outcome struct {
	Action         ActionType         `json:"action"`
	ActorID        string             `json:"actor_id"`
	TargetID       string             `json:"target_id,omitempty"`
	Narrative      string             `json:"narrative"`
	Damage         int                `json:"damage,omitempty"`
	Healing        int                `json:"healing,omitempty"`
	Critical       bool               `json:"critical,omitempty"`
	Splash         map[string]int     `json:"splash,omitempty"`
	AppliedEffects []StatusEffect     `json:"applied_effects,omitempty"`
	RemovedEffects []StatusKind       `json:"removed_effects,omitempty"`
	Cooldowns      map[ActionType]int `json:"cooldowns,omitempty"`
	TargetHP       int                `json:"target_hp"`
	State          SessionState       `json:"state"`
	Rolls          []RollRecord       `json:"rolls,omitempty"`
}
