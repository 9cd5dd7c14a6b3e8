package combat

// StatusKind identifies a timed status effect
type StatusKind string

// Status kinds
const (
	StatusPoisoned     StatusKind = "poisoned"
	StatusBurning      StatusKind = "burning"
	StatusFrozen       StatusKind = "frozen"
	StatusParalyzed    StatusKind = "paralyzed"
	StatusHasted       StatusKind = "hasted"
	StatusDefending    StatusKind = "defending"
	StatusRegenerating StatusKind = "regenerating"
)

// IsNegative reports whether the kind can be removed by a cleanse
func (k StatusKind) IsNegative() bool {
	switch k {
	case StatusPoisoned, StatusBurning, StatusFrozen, StatusParalyzed:
		return true
	default:
		return false
	}
}

// PeriodicHP is the HP change the effect applies on each tick.
// Negative values are damage.
func (k StatusKind) PeriodicHP() int {
	switch k {
	case StatusPoisoned:
		return -1
	case StatusBurning:
		return -2
	case StatusRegenerating:
		return 2
	default:
		return 0
	}
}

// InitiativeAdjustment is the flat initiative change while the effect is active
func (k StatusKind) InitiativeAdjustment() int {
	switch k {
	case StatusHasted:
		return 5
	case StatusParalyzed:
		return -3
	default:
		return 0
	}
}

// DefaultDescription is the text attached when a caller supplies none
func (k StatusKind) DefaultDescription() string {
	switch k {
	case StatusPoisoned:
		return "loses 1 HP each turn"
	case StatusBurning:
		return "loses 2 HP each turn"
	case StatusFrozen:
		return "cannot act"
	case StatusParalyzed:
		return "may be unable to act"
	case StatusHasted:
		return "acts sooner in the round"
	case StatusDefending:
		return "takes half damage"
	case StatusRegenerating:
		return "recovers 2 HP each turn"
	default:
		return string(k)
	}
}

// StatusEffect is a timed modifier attached to a combatant
type StatusEffect struct {
	Kind        StatusKind `json:"kind" yaml:"kind"`
	Duration    int        `json:"duration" yaml:"duration"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
}

// ApplyStatus adds the effect or refreshes the duration of an effect of the same kind.
// It reports whether a new entry was added.
func (c *Combatant) ApplyStatus(effect StatusEffect) bool {
	if effect.Duration <= 0 {
		return false
	}
	if effect.Description == "" {
		effect.Description = effect.Kind.DefaultDescription()
	}

	for i := range c.StatusEffects {
		if c.StatusEffects[i].Kind == effect.Kind {
			c.StatusEffects[i].Duration = effect.Duration
			c.StatusEffects[i].Description = effect.Description
			return false
		}
	}

	c.StatusEffects = append(c.StatusEffects, effect)
	return true
}

// HasStatus reports whether an effect of the kind is active
func (c *Combatant) HasStatus(kind StatusKind) bool {
	for _, e := range c.StatusEffects {
		if e.Kind == kind && e.Duration > 0 {
			return true
		}
	}
	return false
}

// CleanseNegative removes every negative effect and returns the removed kinds
func (c *Combatant) CleanseNegative() []StatusKind {
	var removed []StatusKind
	kept := c.StatusEffects[:0]
	for _, e := range c.StatusEffects {
		if e.Kind.IsNegative() {
			removed = append(removed, e.Kind)
			continue
		}
		kept = append(kept, e)
	}
	c.StatusEffects = kept
	return removed
}
