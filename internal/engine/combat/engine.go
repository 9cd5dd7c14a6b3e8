// Package combat runs combat sessions: initiative, action execution, status
// effects, turn order and end conditions. Sessions are passed in explicitly and
// every mutation happens on the session handed to the call.
package combat

import (
	"sort"

	"github.com/KirkDiggler/rpg-combat/internal/engine/calculations"
	"github.com/KirkDiggler/rpg-combat/internal/engine/dice"
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Config holds the dependencies of the engine
type Config struct {
	// Roller defaults to the crypto-backed roller
	Roller *dice.Roller
	// MaxRounds defaults to entities.DefaultMaxRounds
	MaxRounds int
}

// Validate checks the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.MaxRounds < 0 {
		vb.Field("MaxRounds", "cannot be negative")
	}
	return vb.Build()
}

// Engine resolves combat on explicit sessions
type Engine struct {
	roller    *dice.Roller
	calc      *calculations.Calculator
	maxRounds int
}

// New creates an engine
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.New(nil)
	}
	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = entities.DefaultMaxRounds
	}

	return &Engine{
		roller:    roller,
		calc:      calculations.New(roller),
		maxRounds: maxRounds,
	}, nil
}

// Roller exposes the dice roller shared with the calculations
func (e *Engine) Roller() *dice.Roller {
	return e.roller
}

// InitializeInput describes a new encounter
type InitializeInput struct {
	SessionID    string
	Party        []*entities.Combatant
	Adversaries  []*entities.Combatant
	StoryContext string
}

// InitializeOutput is the new session and the initiative rolls
type InitializeOutput struct {
	Session *entities.Session
	Rolls   []entities.RollRecord
}

// InitializeCombat merges both sides, rolls initiative and activates the session
func (e *Engine) InitializeCombat(input *InitializeInput) (*InitializeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if len(input.Party) == 0 {
		return nil, errors.InvalidArgument("party cannot be empty")
	}
	if len(input.Adversaries) == 0 {
		return nil, errors.InvalidArgument("adversaries cannot be empty")
	}

	session := &entities.Session{
		ID:           input.SessionID,
		State:        entities.StatePreparation,
		StoryContext: input.StoryContext,
		MaxRounds:    e.maxRounds,
	}

	seen := make(map[string]bool)
	add := func(list []*entities.Combatant, faction entities.Faction) error {
		for _, c := range list {
			if c == nil {
				return errors.InvalidArgument("combatant cannot be nil")
			}
			if seen[c.ID] {
				return errors.InvalidArgumentf("duplicate combatant ID: %s", c.ID)
			}
			seen[c.ID] = true
			member := c.Clone()
			member.Faction = faction
			if member.Cooldowns == nil {
				member.Cooldowns = make(map[entities.ActionType]int)
			}
			if member.Items == nil {
				member.Items = make(map[string]int)
			}
			session.Combatants = append(session.Combatants, member)
		}
		return nil
	}
	if err := add(input.Party, entities.FactionParty); err != nil {
		return nil, err
	}
	if err := add(input.Adversaries, entities.FactionAdversary); err != nil {
		return nil, err
	}

	var rolls []entities.RollRecord
	for _, c := range session.Combatants {
		roll, err := e.RollInitiative(c)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll initiative for %s", c.ID)
		}
		rolls = append(rolls, roll)
	}

	sort.SliceStable(session.Combatants, func(i, j int) bool {
		return session.Combatants[i].Initiative > session.Combatants[j].Initiative
	})

	session.EnvironmentalFeatures = ExtractEnvironmentalFeatures(input.StoryContext)
	session.TeamUpOpportunities = ExtractTeamUpOpportunities(input.StoryContext)
	session.State = entities.StateActive
	session.Round = 1
	session.TurnIndex = 0
	session.AddLog("", "", "Combat begins.")

	if e.CheckCombatEnd(session).IsTerminal() {
		return &InitializeOutput{Session: session, Rolls: rolls}, nil
	}
	if first, ok := session.Current(); ok && !first.IsAlive() {
		e.AdvanceTurn(session)
	}

	return &InitializeOutput{Session: session, Rolls: rolls}, nil
}

// RollInitiative sets d20 + DEX modifier + floor(level/4) + status adjustments
func (e *Engine) RollInitiative(c *entities.Combatant) (entities.RollRecord, error) {
	roll, err := e.roller.RollDie(dice.D20)
	if err != nil {
		return entities.RollRecord{}, err
	}

	modifier := c.Modifier(entities.Dexterity) + c.Level/4
	for _, effect := range c.StatusEffects {
		modifier += effect.Kind.InitiativeAdjustment()
	}
	c.Initiative = roll + modifier

	return entities.RollRecord{
		Purpose:  "initiative " + c.ID,
		Notation: "1d20",
		Dice:     []int{roll},
		Modifier: modifier,
		Total:    c.Initiative,
	}, nil
}
