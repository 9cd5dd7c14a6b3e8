package combat

import (
	enginecombat "github.com/KirkDiggler/rpg-combat/internal/engine/combat"
	"github.com/KirkDiggler/rpg-combat/internal/engine/validation"
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
)

// StartCombatInput defines the request for starting a combat session
type StartCombatInput struct {
	// SessionID is optional; one is generated when empty
	SessionID    string
	Party        []entities.CombatantRecord
	Adversaries  []entities.CombatantRecord
	StoryContext string
}

// StartCombatOutput defines the response for starting a combat session
type StartCombatOutput struct {
	Session *entities.Session
	// InitiativeRolls in the order the rolls were made
	InitiativeRolls []entities.RollRecord
}

// GetCombatInput defines the request for loading a session
type GetCombatInput struct {
	SessionID string
}

// GetCombatOutput defines the response for loading a session
type GetCombatOutput struct {
	Session *entities.Session
}

// StartTurnInput defines the request for starting the current turn
type StartTurnInput struct {
	SessionID string
}

// StartTurnOutput defines the response for starting the current turn
type StartTurnOutput struct {
	Turn    *enginecombat.TurnStart
	Session *entities.Session
}

// ExecuteActionInput defines the request for executing a combatant action.
// The actor must hold the current turn.
type ExecuteActionInput struct {
	SessionID string
	Request   entities.ActionRequest
}

// ExecuteActionOutput defines the response for executing an action
type ExecuteActionOutput struct {
	// Turn is set when the turn had not been started before the action
	Turn    *enginecombat.TurnStart
	Outcome *entities.Outcome
	Session *entities.Session
}

// TakeAdversaryTurnInput defines the request for letting the current
// adversary act
type TakeAdversaryTurnInput struct {
	SessionID string
}

// TakeAdversaryTurnOutput defines the response for an adversary turn
type TakeAdversaryTurnOutput struct {
	Turn    *enginecombat.TurnStart
	Request entities.ActionRequest
	Outcome *entities.Outcome
	Session *entities.Session
}

// ValidateActionInput defines the request for validating a free-text action
type ValidateActionInput struct {
	SessionID     string
	CombatantID   string
	Description   string
	Circumstances []string
	// DC overrides the table DC when positive
	DC int
}

// ValidateActionOutput defines the response for validating an action
type ValidateActionOutput struct {
	Result *validation.ValidationResult
}

// EndCombatInput defines the request for ending and removing a session
type EndCombatInput struct {
	SessionID string
}

// EndCombatOutput defines the response for ending a session
type EndCombatOutput struct {
	// Session is the final state before removal
	Session *entities.Session
}
