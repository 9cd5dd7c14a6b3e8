package dice

import (
	"time"

	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	dicesession "github.com/KirkDiggler/rpg-combat/internal/repositories/dice_session"
)

// RollDiceInput defines the request for rolling dice
type RollDiceInput struct {
	EntityID    string
	Context     string
	Notation    string // NdM with an optional +K or -K
	Description string
	TTL         time.Duration
}

// RollDiceOutput defines the response for rolling dice
type RollDiceOutput struct {
	Roll    *dicesession.DiceRoll
	Session *dicesession.DiceSession
}

// RecordRollsInput defines the request for logging rolls made elsewhere
type RecordRollsInput struct {
	EntityID string
	Context  string
	Rolls    []entities.RollRecord
}

// RecordRollsOutput defines the response for logging rolls
type RecordRollsOutput struct {
	Session *dicesession.DiceSession
}

// GetRollSessionInput defines the request for getting a roll session
type GetRollSessionInput struct {
	EntityID string
	Context  string
}

// GetRollSessionOutput defines the response for getting a roll session
type GetRollSessionOutput struct {
	Session *dicesession.DiceSession
}

// ClearRollSessionInput defines the request for clearing a roll session
type ClearRollSessionInput struct {
	EntityID string
	Context  string
}

// ClearRollSessionOutput defines the response for clearing a roll session
type ClearRollSessionOutput struct {
	RollsDeleted int32
}
