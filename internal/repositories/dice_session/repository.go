// Package dicesession stores roll logs: every die rolled for an entity,
// grouped by a context such as "combat_round_3".
package dicesession

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/rpg-combat/internal/repositories/dice_session Repository

// DiceSession is the roll log of one entity within one context
type DiceSession struct {
	// Entity that owns these rolls, e.g. a combat session ID
	EntityID string `json:"entity_id"`

	// Context groups related rolls, e.g. "combat_round_1"
	Context string `json:"context"`

	Rolls []DiceRoll `json:"rolls"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DiceRoll is one logged roll
type DiceRoll struct {
	RollID      string  `json:"roll_id"`
	Notation    string  `json:"notation"`
	Dice        []int32 `json:"dice"`
	Total       int32   `json:"total"`
	Dropped     []int32 `json:"dropped,omitempty"`
	Description string  `json:"description,omitempty"`
	DiceTotal   int32   `json:"dice_total"`
	Modifier    int32   `json:"modifier"`
}

// CreateInput contains parameters for creating a dice session
type CreateInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll
	TTL      time.Duration // zero means the repository default
}

// CreateOutput contains the result of creating a dice session
type CreateOutput struct {
	Session *DiceSession
}

// AppendInput contains rolls to add to a session, creating it when absent
type AppendInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll
	TTL      time.Duration // only used when the session is created
}

// AppendOutput contains the session after the append
type AppendOutput struct {
	Session *DiceSession
}

// GetInput contains parameters for retrieving a dice session
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput contains the result of retrieving a dice session
type GetOutput struct {
	Session *DiceSession
}

// DeleteInput contains parameters for deleting a dice session
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput contains the result of deleting a dice session
type DeleteOutput struct {
	RollsDeleted int32
}

// Repository defines the interface for dice session storage operations
type Repository interface {
	// Create stores a new dice session, replacing any previous one
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Append adds rolls to a session. The expiry of an existing session is kept.
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// Get retrieves a dice session by entity ID and context
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a dice session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
