// Package combatsession provides storage for combat sessions
package combatsession

import (
	"context"

	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=combatsessionmock github.com/KirkDiggler/rpg-combat/internal/repositories/combat_session Repository

// Repository defines the storage interface for combat sessions.
// Implementations hand out copies; callers own what they receive.
type Repository interface {
	// Create stores a new session. The session ID must be unused.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing session
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the request for storing a new session
type CreateInput struct {
	Session *entities.Session
}

// CreateOutput defines the response for storing a new session
type CreateOutput struct {
	Session *entities.Session
}

// GetInput defines the request for retrieving a session
type GetInput struct {
	SessionID string
}

// GetOutput defines the response for retrieving a session
type GetOutput struct {
	Session *entities.Session
}

// UpdateInput defines the request for replacing a session
type UpdateInput struct {
	Session *entities.Session
}

// UpdateOutput defines the response for replacing a session
type UpdateOutput struct {
	Session *entities.Session
}

// DeleteInput defines the request for removing a session
type DeleteInput struct {
	SessionID string
}

// DeleteOutput defines the response for removing a session
type DeleteOutput struct{}

const (
	errSessionNil     = "session is required"
	errSessionIDEmpty = "session ID is required"
)

func validateSession(session *entities.Session) error {
	if session == nil {
		return errSessionRequired()
	}
	if session.ID == "" {
		return errIDRequired()
	}
	return nil
}
