package combatsession

import (
	"context"
	"sync"

	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// InMemoryRepository implements Repository using process memory
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.Session
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*entities.Session),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new session
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Session.ID]; exists {
		return nil, errors.AlreadyExists("combat session already exists").
			WithMeta("session_id", input.Session.ID)
	}

	r.store[input.Session.ID] = input.Session.Clone()

	return &CreateOutput{Session: input.Session.Clone()}, nil
}

// Get retrieves a session by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errIDRequired()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.store[input.SessionID]
	if !exists {
		return nil, errNotFound(input.SessionID)
	}

	return &GetOutput{Session: session.Clone()}, nil
}

// Update replaces an existing session
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Session.ID]; !exists {
		return nil, errNotFound(input.Session.ID)
	}

	r.store[input.Session.ID] = input.Session.Clone()

	return &UpdateOutput{Session: input.Session.Clone()}, nil
}

// Delete removes a session
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.SessionID == "" {
		return nil, errIDRequired()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.SessionID]; !exists {
		return nil, errNotFound(input.SessionID)
	}

	delete(r.store, input.SessionID)

	return &DeleteOutput{}, nil
}

func errSessionRequired() error {
	return errors.InvalidArgument(errSessionNil)
}

func errIDRequired() error {
	return errors.InvalidArgument(errSessionIDEmpty)
}

func errNotFound(id string) error {
	return errors.NotFound("combat session not found").WithMeta("session_id", id)
}
