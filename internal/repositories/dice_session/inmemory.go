package dicesession

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
)

// InMemoryRepository implements Repository in process memory. Expiry is
// checked lazily against the clock.
type InMemoryRepository struct {
	mu    sync.Mutex
	clock clock.Clock
	ttl   time.Duration
	store map[string]*DiceSession
}

// NewInMemory creates an in-memory repository. A nil clock uses the real
// clock and a zero ttl uses DefaultTTL.
func NewInMemory(clk clock.Clock, ttl time.Duration) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &InMemoryRepository{
		clock: clk,
		ttl:   ttl,
		store: make(map[string]*DiceSession),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new dice session, replacing any previous one
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.newSession(input.EntityID, input.Context, input.TTL)
	session.Rolls = append(session.Rolls, input.Rolls...)
	r.store[buildKey(input.EntityID, input.Context)] = session

	return &CreateOutput{Session: copySession(session)}, nil
}

// Append adds rolls, creating the session when absent or expired
func (r *InMemoryRepository) Append(_ context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := buildKey(input.EntityID, input.Context)
	session, ok := r.live(key)
	if !ok {
		session = r.newSession(input.EntityID, input.Context, input.TTL)
		r.store[key] = session
	}
	session.Rolls = append(session.Rolls, input.Rolls...)

	return &AppendOutput{Session: copySession(session)}, nil
}

// Get retrieves a dice session by entity ID and context
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.live(buildKey(input.EntityID, input.Context))
	if !ok {
		return nil, errors.NotFound("dice session not found")
	}

	return &GetOutput{Session: copySession(session)}, nil
}

// Delete removes a dice session
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := buildKey(input.EntityID, input.Context)
	var rollsDeleted int32
	if session, ok := r.live(key); ok {
		// nolint:gosec // roll count is always small
		rollsDeleted = int32(len(session.Rolls))
	}
	delete(r.store, key)

	return &DeleteOutput{RollsDeleted: rollsDeleted}, nil
}

// live returns an unexpired session, dropping it when expired. Callers hold mu.
func (r *InMemoryRepository) live(key string) (*DiceSession, bool) {
	session, ok := r.store[key]
	if !ok {
		return nil, false
	}
	if r.clock.Now().After(session.ExpiresAt) {
		delete(r.store, key)
		return nil, false
	}
	return session, true
}

func (r *InMemoryRepository) newSession(entityID, rollContext string, ttl time.Duration) *DiceSession {
	if ttl <= 0 {
		ttl = r.ttl
	}
	now := r.clock.Now()
	return &DiceSession{
		EntityID:  entityID,
		Context:   rollContext,
		Rolls:     []DiceRoll{},
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func copySession(s *DiceSession) *DiceSession {
	out := *s
	out.Rolls = make([]DiceRoll, len(s.Rolls))
	for i, roll := range s.Rolls {
		roll.Dice = append([]int32(nil), roll.Dice...)
		roll.Dropped = append([]int32(nil), roll.Dropped...)
		out.Rolls[i] = roll
	}
	return &out
}
