package dicesession

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-combat/internal/redis"
)

const (
	// Key pattern: dice_session:{entity_id}:{context}
	sessionKeyPrefix = "dice_session:"
	// DefaultTTL applies when neither the config nor the input sets one
	DefaultTTL = 15 * time.Minute

	maxAppendAttempts = 5

	errEntityIDEmpty = "entity ID cannot be empty"
	errContextEmpty  = "context cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}
	return vb.Build()
}

// getSetter is satisfied by clients, transactions and pipelines
type getSetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for dice sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores a new dice session with the specified TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	session := r.newSession(input.EntityID, input.Context, input.TTL)
	session.Rolls = input.Rolls

	if err := r.write(ctx, r.client, session); err != nil {
		return nil, err
	}

	return &CreateOutput{Session: session}, nil
}

// Append adds rolls under an optimistic WATCH so concurrent writers never
// drop each other's rolls
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	key := buildKey(input.EntityID, input.Context)
	var result *DiceSession

	txf := func(tx *redis.Tx) error {
		session, err := r.read(ctx, tx, key)
		if err != nil && !errors.IsNotFound(err) {
			return err
		}
		if session == nil {
			session = r.newSession(input.EntityID, input.Context, input.TTL)
		}
		session.Rolls = append(session.Rolls, input.Rolls...)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return r.write(ctx, pipe, session)
		})
		if err != nil {
			return err
		}
		result = session
		return nil
	}

	for attempt := 0; attempt < maxAppendAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &AppendOutput{Session: result}, nil
		}
		if err == redis.TxFailedErr {
			continue
		}
		return nil, errors.Wrap(err, "failed to append rolls")
	}

	return nil, errors.Unavailable("dice session is under contention").
		WithMeta("entity_id", input.EntityID).
		WithMeta("context", input.Context)
}

// Get retrieves a dice session by entity ID and context
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	session, err := r.read(ctx, r.client, buildKey(input.EntityID, input.Context))
	if err != nil {
		return nil, err
	}

	return &GetOutput{Session: session}, nil
}

// Delete removes a dice session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	key := buildKey(input.EntityID, input.Context)

	var rollsDeleted int32
	if session, err := r.read(ctx, r.client, key); err == nil {
		// nolint:gosec // roll count is always small
		rollsDeleted = int32(len(session.Rolls))
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{RollsDeleted: rollsDeleted}, nil
}

func (r *redisRepository) newSession(entityID, rollContext string, ttl time.Duration) *DiceSession {
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

// read loads a session; a session past its ExpiresAt counts as missing
func (r *redisRepository) read(ctx context.Context, cmd getSetter, key string) (*DiceSession, error) {
	data, err := cmd.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("dice session not found")
		}
		return nil, errors.Wrap(err, "failed to get session from Redis")
	}

	var session DiceSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	if r.clock.Now().After(session.ExpiresAt) {
		return nil, errors.NotFound("dice session has expired")
	}

	return &session, nil
}

func (r *redisRepository) write(ctx context.Context, cmd getSetter, session *DiceSession) error {
	remaining := session.ExpiresAt.Sub(r.clock.Now())
	if remaining <= 0 {
		return errors.FailedPrecondition("dice session has already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	if err := cmd.Set(ctx, buildKey(session.EntityID, session.Context), data, remaining).Err(); err != nil {
		return errors.Wrap(err, "failed to store session in Redis")
	}
	return nil
}

func validateKey(entityID, rollContext string) error {
	if entityID == "" {
		return errors.InvalidArgument(errEntityIDEmpty)
	}
	if rollContext == "" {
		return errors.InvalidArgument(errContextEmpty)
	}
	return nil
}

func buildKey(entityID, rollContext string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, entityID, rollContext)
}
