package combatsession

import (
	"context"
	"encoding/json"
	"time"

	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-combat/internal/redis"
	redis "github.com/redis/go-redis/v9"
)

const (
	// Key pattern: combat_session:{session_id}
	sessionKeyPrefix = "combat_session:"
	// DefaultTTL is how long an idle session is kept
	DefaultTTL = 2 * time.Hour
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	// TTL is refreshed on every write. Zero means DefaultTTL.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed session repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores a new session, failing if the key is taken
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal combat session")
	}

	created, err := r.client.SetNX(ctx, buildKey(input.Session.ID), data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to store combat session in Redis")
	}
	if !created {
		return nil, errors.AlreadyExists("combat session already exists").
			WithMeta("session_id", input.Session.ID)
	}

	return &CreateOutput{Session: input.Session.Clone()}, nil
}

// Get retrieves a session by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errIDRequired()
	}

	data, err := r.client.Get(ctx, buildKey(input.SessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errNotFound(input.SessionID)
		}
		return nil, errors.Wrap(err, "failed to get combat session from Redis")
	}

	var session entities.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal combat session")
	}

	return &GetOutput{Session: &session}, nil
}

// Update replaces an existing session and refreshes its TTL
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal combat session")
	}

	updated, err := r.client.SetXX(ctx, buildKey(input.Session.ID), data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update combat session in Redis")
	}
	if !updated {
		return nil, errNotFound(input.Session.ID)
	}

	return &UpdateOutput{Session: input.Session.Clone()}, nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.SessionID == "" {
		return nil, errIDRequired()
	}

	removed, err := r.client.Del(ctx, buildKey(input.SessionID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete combat session from Redis")
	}
	if removed == 0 {
		return nil, errNotFound(input.SessionID)
	}

	return &DeleteOutput{}, nil
}

func buildKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
