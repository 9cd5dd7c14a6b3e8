package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-combat/internal/clients/external"
	enginecombat "github.com/KirkDiggler/rpg-combat/internal/engine/combat"
	enginedice "github.com/KirkDiggler/rpg-combat/internal/engine/dice"
	"github.com/KirkDiggler/rpg-combat/internal/config"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-combat/internal/redis"
	combatsession "github.com/KirkDiggler/rpg-combat/internal/repositories/combat_session"
	dicesession "github.com/KirkDiggler/rpg-combat/internal/repositories/dice_session"
)

// services is the wired application graph shared by the commands
type services struct {
	Combat   combat.Service
	Dice     dice.Service
	EventBus events.EventBus
	close    func()
}

// Close releases backing connections
func (s *services) Close() {
	if s.close != nil {
		s.close()
	}
}

// buildServices wires repositories, orchestrators and the engine from config.
// roller may be nil for the default crypto-backed source.
func buildServices(ctx context.Context, cfg *config.Config, roller *enginedice.Roller) (*services, error) {
	clk := clock.New()
	out := &services{}

	var (
		sessionRepo combatsession.Repository
		rollLogRepo dicesession.Repository
	)

	switch cfg.SessionStore {
	case config.StoreRedis:
		client, err := redisclient.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, err
		}
		out.close = func() {
			if err := client.Close(); err != nil {
				slog.Warn("Failed to close redis client", "error", err)
			}
		}
		if err := redisclient.Ping(ctx, client); err != nil {
			out.Close()
			return nil, err
		}

		sessionRepo, err = combatsession.NewRedis(&combatsession.RedisConfig{
			Client: client,
			TTL:    cfg.SessionTTL,
		})
		if err != nil {
			out.Close()
			return nil, err
		}
		rollLogRepo, err = dicesession.NewRedisRepository(&dicesession.Config{
			Client: client,
			Clock:  clk,
			TTL:    cfg.RollLogTTL,
		})
		if err != nil {
			out.Close()
			return nil, err
		}
	case config.StoreMemory:
		sessionRepo = combatsession.NewInMemory()
		rollLogRepo = dicesession.NewInMemory(clk, cfg.RollLogTTL)
	default:
		return nil, errors.InvalidArgumentf("unknown session store: %s", cfg.SessionStore)
	}

	engine, err := enginecombat.New(&enginecombat.Config{
		Roller:    roller,
		MaxRounds: cfg.MaxRounds,
	})
	if err != nil {
		out.Close()
		return nil, err
	}

	out.Dice, err = dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: rollLogRepo,
		IDGenerator:     idgen.NewUUID("roll"),
		Roller:          engine.Roller(),
	})
	if err != nil {
		out.Close()
		return nil, err
	}

	var catalog external.Client
	if cfg.EquipmentLookup {
		catalog, err = external.New(&external.Config{BaseURL: cfg.EquipmentAPIURL})
		if err != nil {
			out.Close()
			return nil, err
		}
	}

	out.EventBus = events.NewBus()
	out.Combat, err = combat.NewOrchestrator(&combat.Config{
		SessionRepo: sessionRepo,
		DiceService: out.Dice,
		EventBus:    out.EventBus,
		IDGenerator: idgen.NewUUID("combat"),
		Clock:       clk,
		Engine:      engine,
		Catalog:     catalog,
	})
	if err != nil {
		out.Close()
		return nil, err
	}

	slog.Info("Services initialized",
		"session_store", cfg.SessionStore,
		"max_rounds", cfg.MaxRounds,
		"equipment_lookup", cfg.EquipmentLookup,
	)

	return out, nil
}
