package combat

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	enginecombat "github.com/KirkDiggler/rpg-combat/internal/engine/combat"
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
)

// Event types published on the bus
const (
	EventCombatStarted  = "combat.started"
	EventActionExecuted = "combat.action_executed"
	EventTurnSkipped    = "combat.turn_skipped"
	EventCombatEnded    = "combat.ended"
)

// Event context keys
const (
	KeySessionID = "session_id"
	KeyRound     = "round"
	KeyAction    = "action"
	KeyDamage    = "damage"
	KeyHealing   = "healing"
	KeyCritical  = "critical"
	KeyReason    = "reason"
	KeyState     = "state"
)

// publish sends an event. Failures are logged and never fail the operation
// because the session has already been saved.
func (o *orchestrator) publish(ctx context.Context, eventType string, source, target core.Entity, data map[string]interface{}) {
	event := events.NewGameEvent(eventType, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}
	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish combat event",
			"event", eventType,
			"error", err,
		)
	}
}

func (o *orchestrator) publishTurn(ctx context.Context, s *entities.Session, turn *enginecombat.TurnStart) {
	if turn == nil {
		return
	}
	for _, report := range turn.Reports {
		if !report.Skipped {
			continue
		}
		c, ok := s.Combatant(report.CombatantID)
		if !ok {
			continue
		}
		o.publish(ctx, EventTurnSkipped, c, nil, map[string]interface{}{
			KeySessionID: s.ID,
			KeyRound:     s.Round,
			KeyReason:    string(report.SkipReason),
		})
	}
}

func (o *orchestrator) publishOutcome(ctx context.Context, s *entities.Session, outcome *entities.Outcome) {
	actor, _ := s.Combatant(outcome.ActorID)
	var target core.Entity
	if c, ok := s.Combatant(outcome.TargetID); ok {
		target = c
	}
	o.publish(ctx, EventActionExecuted, actor, target, map[string]interface{}{
		KeySessionID: s.ID,
		KeyAction:    string(outcome.Action),
		KeyDamage:    outcome.Damage,
		KeyHealing:   outcome.Healing,
		KeyCritical:  outcome.Critical,
	})
}

// publishEnd announces a terminal state once, on the transition into it
func (o *orchestrator) publishEnd(ctx context.Context, before entities.SessionState, s *entities.Session) {
	if before.IsTerminal() || !s.State.IsTerminal() {
		return
	}
	o.publish(ctx, EventCombatEnded, s, nil, map[string]interface{}{
		KeySessionID: s.ID,
		KeyState:     string(s.State),
		KeyRound:     s.Round,
	})
}
