package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/config"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/combat"
)

// partyLowHealth is the HP ratio under which a simulated party member drinks a potion
const partyLowHealth = 0.3

// maxSimulationSteps bounds the turn loop independently of the round limit
const maxSimulationSteps = 10000

var (
	rosterPath     string
	simMaxRounds   int
	simPrintEvents bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an AI-vs-AI encounter from a roster file",
	Long: `Load a YAML roster and fight it out to victory, defeat or draw.
Adversaries use the adversary decision rules; party members focus the
weakest adversary. Example:

  rpg-combat simulate --roster cmd/server/testdata/tavern.yaml`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&rosterPath, "roster", "", "path to the roster YAML file")
	simulateCmd.Flags().IntVar(&simMaxRounds, "max-rounds", 0, "round limit before a draw (overrides RPG_COMBAT_MAX_ROUNDS)")
	simulateCmd.Flags().BoolVar(&simPrintEvents, "events", false, "print combat events as they are published")
	_ = simulateCmd.MarkFlagRequired("roster") // nolint:errcheck // flag is registered above
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.SessionStore = config.StoreMemory
	if simMaxRounds > 0 {
		cfg.MaxRounds = simMaxRounds
	}

	roster, err := LoadRoster(rosterPath)
	if err != nil {
		return err
	}

	svc, err := buildServices(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	if simPrintEvents {
		printEvents(svc.EventBus, out)
	}

	final, err := runSimulation(ctx, svc.Combat, roster)
	if err != nil {
		return err
	}
	printSummary(out, final)
	return nil
}

// printEvents echoes lifecycle events to out
func printEvents(bus events.EventBus, out io.Writer) {
	for _, eventType := range []string{
		combat.EventCombatStarted,
		combat.EventTurnSkipped,
		combat.EventCombatEnded,
	} {
		bus.SubscribeFunc(eventType, 0, func(_ context.Context, e events.Event) error {
			source := "-"
			if e.Source() != nil {
				source = e.Source().GetID()
			}
			_, err := fmt.Fprintf(out, "* %s (%s)\n", e.Type(), source)
			return err
		})
	}
}

// runSimulation drives one encounter to a terminal state and returns the
// final session. The session is removed from the store afterwards.
func runSimulation(ctx context.Context, svc combat.Service, roster *Roster) (*entities.Session, error) {
	started, err := svc.StartCombat(ctx, &combat.StartCombatInput{
		Party:        roster.Party,
		Adversaries:  roster.Adversaries,
		StoryContext: roster.Story,
	})
	if err != nil {
		return nil, err
	}
	sessionID := started.Session.ID
	session := started.Session

	for step := 0; session.State == entities.StateActive; step++ {
		if step >= maxSimulationSteps {
			return nil, errors.Internalf("simulation did not finish after %d steps", maxSimulationSteps)
		}

		turn, err := svc.StartTurn(ctx, &combat.StartTurnInput{SessionID: sessionID})
		if err != nil {
			return nil, err
		}
		session = turn.Session
		if turn.Turn.CombatantID == "" {
			break
		}

		actor, ok := session.Combatant(turn.Turn.CombatantID)
		if !ok {
			return nil, errors.Internalf("combatant %s missing from session", turn.Turn.CombatantID)
		}

		if actor.Faction == entities.FactionAdversary {
			out, err := svc.TakeAdversaryTurn(ctx, &combat.TakeAdversaryTurnInput{SessionID: sessionID})
			if err != nil {
				return nil, err
			}
			session = out.Session
			continue
		}

		session, err = partyTurn(ctx, svc, session, actor)
		if err != nil {
			return nil, err
		}
	}

	ended, err := svc.EndCombat(ctx, &combat.EndCombatInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return ended.Session, nil
}

// partyTurn executes the party heuristic and falls back to defending when
// the engine rejects the choice
func partyTurn(ctx context.Context, svc combat.Service, s *entities.Session, actor *entities.Combatant) (*entities.Session, error) {
	req := partyAction(actor, s)

	out, err := svc.ExecuteAction(ctx, &combat.ExecuteActionInput{SessionID: s.ID, Request: req})
	if err == nil {
		return out.Session, nil
	}
	if !errors.IsFailedPrecondition(err) && !errors.IsInvalidArgument(err) {
		return nil, err
	}

	slog.Debug("Party action rejected, defending",
		"combatant_id", actor.ID,
		"action", req.Type,
		"error", err,
	)
	out, err = svc.ExecuteAction(ctx, &combat.ExecuteActionInput{
		SessionID: s.ID,
		Request:   entities.ActionRequest{Type: entities.ActionDefend, ActorID: actor.ID},
	})
	if err != nil {
		return nil, err
	}
	return out.Session, nil
}

// partyAction heals when low, otherwise attacks the weakest adversary.
// Casters use their default spell when it is ready.
func partyAction(actor *entities.Combatant, s *entities.Session) entities.ActionRequest {
	if actor.HPRatio() < partyLowHealth && !actor.IsOnCooldown(entities.ActionItem) {
		if item, ok := actor.HealingItem(); ok {
			return entities.ActionRequest{
				Type:     entities.ActionItem,
				ActorID:  actor.ID,
				TargetID: actor.ID,
				Extra:    map[string]string{entities.ExtraItem: item},
			}
		}
	}

	var target *entities.Combatant
	for _, c := range s.Living(entities.FactionAdversary) {
		if target == nil || c.HP < target.HP {
			target = c
		}
	}
	if target == nil {
		return entities.ActionRequest{Type: entities.ActionDefend, ActorID: actor.ID}
	}

	caps := actor.Archetype.Capabilities()
	if caps.Role == entities.RoleCaster && !actor.IsOnCooldown(entities.ActionSpell) {
		return entities.ActionRequest{
			Type:     entities.ActionSpell,
			ActorID:  actor.ID,
			TargetID: target.ID,
			Extra:    map[string]string{entities.ExtraSpell: caps.DefaultSpell},
		}
	}
	return entities.ActionRequest{Type: entities.ActionAttack, ActorID: actor.ID, TargetID: target.ID}
}

func printSummary(out io.Writer, s *entities.Session) {
	w := func(format string, args ...any) {
		_, _ = fmt.Fprintf(out, format, args...) // nolint:errcheck // best-effort console output
	}

	for _, entry := range s.Log {
		w("[round %d] %s\n", entry.Round, entry.Narrative)
	}

	w("\nResult: %s after %d rounds\n", s.State, s.Round)
	for _, faction := range []entities.Faction{entities.FactionParty, entities.FactionAdversary} {
		w("%s:\n", faction)
		for _, c := range s.Members(faction) {
			w("  %-20s %3d/%-3d HP\n", c.Name, c.HP, c.MaxHP)
		}
	}
}
