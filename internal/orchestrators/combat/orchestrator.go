// Package combat implements the combat orchestrator: it owns combat sessions
// by ID, serializes access per session and drives the combat engine.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/KirkDiggler/rpg-combat/internal/orchestrators/combat Service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-combat/internal/clients/external"
	"github.com/KirkDiggler/rpg-combat/internal/engine/adversary"
	"github.com/KirkDiggler/rpg-combat/internal/engine/checks"
	enginecombat "github.com/KirkDiggler/rpg-combat/internal/engine/combat"
	"github.com/KirkDiggler/rpg-combat/internal/engine/validation"
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/idgen"
	combatsession "github.com/KirkDiggler/rpg-combat/internal/repositories/combat_session"
)

// Roll-log contexts
const (
	ContextInitiative = "initiative"
	roundContextFmt   = "combat_round_%d"
)

// RoundContext is the roll-log context of a combat round
func RoundContext(round int) string {
	return fmt.Sprintf(roundContextFmt, round)
}

// Service defines the combat operations
type Service interface {
	StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error)
	GetCombat(ctx context.Context, input *GetCombatInput) (*GetCombatOutput, error)
	StartTurn(ctx context.Context, input *StartTurnInput) (*StartTurnOutput, error)
	ExecuteAction(ctx context.Context, input *ExecuteActionInput) (*ExecuteActionOutput, error)
	TakeAdversaryTurn(ctx context.Context, input *TakeAdversaryTurnInput) (*TakeAdversaryTurnOutput, error)
	ValidateAction(ctx context.Context, input *ValidateActionInput) (*ValidateActionOutput, error)
	EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error)
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	SessionRepo combatsession.Repository
	DiceService dice.Service
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Engine      *enginecombat.Engine

	// Optional; built on the engine's roller when nil
	Decider   *adversary.Decider
	Validator *validation.Validator

	// Catalog is optional; when set, equipment catalog keys are resolved
	// before normalization
	Catalog external.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}

	return vb.Build()
}

type orchestrator struct {
	sessionRepo combatsession.Repository
	diceService dice.Service
	eventBus    events.EventBus
	idGen       idgen.Generator
	clock       clock.Clock
	engine      *enginecombat.Engine
	decider     *adversary.Decider
	validator   *validation.Validator
	catalog     external.Client
	locks       *sessionLocks
}

// NewOrchestrator creates a new combat orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	return newOrchestrator(cfg)
}

func newOrchestrator(cfg *Config) (*orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	decider := cfg.Decider
	if decider == nil {
		decider = adversary.New(cfg.Engine.Roller())
	}
	validator := cfg.Validator
	if validator == nil {
		validator = validation.NewValidator(checks.NewResolver(cfg.Engine.Roller()))
	}

	return &orchestrator{
		sessionRepo: cfg.SessionRepo,
		diceService: cfg.DiceService,
		eventBus:    cfg.EventBus,
		idGen:       cfg.IDGenerator,
		clock:       cfg.Clock,
		engine:      cfg.Engine,
		decider:     decider,
		validator:   validator,
		catalog:     cfg.Catalog,
		locks:       newSessionLocks(),
	}, nil
}

// StartCombat normalizes the rosters, rolls initiative and stores the session
func (o *orchestrator) StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Party) == 0 {
		return nil, errors.InvalidArgument("party cannot be empty")
	}
	if len(input.Adversaries) == 0 {
		return nil, errors.InvalidArgument("adversaries cannot be empty")
	}

	party, err := o.normalize(ctx, input.Party, entities.FactionParty)
	if err != nil {
		return nil, err
	}
	foes, err := o.normalize(ctx, input.Adversaries, entities.FactionAdversary)
	if err != nil {
		return nil, err
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = o.idGen.Generate()
	}

	initOutput, err := o.engine.InitializeCombat(&enginecombat.InitializeInput{
		SessionID:    sessionID,
		Party:        party,
		Adversaries:  foes,
		StoryContext: input.StoryContext,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize combat")
	}

	session := initOutput.Session
	now := o.clock.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	created, err := o.sessionRepo.Create(ctx, combatsession.CreateInput{Session: session})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store combat session")
	}

	o.recordRolls(ctx, session.ID, ContextInitiative, initOutput.Rolls)
	o.publish(ctx, EventCombatStarted, session, nil, map[string]interface{}{
		KeySessionID: session.ID,
		KeyRound:     session.Round,
	})
	o.publishEnd(ctx, entities.StatePreparation, session)

	slog.Info("Combat started",
		"session_id", session.ID,
		"party", len(party),
		"adversaries", len(foes),
		"features", len(session.EnvironmentalFeatures),
	)

	return &StartCombatOutput{
		Session:         created.Session,
		InitiativeRolls: initOutput.Rolls,
	}, nil
}

// GetCombat loads a session
func (o *orchestrator) GetCombat(ctx context.Context, input *GetCombatInput) (*GetCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetCombatOutput{Session: session}, nil
}

// StartTurn processes status effects of the current combatant
func (o *orchestrator) StartTurn(ctx context.Context, input *StartTurnInput) (*StartTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	before := session.State
	round := session.Round
	turn, err := o.engine.StartTurn(session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start turn")
	}

	saved, err := o.save(ctx, session)
	if err != nil {
		return nil, err
	}

	o.recordRolls(ctx, session.ID, RoundContext(round), turnRolls(turn))
	o.publishTurn(ctx, session, turn)
	o.publishEnd(ctx, before, session)

	return &StartTurnOutput{Turn: turn, Session: saved}, nil
}

// ExecuteAction runs an action for the combatant holding the turn. The turn
// is started first when needed. A rejected action leaves the stored session
// as the turn start left it.
func (o *orchestrator) ExecuteAction(ctx context.Context, input *ExecuteActionInput) (*ExecuteActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.Request.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	before := session.State
	turn, current, err := o.ensureTurn(ctx, session)
	if err != nil {
		return nil, err
	}
	if current.ID != input.Request.ActorID {
		return nil, errors.FailedPreconditionf("it is not %s's turn", input.Request.ActorID).
			WithMeta("current_combatant", current.ID)
	}

	outcome, saved, err := o.act(ctx, session, before, input.Request)
	if err != nil {
		return nil, err
	}

	return &ExecuteActionOutput{Turn: turn, Outcome: outcome, Session: saved}, nil
}

// TakeAdversaryTurn lets the adversary holding the turn choose and execute
// its action
func (o *orchestrator) TakeAdversaryTurn(ctx context.Context, input *TakeAdversaryTurnInput) (*TakeAdversaryTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	before := session.State
	turn, current, err := o.ensureTurn(ctx, session)
	if err != nil {
		return nil, err
	}
	if current.Faction != entities.FactionAdversary {
		return nil, errors.FailedPreconditionf("%s is not an adversary", current.ID).
			WithMeta("current_combatant", current.ID)
	}

	req, err := o.decider.ChooseAction(current, session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to choose adversary action")
	}

	outcome, saved, err := o.act(ctx, session, before, req)
	if err != nil {
		return nil, err
	}

	return &TakeAdversaryTurnOutput{Turn: turn, Request: req, Outcome: outcome, Session: saved}, nil
}

// ValidateAction screens a free-text action and resolves its checks against
// a combatant of the session. The session is not modified.
func (o *orchestrator) ValidateAction(ctx context.Context, input *ValidateActionInput) (*ValidateActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CombatantID == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	c, ok := session.Combatant(input.CombatantID)
	if !ok {
		return nil, errors.NotFoundf("combatant %s not found", input.CombatantID)
	}

	result, err := o.validator.ValidateAction(input.Description, c, validation.ValidationContext{
		Circumstances: input.Circumstances,
		DC:            input.DC,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate action")
	}

	var rolls []entities.RollRecord
	for _, a := range result.Actions {
		if a.Result == nil {
			continue
		}
		rolls = append(rolls, entities.RollRecord{
			Purpose:  fmt.Sprintf("%s check (%s)", a.CheckType, input.CombatantID),
			Notation: "1d20",
			Dice:     []int{a.Result.Roll},
			Modifier: a.Result.Total - a.Result.Roll,
			Total:    a.Result.Total,
		})
	}
	o.recordRolls(ctx, session.ID, RoundContext(session.Round), rolls)

	slog.Info("Action validated",
		"session_id", session.ID,
		"combatant_id", input.CombatantID,
		"classification", result.Classification,
		"checks", len(result.Actions),
	)

	return &ValidateActionOutput{Result: result}, nil
}

// EndCombat removes the session and returns its final state
func (o *orchestrator) EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if _, err := o.sessionRepo.Delete(ctx, combatsession.DeleteInput{SessionID: input.SessionID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete combat session")
	}

	if !session.State.IsTerminal() {
		o.publish(ctx, EventCombatEnded, session, nil, map[string]interface{}{
			KeySessionID: session.ID,
			KeyState:     string(session.State),
			KeyRound:     session.Round,
		})
	}

	slog.Info("Combat ended",
		"session_id", session.ID,
		"state", session.State,
		"rounds", session.Round,
	)

	return &EndCombatOutput{Session: session}, nil
}

// ensureTurn starts the turn when it has not been started and returns the
// combatant holding it. A turn start is committed on its own: it is saved,
// its rolls logged and its skips published before the caller's action is
// checked, so a rejected action can not re-roll it.
func (o *orchestrator) ensureTurn(ctx context.Context, session *entities.Session) (*enginecombat.TurnStart, *entities.Combatant, error) {
	if session.State != entities.StateActive {
		return nil, nil, errors.FailedPreconditionf("combat is not active (state: %s)", session.State)
	}

	var turn *enginecombat.TurnStart
	if !session.TurnStarted {
		before := session.State
		round := session.Round

		var err error
		turn, err = o.engine.StartTurn(session)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to start turn")
		}
		if _, err := o.save(ctx, session); err != nil {
			return nil, nil, err
		}
		o.recordRolls(ctx, session.ID, RoundContext(round), turnRolls(turn))
		o.publishTurn(ctx, session, turn)
		o.publishEnd(ctx, before, session)

		if session.State != entities.StateActive {
			return nil, nil, errors.FailedPreconditionf("combat ended during turn start (state: %s)", session.State)
		}
	}

	current, ok := session.Current()
	if !ok {
		return nil, nil, errors.Internal("session has no current combatant")
	}
	return turn, current, nil
}

// act executes a request on a loaded session, saves it and emits rolls and events
func (o *orchestrator) act(ctx context.Context, session *entities.Session, before entities.SessionState, req entities.ActionRequest) (*entities.Outcome, *entities.Session, error) {
	round := session.Round

	outcome, err := o.engine.ExecuteAction(session, req)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to execute %s", req.Type)
	}

	saved, err := o.save(ctx, session)
	if err != nil {
		return nil, nil, err
	}

	o.recordRolls(ctx, session.ID, RoundContext(round), outcome.Rolls)
	o.publishOutcome(ctx, session, outcome)
	o.publishEnd(ctx, before, session)

	slog.Info("Combat action executed",
		"session_id", session.ID,
		"actor_id", outcome.ActorID,
		"action", outcome.Action,
		"target_id", outcome.TargetID,
		"damage", outcome.Damage,
		"healing", outcome.Healing,
		"state", outcome.State,
	)

	return outcome, saved, nil
}

func (o *orchestrator) normalize(ctx context.Context, records []entities.CombatantRecord, faction entities.Faction) ([]*entities.Combatant, error) {
	out := make([]*entities.Combatant, 0, len(records))
	for i, record := range records {
		resolved, err := external.ResolveRecord(ctx, o.catalog, record)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve equipment")
		}
		out = append(out, entities.NormalizeCombatant(resolved, faction, i))
	}
	return out, nil
}

func (o *orchestrator) load(ctx context.Context, sessionID string) (*entities.Session, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.sessionRepo.Get(ctx, combatsession.GetInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load combat session")
	}
	return out.Session, nil
}

func (o *orchestrator) save(ctx context.Context, session *entities.Session) (*entities.Session, error) {
	session.UpdatedAt = o.clock.Now()

	out, err := o.sessionRepo.Update(ctx, combatsession.UpdateInput{Session: session})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save combat session")
	}
	return out.Session, nil
}

// recordRolls appends to the roll log. The log is an audit trail, so a
// failure is logged rather than returned.
func (o *orchestrator) recordRolls(ctx context.Context, sessionID, rollContext string, rolls []entities.RollRecord) {
	if len(rolls) == 0 {
		return
	}

	_, err := o.diceService.RecordRolls(ctx, &dice.RecordRollsInput{
		EntityID: sessionID,
		Context:  rollContext,
		Rolls:    rolls,
	})
	if err != nil {
		slog.Warn("Failed to record combat rolls",
			"session_id", sessionID,
			"context", rollContext,
			"count", len(rolls),
			"error", err,
		)
	}
}

func turnRolls(turn *enginecombat.TurnStart) []entities.RollRecord {
	if turn == nil {
		return nil
	}
	var rolls []entities.RollRecord
	for _, r := range turn.Reports {
		rolls = append(rolls, r.Rolls...)
	}
	return rolls
}
