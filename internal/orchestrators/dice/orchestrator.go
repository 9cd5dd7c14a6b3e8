// Package dice implements the roll-log orchestrator: ad hoc rolls plus the
// audit trail of rolls made by the combat engine
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/rpg-combat/internal/orchestrators/dice Service

import (
	"context"
	"log/slog"

	enginedice "github.com/KirkDiggler/rpg-combat/internal/engine/dice"
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-combat/internal/repositories/dice_session"
)

// Service defines the interface for dice operations
type Service interface {
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	RecordRolls(ctx context.Context, input *RecordRollsInput) (*RecordRollsOutput, error)
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	DiceSessionRepo dicesession.Repository
	IDGenerator     idgen.Generator
	// Roller is optional; nil uses the default source
	Roller *enginedice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.DiceSessionRepo == nil {
		vb.RequiredField("DiceSessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	diceSessionRepo dicesession.Repository
	idGen           idgen.Generator
	roller          *enginedice.Roller
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = enginedice.New(nil)
	}

	return &orchestrator{
		diceSessionRepo: cfg.DiceSessionRepo,
		idGen:           cfg.IDGenerator,
		roller:          roller,
	}, nil
}

// RollDice rolls a notation and appends the result to the entity's session
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}
	if input.Notation == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	result, err := o.roller.Roll(input.Notation)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll dice")
	}

	roll := o.toDiceRoll(entities.RollRecord{
		Purpose:  input.Description,
		Notation: result.Notation,
		Dice:     result.Dice,
		Modifier: result.Modifier,
		Total:    result.Total,
	})

	out, err := o.diceSessionRepo.Append(ctx, dicesession.AppendInput{
		EntityID: input.EntityID,
		Context:  input.Context,
		Rolls:    []dicesession.DiceRoll{roll},
		TTL:      input.TTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store roll")
	}

	slog.Info("Dice rolled",
		"entity_id", input.EntityID,
		"context", input.Context,
		"notation", roll.Notation,
		"total", roll.Total,
		"roll_id", roll.RollID,
	)

	return &RollDiceOutput{
		Roll:    &roll,
		Session: out.Session,
	}, nil
}

// RecordRolls appends rolls made by the combat engine to the audit trail
func (o *orchestrator) RecordRolls(ctx context.Context, input *RecordRollsInput) (*RecordRollsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}
	if len(input.Rolls) == 0 {
		return &RecordRollsOutput{}, nil
	}

	rolls := make([]dicesession.DiceRoll, 0, len(input.Rolls))
	for _, r := range input.Rolls {
		rolls = append(rolls, o.toDiceRoll(r))
	}

	out, err := o.diceSessionRepo.Append(ctx, dicesession.AppendInput{
		EntityID: input.EntityID,
		Context:  input.Context,
		Rolls:    rolls,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to record rolls")
	}

	slog.Debug("Rolls recorded",
		"entity_id", input.EntityID,
		"context", input.Context,
		"count", len(rolls),
	)

	return &RecordRollsOutput{Session: out.Session}, nil
}

// GetRollSession retrieves an existing dice roll session
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dice session")
	}

	return &GetRollSessionOutput{
		Session: getOutput.Session,
	}, nil
}

// ClearRollSession removes a dice roll session
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	deleteOutput, err := o.diceSessionRepo.Delete(ctx, dicesession.DeleteInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete dice session")
	}

	slog.Info("Dice session cleared",
		"entity_id", input.EntityID,
		"context", input.Context,
		"rolls_deleted", deleteOutput.RollsDeleted,
	)

	return &ClearRollSessionOutput{
		RollsDeleted: deleteOutput.RollsDeleted,
	}, nil
}

func (o *orchestrator) toDiceRoll(r entities.RollRecord) dicesession.DiceRoll {
	faces := make([]int32, len(r.Dice))
	var diceTotal int32
	for i, d := range r.Dice {
		// nolint:gosec // die faces are bounded by the notation limits
		faces[i] = int32(d)
		diceTotal += faces[i]
	}

	// nolint:gosec // totals are bounded by the notation limits
	return dicesession.DiceRoll{
		RollID:      o.idGen.Generate(),
		Notation:    r.Notation,
		Dice:        faces,
		Total:       int32(r.Total),
		Description: r.Purpose,
		DiceTotal:   diceTotal,
		Modifier:    int32(r.Modifier),
	}
}

func validateKey(entityID, rollContext string) error {
	if entityID == "" {
		return errors.InvalidArgument("entity ID is required")
	}
	if rollContext == "" {
		return errors.InvalidArgument("context is required")
	}
	return nil
}
