package combat

import (
	"fmt"

	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// paralysisSkipThreshold is the highest d100 roll on which a paralyzed combatant loses its turn
const paralysisSkipThreshold = 50

// StatusReport is what happened to one combatant at the start of its turn
type StatusReport struct {
	CombatantID string
	HPChange    int
	Skipped     bool
	SkipReason  entities.StatusKind
	Died        bool
	Expired     []entities.StatusKind
	Rolls       []entities.RollRecord
}

// TurnStart is the result of starting the current turn
type TurnStart struct {
	// CombatantID holds the turn after skipped combatants were passed over, empty when combat ended
	CombatantID string
	Reports     []StatusReport
	State       entities.SessionState
	Round       int
}

// ProcessStatusEffects applies periodic effects, decides whether the combatant
// loses its turn, decrements every duration by one and removes expired effects.
func (e *Engine) ProcessStatusEffects(c *entities.Combatant) (*StatusReport, error) {
	report := &StatusReport{CombatantID: c.ID}

	for _, effect := range c.StatusEffects {
		if effect.Kind == entities.StatusParalyzed && !report.Skipped {
			roll, err := e.roller.RollDie(100)
			if err != nil {
				return nil, errors.Wrap(err, "failed to roll paralysis")
			}
			report.Rolls = append(report.Rolls, entities.RollRecord{
				Purpose:  "paralysis " + c.ID,
				Notation: "1d100",
				Dice:     []int{roll},
				Total:    roll,
			})
			if roll <= paralysisSkipThreshold {
				report.Skipped = true
				report.SkipReason = entities.StatusParalyzed
			}
		}
	}

	kept := c.StatusEffects[:0]
	for _, effect := range c.StatusEffects {
		if change := effect.Kind.PeriodicHP(); change < 0 {
			report.HPChange -= c.ApplyDamage(-change)
		} else if change > 0 {
			report.HPChange += c.ApplyHealing(change)
		}

		if effect.Kind == entities.StatusFrozen && !report.Skipped {
			report.Skipped = true
			report.SkipReason = entities.StatusFrozen
		}

		effect.Duration--
		if effect.Duration <= 0 {
			report.Expired = append(report.Expired, effect.Kind)
			continue
		}
		kept = append(kept, effect)
	}
	c.StatusEffects = kept

	report.Died = !c.IsAlive()
	return report, nil
}

// StartTurn processes status effects of the combatant holding the turn, once per turn.
// Combatants that are dead, skipped or killed by their effects are passed over
// until someone can act or combat ends.
func (e *Engine) StartTurn(s *entities.Session) (*TurnStart, error) {
	if s.State != entities.StateActive {
		return nil, errors.FailedPreconditionf("combat is not active (state: %s)", s.State)
	}

	start := &TurnStart{}
	limit := (s.MaxRounds + 1) * (len(s.Combatants) + 1)
	for i := 0; i < limit; i++ {
		current, ok := s.Current()
		if !ok {
			return nil, errors.Internalf("turn index %d out of range", s.TurnIndex)
		}

		if s.TurnStarted && current.IsAlive() {
			break
		}
		if !current.IsAlive() {
			e.AdvanceTurn(s)
			if s.State != entities.StateActive {
				break
			}
			continue
		}

		report, err := e.ProcessStatusEffects(current)
		if err != nil {
			return nil, err
		}
		s.TurnStarted = true
		start.Reports = append(start.Reports, *report)

		if report.Died {
			s.AddLog(current.ID, "", fmt.Sprintf("%s succumbs to their wounds.", current.Name))
			if e.CheckCombatEnd(s).IsTerminal() {
				break
			}
			e.AdvanceTurn(s)
			if s.State != entities.StateActive {
				break
			}
			continue
		}
		if report.Skipped {
			s.AddLog(current.ID, "", fmt.Sprintf("%s is %s and loses the turn.", current.Name, report.SkipReason))
			e.AdvanceTurn(s)
			if s.State != entities.StateActive {
				break
			}
			continue
		}
		break
	}

	start.State = s.State
	start.Round = s.Round
	if s.State == entities.StateActive {
		if current, ok := s.Current(); ok {
			start.CombatantID = current.ID
		}
	}
	return start, nil
}

// CheckCombatEnd sets and returns the session state. A party wipe is checked
// before an adversary wipe, so a simultaneous wipe is a defeat. Terminal
// states are never changed.
func (e *Engine) CheckCombatEnd(s *entities.Session) entities.SessionState {
	if s.State.IsTerminal() {
		return s.State
	}

	switch {
	case len(s.Living(entities.FactionParty)) == 0:
		s.State = entities.StateDefeat
		s.AddLog("", "", "The party has fallen.")
	case len(s.Living(entities.FactionAdversary)) == 0:
		s.State = entities.StateVictory
		s.AddLog("", "", "The adversaries are defeated.")
	}
	return s.State
}

// AdvanceTurn moves the turn to the next living combatant in initiative order.
// Wrapping past the end starts a new round; passing the round limit ends the
// session in a draw.
func (e *Engine) AdvanceTurn(s *entities.Session) {
	if s.State.IsTerminal() || len(s.Combatants) == 0 {
		return
	}

	n := len(s.Combatants)
	wrapped := false
	for step := 1; step <= n; step++ {
		next := s.TurnIndex + step
		if next >= n && !wrapped {
			wrapped = true
			s.Round++
		}
		if s.Combatants[next%n].IsAlive() {
			s.TurnIndex = next % n
			s.TurnStarted = false
			break
		}
	}

	maxRounds := s.MaxRounds
	if maxRounds <= 0 {
		maxRounds = e.maxRounds
	}
	if s.Round > maxRounds {
		s.State = entities.StateDraw
		s.AddLog("", "", fmt.Sprintf("Neither side prevails after %d rounds.", maxRounds))
		return
	}

	e.CheckCombatEnd(s)
}
