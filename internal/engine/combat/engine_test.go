package combat_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat/internal/engine/combat"
	"github.com/KirkDiggler/rpg-combat/internal/engine/dice"
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

type EngineTestSuite struct {
	suite.Suite
	script *dice.Scripted
	engine *combat.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.script = dice.NewScripted()
	var err error
	s.engine, err = combat.New(&combat.Config{Roller: dice.New(s.script)})
	s.Require().NoError(err)
}

func intPtr(v int) *int { return &v }

type spec struct {
	id    string
	class string
	hp    int
	str   int
	dex   int
}

func (s *EngineTestSuite) member(faction entities.Faction, sp spec) *entities.Combatant {
	rec := entities.CombatantRecord{
		ID:    sp.id,
		Name:  sp.id,
		Class: sp.class,
		Abilities: entities.AbilityRecord{
			Strength:  intPtr(sp.str),
			Dexterity: intPtr(sp.dex),
		},
	}
	if sp.hp > 0 {
		rec.HP = intPtr(sp.hp)
		rec.MaxHP = intPtr(sp.hp)
	}
	if sp.str == 0 {
		rec.Abilities.Strength = nil
	}
	if sp.dex == 0 {
		rec.Abilities.Dexterity = nil
	}
	return entities.NormalizeCombatant(rec, faction, 0)
}

// session builds an active session in the given turn order without rolling initiative
func (s *EngineTestSuite) session(combatants ...*entities.Combatant) *entities.Session {
	return &entities.Session{
		ID:         "session-1",
		Combatants: combatants,
		State:      entities.StateActive,
		Round:      1,
		MaxRounds:  entities.DefaultMaxRounds,
	}
}

func (s *EngineTestSuite) TestInitializeCombat() {
	a := s.member(entities.FactionParty, spec{id: "a"})
	b := s.member(entities.FactionParty, spec{id: "b", dex: 14})
	c := s.member(entities.FactionAdversary, spec{id: "c"})
	c.StatusEffects = []entities.StatusEffect{{Kind: entities.StatusHasted, Duration: 3}}
	s.script.Push(5, 15, 12)

	out, err := s.engine.InitializeCombat(&combat.InitializeInput{
		SessionID:    "s1",
		Party:        []*entities.Combatant{a, b},
		Adversaries:  []*entities.Combatant{c},
		StoryContext: "A tavern brawl near an explosive barrel under a swaying chandelier. The party could flank the thugs.",
	})
	s.Require().NoError(err)

	session := out.Session
	s.Equal(entities.StateActive, session.State)
	s.Equal(1, session.Round)
	s.Equal(0, session.TurnIndex)
	s.Require().Len(session.Combatants, 3)
	// b: 15 + 2 = 17, c: 12 + 5 = 17 (tie keeps list order), a: 5
	s.Equal("b", session.Combatants[0].ID)
	s.Equal("c", session.Combatants[1].ID)
	s.Equal("a", session.Combatants[2].ID)
	s.Equal(17, session.Combatants[1].Initiative)
	s.Equal(entities.FactionAdversary, session.Combatants[1].Faction)
	s.Equal([]string{"explosive barrel", "chandelier"}, session.EnvironmentalFeatures)
	s.Equal([]string{"flanking"}, session.TeamUpOpportunities)
	s.Len(out.Rolls, 3)

	// inputs are copied, not shared
	session.Combatants[2].HP = 1
	s.Equal(10, a.HP)
}

func (s *EngineTestSuite) TestInitializeWithoutContext() {
	s.script.Push(10, 10)

	out, err := s.engine.InitializeCombat(&combat.InitializeInput{
		SessionID:   "s1",
		Party:       []*entities.Combatant{s.member(entities.FactionParty, spec{id: "a"})},
		Adversaries: []*entities.Combatant{s.member(entities.FactionAdversary, spec{id: "b"})},
	})
	s.Require().NoError(err)
	s.NotNil(out.Session.EnvironmentalFeatures)
	s.Empty(out.Session.EnvironmentalFeatures)
	s.Empty(out.Session.TeamUpOpportunities)
}

func (s *EngineTestSuite) TestInitializeRejectsBadInput() {
	_, err := s.engine.InitializeCombat(&combat.InitializeInput{SessionID: "s1"})
	s.True(errors.IsInvalidArgument(err))

	dup := s.member(entities.FactionParty, spec{id: "same"})
	_, err = s.engine.InitializeCombat(&combat.InitializeInput{
		SessionID:   "s1",
		Party:       []*entities.Combatant{dup},
		Adversaries: []*entities.Combatant{dup},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestAttackKillsAndClampsHP() {
	hero := s.member(entities.FactionParty, spec{id: "hero", class: "fighter", str: 16})
	gob := s.member(entities.FactionAdversary, spec{id: "gob", class: "skirmisher", hp: 7})
	session := s.session(hero, gob)
	s.script.Push(10, 8)

	outcome, err := s.engine.ExecuteAction(session, entities.ActionRequest{
		Type: entities.ActionAttack, ActorID: "hero", TargetID: "gob",
	})
	s.Require().NoError(err)

	// 11 rolled, 7 left to lose
	s.Equal(7, outcome.Damage)
	s.Equal(0, outcome.TargetHP)
	s.Equal(0, gob.HP)
	s.Equal(entities.StateVictory, outcome.State)
	s.Equal(entities.StateVictory, session.State)
	s.Equal(1, hero.TurnsTaken)
	s.Equal(entities.ActionAttack, hero.LastAction)
	s.NotEmpty(outcome.Narrative)
	s.Len(outcome.Rolls, 2)
}

func (s *EngineTestSuite) TestHealingClampsAtMax() {
	hero := s.member(entities.FactionParty, spec{id: "hero", class: "fighter"})
	hero.HP = 9
	hero.Items[entities.ItemHealingPotion] = 1
	gob := s.member(entities.FactionAdversary, spec{id: "gob"})
	session := s.session(hero, gob)
	s.script.Push(4, 4)

	outcome, err := s.engine.ExecuteAction(session, entities.ActionRequest{
		Type:    entities.ActionItem,
		ActorID: "hero",
		Extra:   map[string]string{entities.ExtraItem: entities.ItemHealingPotion},
	})
	s.Require().NoError(err)

	s.Equal(10, hero.HP)
	s.Equal(1, outcome.Healing)
	s.Equal("hero", outcome.TargetID)
	s.Equal(0, hero.ItemCount(entities.ItemHealingPotion))
	s.Equal(2, hero.Cooldown(entities.ActionItem))
}

func (s *EngineTestSuite) TestCooldownSemantics() {
	wizard := s.member(entities.FactionParty, spec{id: "wiz", class: "wizard"})
	gob := s.member(entities.FactionAdversary, spec{id: "gob", hp: 100})
	session := s.session(wizard, gob)

	s.script.Push(5, 3)
	_, err := s.engine.ExecuteAction(session, entities.ActionRequest{Type: entities.ActionSpell, ActorID: "wiz", TargetID: "gob"})
	s.Require().NoError(err)
	s.Equal(2, wizard.Cooldown(entities.ActionSpell))

	before := session.Clone()
	_, err = s.engine.ExecuteAction(session, entities.ActionRequest{Type: entities.ActionSpell, ActorID: "wiz", TargetID: "gob"})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(before, session.Clone())

	s.script.Push(5, 2)
	outcome, err := s.engine.ExecuteAction(session, entities.ActionRequest{Type: entities.ActionAttack, ActorID: "wiz", TargetID: "gob"})
	s.Require().NoError(err)
	s.Equal(1, wizard.Cooldown(entities.ActionSpell))
	s.Equal(map[entities.ActionType]int{entities.ActionSpell: 1}, outcome.Cooldowns)

	s.script.Push(5, 2)
	_, err = s.engine.ExecuteAction(session, entities.ActionRequest{Type: entities.ActionAttack, ActorID: "wiz", TargetID: "gob"})
	s.Require().NoError(err)
	s.Equal(0, wizard.Cooldown(entities.ActionSpell))
	s.False(wizard.IsOnCooldown(entities.ActionSpell))
}

func (s *EngineTestSuite) TestRejectionsLeaveSessionUntouched() {
	tests := []struct {
		name   string
		req    entities.ActionRequest
		prep   func(session *entities.Session)
		script []int
		check  func(error) bool
	}{
		{
			name:  "unknown actor",
			req:   entities.ActionRequest{Type: entities.ActionAttack, ActorID: "ghost", TargetID: "gob"},
			check: errors.IsNotFound,
		},
		{
			name:  "unknown target",
			req:   entities.ActionRequest{Type: entities.ActionAttack, ActorID: "hero", TargetID: "ghost"},
			check: errors.IsNotFound,
		},
		{
			name:  "dead actor",
			req:   entities.ActionRequest{Type: entities.ActionAttack, ActorID: "hero", TargetID: "gob"},
			prep:  func(session *entities.Session) { session.Combatants[0].HP = 0 },
			check: errors.IsFailedPrecondition,
		},
		{
			name:  "dead target",
			req:   entities.ActionRequest{Type: entities.ActionAttack, ActorID: "hero", TargetID: "gob2"},
			prep:  func(session *entities.Session) { session.Combatants[3].HP = 0 },
			check: errors.IsFailedPrecondition,
		},
		{
			name:  "ally target",
			req:   entities.ActionRequest{Type: entities.ActionAttack, ActorID: "hero", TargetID: "ally"},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "inactive session",
			req:   entities.ActionRequest{Type: entities.ActionAttack, ActorID: "hero", TargetID: "gob"},
			prep:  func(session *entities.Session) { session.State = entities.StateVictory },
			check: errors.IsFailedPrecondition,
		},
		{
			name:  "missing item",
			req:   entities.ActionRequest{Type: entities.ActionItem, ActorID: "hero", Extra: map[string]string{entities.ExtraItem: "bomb"}},
			check: errors.IsFailedPrecondition,
		},
		{
			name:  "unknown partner",
			req:   entities.ActionRequest{Type: entities.ActionTeamUp, ActorID: "hero", TargetID: "gob", Extra: map[string]string{entities.ExtraPartners: "ally,nobody"}},
			check: errors.IsNotFound,
		},
		{
			name:  "unknown action",
			req:   entities.ActionRequest{Type: entities.ActionType("dance"), ActorID: "hero"},
			check: errors.IsInvalidArgument,
		},
		{
			name: "malformed weapon dice",
			req:  entities.ActionRequest{Type: entities.ActionAttack, ActorID: "hero", TargetID: "gob"},
			prep: func(session *entities.Session) {
				session.Combatants[0].Equipment[entities.SlotWeapon] = entities.EquipmentItem{Name: "Stick", Dice: "2dX"}
			},
			script: []int{10},
			check:  errors.IsInvalidArgument,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			session := s.session(
				s.member(entities.FactionParty, spec{id: "hero", class: "fighter"}),
				s.member(entities.FactionParty, spec{id: "ally", class: "rogue"}),
				s.member(entities.FactionAdversary, spec{id: "gob"}),
				s.member(entities.FactionAdversary, spec{id: "gob2"}),
			)
			if tt.prep != nil {
				tt.prep(session)
			}
			s.script.Push(tt.script...)
			before := session.Clone()

			_, err := s.engine.ExecuteAction(session, tt.req)
			s.Require().Error(err)
			s.True(tt.check(err), "unexpected error: %v", err)
			s.Equal(before, session.Clone())
		})
	}
}

func (s *EngineTestSuite) TestDefendingHalvesDamage() {
	hero := s.member(entities.FactionParty, spec{id: "hero", class: "fighter", str: 16})
	gob := s.member(entities.FactionAdversary, spec{id: "gob", hp: 30})
	session := s.session(gob, hero)

	_, err := s.engine.ExecuteAction(session, entities.ActionRequest{Type: entities.ActionDefend, ActorID: "gob"})
	s.Require().NoError(err)
	s.True(gob.HasStatus(entities.StatusDefending))
	s.Equal(1, session.TurnIndex)

	s.script.Push(10, 8)
	outcome, err := s.engine.ExecuteAction(session, entities.ActionRequest{Type: entities.ActionAttack, ActorID: "hero", TargetID: "gob"})
	s.Require().NoError(err)
	s.Equal(5, outcome.Damage)
	s.Equal(25, gob.HP)
	s.Equal(2, session.Round)
}

func (s *EngineTestSuite) TestFireballSplashesOtherAdversaries() {
	wizard := s.member(entities.FactionParty, spec{id: "wiz", class: "wizard"})
	gob1 := s.member(entities.FactionAdversary, spec{id: "gob1", hp: 50})
	gob2 := s.member(entities.FactionAdversary, spec{id: "gob2", hp: 50})
	dead := s.member(entities.FactionAdversary, spec{id: "gob3", hp: 50})
	dead.HP = 0
	session := s.session(wizard, gob1, gob2, dead)
	s.script.Push(5, 6, 6, 6)

	outcome, err := s.engine.ExecuteAction(session, entities.ActionRequest{
		Type: entities.ActionSpell, ActorID: "wiz", TargetID: "gob1",
		Extra: map[string]string{entities.ExtraSpell: entities.SpellFireball},
	})
	s.Require().NoError(err)

	// 18 + int 0 + tier 2
	s.Equal(20, outcome.Damage)
	s.Equal(map[string]int{"gob2": 10}, outcome.Splash)
	s.Equal(30, gob1.HP)
	s.Equal(40, gob2.HP)
	s.Equal(0, dead.HP)
}

func (s *EngineTestSuite) TestSplashReportsHPLost() {
	wizard := s.member(entities.FactionParty, spec{id: "wiz", class: "wizard"})
	gob1 := s.member(entities.FactionAdversary, spec{id: "gob1", hp: 12})
	gob2 := s.member(entities.FactionAdversary, spec{id: "gob2", hp: 4})
	session := s.session(wizard, gob1, gob2)
	s.script.Push(5, 6, 6, 6)

	outcome, err := s.engine.ExecuteAction(session, entities.ActionRequest{
		Type: entities.ActionSpell, ActorID: "wiz", TargetID: "gob1",
		Extra: map[string]string{entities.ExtraSpell: entities.SpellFireball},
	})
	s.Require().NoError(err)

	s.Equal(12, outcome.Damage)
	s.Equal(map[string]int{"gob2": 4}, outcome.Splash)
	s.Equal(0, gob1.HP)
	s.Equal(0, gob2.HP)
	s.Contains(outcome.Narrative, "for 12 damage")
	s.Equal(entities.StateVictory, outcome.State)
}

func (s *EngineTestSuite) TestTeamUp() {
	hero := s.member(entities.FactionParty, spec{id: "hero", class: "fighter", str: 14})
	ally := s.member(entities.FactionParty, spec{id: "ally", class: "rogue"})
	gob := s.member(entities.FactionAdversary, spec{id: "gob", hp: 30})
	session := s.session(hero, ally, gob)
	s.script.Push(4)

	outcome, err := s.engine.ExecuteAction(session, entities.ActionRequest{
		Type: entities.ActionTeamUp, ActorID: "hero", TargetID: "gob",
		Extra: map[string]string{entities.ExtraPartners: "ally"},
	})
	s.Require().NoError(err)

	// 4 + str 2 + 3 per partner
	s.Equal(9, outcome.Damage)
	s.Equal(3, hero.Cooldown(entities.ActionTeamUp))
}

func (s *EngineTestSuite) TestEnvironmentalUsesSessionFeature() {
	hero := s.member(entities.FactionParty, spec{id: "hero", class: "ranger"})
	gob := s.member(entities.FactionAdversary, spec{id: "gob", hp: 30})
	session := s.session(hero, gob)
	session.EnvironmentalFeatures = []string{"brazier"}
	s.script.Push(3, 3)

	outcome, err := s.engine.ExecuteAction(session, entities.ActionRequest{
		Type: entities.ActionEnvironmental, ActorID: "hero", TargetID: "gob",
	})
	s.Require().NoError(err)

	s.Equal(6, outcome.Damage)
	s.True(gob.HasStatus(entities.StatusBurning))
	s.Require().Len(outcome.AppliedEffects, 1)
}

func (s *EngineTestSuite) TestProcessStatusEffectsDurations() {
	c := s.member(entities.FactionParty, spec{id: "hero"})
	c.ApplyStatus(entities.StatusEffect{Kind: entities.StatusPoisoned, Duration: 2})
	c.ApplyStatus(entities.StatusEffect{Kind: entities.StatusRegenerating, Duration: 1})
	c.HP = 5

	report, err := s.engine.ProcessStatusEffects(c)
	s.Require().NoError(err)
	s.Equal(1, report.HPChange)
	s.Equal(6, c.HP)
	s.Equal([]entities.StatusKind{entities.StatusRegenerating}, report.Expired)
	s.Require().Len(c.StatusEffects, 1)
	s.Equal(1, c.StatusEffects[0].Duration)

	report, err = s.engine.ProcessStatusEffects(c)
	s.Require().NoError(err)
	s.Equal(-1, report.HPChange)
	s.Equal(5, c.HP)
	s.Empty(c.StatusEffects)
	s.False(report.Skipped)
}

func (s *EngineTestSuite) TestFrozenSkipsTurnAndExpires() {
	frozen := s.member(entities.FactionParty, spec{id: "frozen"})
	frozen.ApplyStatus(entities.StatusEffect{Kind: entities.StatusFrozen, Duration: 1})
	gob := s.member(entities.FactionAdversary, spec{id: "gob"})
	session := s.session(frozen, gob)

	start, err := s.engine.StartTurn(session)
	s.Require().NoError(err)

	s.Require().Len(start.Reports, 2)
	s.True(start.Reports[0].Skipped)
	s.Equal(entities.StatusFrozen, start.Reports[0].SkipReason)
	s.Equal("gob", start.CombatantID)
	s.Empty(frozen.StatusEffects)
	s.Equal(0, frozen.TurnsTaken)

	_, err = s.engine.ExecuteAction(session, entities.ActionRequest{Type: entities.ActionDefend, ActorID: "gob"})
	s.Require().NoError(err)

	start, err = s.engine.StartTurn(session)
	s.Require().NoError(err)
	s.Equal("frozen", start.CombatantID)
	s.Equal(2, start.Round)
	s.Require().Len(start.Reports, 1)
	s.False(start.Reports[0].Skipped)
}

func (s *EngineTestSuite) TestParalysisRollsD100() {
	stuck := s.member(entities.FactionParty, spec{id: "stuck"})
	stuck.ApplyStatus(entities.StatusEffect{Kind: entities.StatusParalyzed, Duration: 3})
	s.script.Push(50, 51)

	report, err := s.engine.ProcessStatusEffects(stuck)
	s.Require().NoError(err)
	s.True(report.Skipped)
	s.Len(report.Rolls, 1)

	report, err = s.engine.ProcessStatusEffects(stuck)
	s.Require().NoError(err)
	s.False(report.Skipped)
	s.Equal(1, stuck.StatusEffects[0].Duration)
}

func (s *EngineTestSuite) TestStartTurnRunsOnce() {
	hero := s.member(entities.FactionParty, spec{id: "hero"})
	hero.ApplyStatus(entities.StatusEffect{Kind: entities.StatusBurning, Duration: 3})
	gob := s.member(entities.FactionAdversary, spec{id: "gob"})
	session := s.session(hero, gob)

	_, err := s.engine.StartTurn(session)
	s.Require().NoError(err)
	start, err := s.engine.StartTurn(session)
	s.Require().NoError(err)

	s.Equal(8, hero.HP)
	s.Empty(start.Reports)
	s.Equal("hero", start.CombatantID)
}

func (s *EngineTestSuite) TestStatusDeathEndsCombat() {
	hero := s.member(entities.FactionParty, spec{id: "hero"})
	gob := s.member(entities.FactionAdversary, spec{id: "gob"})
	gob.HP = 1
	gob.ApplyStatus(entities.StatusEffect{Kind: entities.StatusPoisoned, Duration: 2})
	session := s.session(gob, hero)

	start, err := s.engine.StartTurn(session)
	s.Require().NoError(err)

	s.Equal(entities.StateVictory, start.State)
	s.Empty(start.CombatantID)
	s.True(start.Reports[0].Died)
}

func (s *EngineTestSuite) TestCheckCombatEnd() {
	hero := s.member(entities.FactionParty, spec{id: "hero"})
	gob := s.member(entities.FactionAdversary, spec{id: "gob"})

	session := s.session(hero, gob)
	s.Equal(entities.StateActive, s.engine.CheckCombatEnd(session))

	gob.HP = 0
	s.Equal(entities.StateVictory, s.engine.CheckCombatEnd(session))

	session = s.session(hero, gob)
	hero.HP = 0
	s.Equal(entities.StateDefeat, s.engine.CheckCombatEnd(session))

	hero.HP, gob.HP = 10, 10
	s.Equal(entities.StateDefeat, s.engine.CheckCombatEnd(session))

	session = s.session(hero, gob)
	hero.HP = 0
	gob.HP = 0
	s.Equal(entities.StateDefeat, s.engine.CheckCombatEnd(session))
}

func (s *EngineTestSuite) TestAdvanceTurnSkipsDeadAndWraps() {
	a := s.member(entities.FactionParty, spec{id: "a"})
	b := s.member(entities.FactionAdversary, spec{id: "b"})
	c := s.member(entities.FactionParty, spec{id: "c"})
	c.HP = 0
	session := s.session(a, b, c)

	s.engine.AdvanceTurn(session)
	s.Equal(1, session.TurnIndex)
	s.Equal(1, session.Round)

	s.engine.AdvanceTurn(session)
	s.Equal(0, session.TurnIndex)
	s.Equal(2, session.Round)
	s.False(session.TurnStarted)
}

func (s *EngineTestSuite) TestRoundLimitIsADraw() {
	a := s.member(entities.FactionParty, spec{id: "a"})
	b := s.member(entities.FactionAdversary, spec{id: "b"})
	session := s.session(a, b)
	session.MaxRounds = 2

	s.engine.AdvanceTurn(session)
	s.engine.AdvanceTurn(session)
	s.Equal(entities.StateActive, session.State)
	s.engine.AdvanceTurn(session)
	s.engine.AdvanceTurn(session)
	s.Equal(entities.StateDraw, session.State)

	_, err := s.engine.StartTurn(session)
	s.True(errors.IsFailedPrecondition(err))
}
