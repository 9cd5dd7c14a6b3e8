package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat/internal/engine/checks"
	"github.com/KirkDiggler/rpg-combat/internal/engine/dice"
	"github.com/KirkDiggler/rpg-combat/internal/engine/validation"
	"github.com/KirkDiggler/rpg-combat/internal/entities/combat"
)

type ValidatorTestSuite struct {
	suite.Suite
	script    *dice.Scripted
	validator *validation.Validator
	rogue     *combat.Combatant
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) SetupTest() {
	s.script = dice.NewScripted()
	s.validator = validation.NewValidator(checks.NewResolver(dice.New(s.script)))

	dex := 16
	s.rogue = combat.NormalizeCombatant(combat.CombatantRecord{
		Name:      "Vex",
		Class:     "rogue",
		Abilities: combat.AbilityRecord{Dexterity: &dex},
	}, combat.FactionParty, 0)
}

func (s *ValidatorTestSuite) TestBackflipsAreImpossible() {
	result, err := s.validator.ValidateAction("I do 50 backflips to reach the tower", s.rogue, validation.ValidationContext{})
	s.Require().NoError(err)

	s.Equal(validation.ClassificationImpossible, result.Classification)
	s.Equal("mass_acrobatics", result.Category)
	s.NotEmpty(result.Reason)
	s.Empty(result.Actions)
	s.Equal(0, result.DiceRolled())
	s.Equal(0, s.script.Rolled())
}

func (s *ValidatorTestSuite) TestRedirectCarriesSuggestion() {
	result, err := s.validator.ValidateAction("I attack all the enemies at once", s.rogue, validation.ValidationContext{})
	s.Require().NoError(err)

	s.Equal(validation.ClassificationRedirect, result.Classification)
	s.NotEmpty(result.Suggestion)
	s.Equal(0, s.script.Rolled())
}

func (s *ValidatorTestSuite) TestBareVerbNeedsExpansion() {
	for _, text := range []string{"search", "I look around.", "  Talk ", ""} {
		result, err := s.validator.ValidateAction(text, s.rogue, validation.ValidationContext{})
		s.Require().NoError(err)
		s.Equal(validation.ClassificationExpand, result.Classification, text)
	}
	s.Equal(0, s.script.Rolled())
}

func (s *ValidatorTestSuite) TestMultipleActionsInOrder() {
	s.script.Push(14, 3)

	result, err := s.validator.ValidateAction(
		"I carefully sneak past the guard and then climb the wall",
		s.rogue,
		validation.ValidationContext{},
	)
	s.Require().NoError(err)

	s.Equal(validation.ClassificationValid, result.Classification)
	s.Require().Len(result.Actions, 2)
	s.Equal(combat.CheckSneak, result.Actions[0].CheckType)
	s.Equal(combat.CheckClimb, result.Actions[1].CheckType)
	s.Equal([]string{"careful"}, result.Actions[0].Circumstances)

	// sneak: 14 + dex 3 + proficiency 2 + careful 2 = 21 vs 13
	s.Equal(21, result.Actions[0].Result.Total)
	s.True(result.Actions[0].Result.Success)
	// climb: 3 + str 0 + careful 2 = 5 vs 12, miss by 7
	s.Equal(5, result.Actions[1].Result.Total)
	s.Equal(combat.DegreeGreatFailure, result.Actions[1].Result.Degree)

	s.False(result.OverallSuccess)
	s.False(result.HasCriticalFailures)
	s.Equal(2, result.DiceRolled())
}

func (s *ValidatorTestSuite) TestCriticalFailureFlag() {
	s.script.Push(1)

	result, err := s.validator.ValidateAction("I try to persuade the duke", s.rogue, validation.ValidationContext{
		Circumstances: []string{"outnumbered"},
		DC:            20,
	})
	s.Require().NoError(err)

	s.Require().Len(result.Actions, 1)
	s.Equal(20, result.Actions[0].Result.DC)
	s.Equal([]string{"outnumbered"}, result.Actions[0].Circumstances)
	s.True(result.HasCriticalFailures)
	s.False(result.OverallSuccess)
}

func (s *ValidatorTestSuite) TestNarrativeActionRollsNothing() {
	result, err := s.validator.ValidateAction("I thank the innkeeper and order a drink", s.rogue, validation.ValidationContext{})
	s.Require().NoError(err)

	s.Equal(validation.ClassificationValid, result.Classification)
	s.Empty(result.Actions)
	s.True(result.OverallSuccess)
	s.Equal(0, s.script.Rolled())
}

func (s *ValidatorTestSuite) TestNilCombatant() {
	_, err := s.validator.ValidateAction("I climb the tree", nil, validation.ValidationContext{})
	s.Require().Error(err)
}

func TestClassify_Screens(t *testing.T) {
	tests := []struct {
		text     string
		expected validation.Classification
		category string
	}{
		{text: "I lift the castle over my head", expected: validation.ClassificationImpossible, category: "superhuman_strength"},
		{text: "I jump over the mountain", expected: validation.ClassificationImpossible, category: "impossible_traversal"},
		{text: "I fly to the top of the tower", expected: validation.ClassificationImpossible, category: "impossible_traversal"},
		{text: "I drink the potion and fly to the tower", expected: validation.ClassificationValid},
		{text: "I instantly kill the dragon", expected: validation.ClassificationImpossible, category: "instant_victory"},
		{text: "I ask the game master for more gold", expected: validation.ClassificationImpossible, category: "fourth_wall"},
		{text: "I already have the artifact", expected: validation.ClassificationImpossible, category: "plot_item"},
		{text: "I pull out the legendary sword", expected: validation.ClassificationImpossible, category: "plot_item"},
		{text: "I attack everyone in the room", expected: validation.ClassificationRedirect, category: "unbounded_targets"},
		{text: "I take everything from the vault", expected: validation.ClassificationRedirect, category: "take_everything"},
		{text: "I instantly kill all the enemies", expected: validation.ClassificationImpossible, category: "instant_victory"},
		{text: "I search the desk for letters", expected: validation.ClassificationValid},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			result := validation.Classify(tt.text)
			assert.Equal(t, tt.expected, result.Classification)
			assert.Equal(t, tt.category, result.Category)
		})
	}
}

func TestExtractActions(t *testing.T) {
	actions := validation.ExtractActions("In the dark I pick the lock, then quickly hide behind the crates", []string{"assisted"})
	require.Len(t, actions, 2)

	assert.Equal(t, combat.CheckSleight, actions[0].CheckType)
	assert.Equal(t, "pick the lock", actions[0].Keyword)
	assert.Equal(t, combat.CheckSneak, actions[1].CheckType)
	assert.Equal(t, []string{"assisted", "darkness", "hasty"}, actions[0].Circumstances)
	assert.Less(t, actions[0].Position, actions[1].Position)
}
