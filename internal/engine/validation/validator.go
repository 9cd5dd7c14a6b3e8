// Package validation classifies free-text action descriptions and resolves
// the skill checks they imply.
package validation

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-combat/internal/engine/checks"
	"github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Classification is the outcome of screening a description
type Classification string

// Classifications
const (
	ClassificationImpossible Classification = "impossible"
	ClassificationRedirect   Classification = "redirect"
	ClassificationExpand     Classification = "expand"
	ClassificationValid      Classification = "valid"
)

// ValidationContext carries caller supplied modifiers for every extracted check
type ValidationContext struct {
	Circumstances []string
	// DC overrides the base DC of every extracted check when above 0
	DC int
}

// ExtractedAction is one check found in a description
type ExtractedAction struct {
	CheckType     combat.CheckType
	Keyword       string
	Position      int
	Circumstances []string
	Result        *combat.SkillCheckResult
}

// ValidationResult is the full answer for one description
type ValidationResult struct {
	Description         string
	Classification      Classification
	Category            string
	Reason              string
	Suggestion          string
	Actions             []ExtractedAction
	OverallSuccess      bool
	HasCriticalFailures bool
}

// DiceRolled returns the number of d20 rolled while validating
func (r *ValidationResult) DiceRolled() int {
	n := 0
	for _, a := range r.Actions {
		if a.Result != nil {
			n++
		}
	}
	return n
}

// Validator drives the skill check resolver over extracted actions
type Validator struct {
	resolver *checks.Resolver
}

// NewValidator creates a validator
func NewValidator(resolver *checks.Resolver) *Validator {
	if resolver == nil {
		resolver = checks.NewResolver(nil)
	}
	return &Validator{resolver: resolver}
}

// ValidateAction screens the description and resolves every extracted action.
// Screen order is impossible, redirect, expand, then extraction.
func (v *Validator) ValidateAction(description string, c *combat.Combatant, vctx ValidationContext) (*ValidationResult, error) {
	result := Classify(description)
	if result.Classification != ClassificationValid {
		return result, nil
	}
	if c == nil {
		return nil, errors.InvalidArgument("combatant is required")
	}

	result.Actions = ExtractActions(description, vctx.Circumstances)
	result.OverallSuccess = true
	for i := range result.Actions {
		action := &result.Actions[i]
		check, err := v.resolver.PerformSkillCheck(checks.CheckInput{
			Combatant:     c,
			CheckType:     action.CheckType,
			Circumstances: action.Circumstances,
			DC:            vctx.DC,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %s", action.CheckType)
		}
		action.Result = check
		result.OverallSuccess = result.OverallSuccess && check.Success
		if check.Degree == combat.DegreeCriticalFailure {
			result.HasCriticalFailures = true
		}
	}

	return result, nil
}

// Classify runs the three screens without rolling dice.
// A description passing every screen is classified valid with no actions.
func Classify(description string) *ValidationResult {
	text := normalize(description)
	result := &ValidationResult{Description: description}

	if rule, ok := firstMatch(impossibleRules, text); ok {
		result.Classification = ClassificationImpossible
		result.Category = rule.Category
		result.Reason = rule.Reason
		return result
	}

	if rule, ok := firstMatch(redirectRules, text); ok {
		result.Classification = ClassificationRedirect
		result.Category = rule.Category
		result.Reason = rule.Reason
		result.Suggestion = rule.Suggestion
		return result
	}

	if text == "" || expandPattern.MatchString(text) {
		result.Classification = ClassificationExpand
		result.Category = "under_specified"
		result.Reason = expandReason
		return result
	}

	result.Classification = ClassificationValid
	result.OverallSuccess = true
	return result
}

// ExtractActions finds every check keyword group in the description, ordered by first appearance.
// Circumstance phrases found anywhere in the text, plus the extra ones, apply to every action.
func ExtractActions(description string, extra []string) []ExtractedAction {
	text := normalize(description)

	circumstances := append([]string(nil), extra...)
	for _, phrase := range circumstancePhrases {
		if phrase.pattern.MatchString(text) {
			circumstances = append(circumstances, phrase.key)
		}
	}
	circumstances = checks.NormalizeCircumstances(circumstances)

	var actions []ExtractedAction
	for _, group := range keywordGroups {
		loc := group.pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		actions = append(actions, ExtractedAction{
			CheckType:     group.check,
			Keyword:       text[loc[0]:loc[1]],
			Position:      loc[0],
			Circumstances: append([]string(nil), circumstances...),
		})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Position < actions[j].Position
	})
	return actions
}

func firstMatch(rules []Rule, text string) (Rule, bool) {
	for _, r := range rules {
		if r.Matches(text) {
			return r, true
		}
	}
	return Rule{}, false
}

func normalize(description string) string {
	return strings.Join(strings.Fields(strings.ToLower(description)), " ")
}
