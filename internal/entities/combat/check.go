package combat

// CheckType names a physical or skill action that can be resolved with a d20 check
type CheckType string

// Check types
const (
	CheckAttack      CheckType = "attack"
	CheckClimb       CheckType = "climb"
	CheckJump        CheckType = "jump"
	CheckSwim        CheckType = "swim"
	CheckForce       CheckType = "force"
	CheckSneak       CheckType = "sneak"
	CheckTumble      CheckType = "tumble"
	CheckSleight     CheckType = "sleight"
	CheckSearch      CheckType = "search"
	CheckInvestigate CheckType = "investigate"
	CheckRecall      CheckType = "recall"
	CheckCast        CheckType = "cast"
	CheckPersuade    CheckType = "persuade"
	CheckDeceive     CheckType = "deceive"
	CheckIntimidate  CheckType = "intimidate"
	CheckPerform     CheckType = "perform"
	CheckInsight     CheckType = "insight"
	CheckHeal        CheckType = "heal"
	CheckSurvive     CheckType = "survive"
	CheckEndure      CheckType = "endure"
)

// Degree is the degree-of-success tier of a check
type Degree string

// Degrees, from best to worst
const (
	DegreeCriticalSuccess Degree = "critical success"
	DegreeGreatSuccess    Degree = "great success"
	DegreeSuccess         Degree = "success"
	DegreeFailure         Degree = "failure"
	DegreeGreatFailure    Degree = "great failure"
	DegreeCriticalFailure Degree = "critical failure"
)

// DegreeFor derives the tier from success and margin (total - DC).
// Boundaries are inclusive: margin 10 is critical, margin -10 is critical.
func DegreeFor(success bool, margin int) Degree {
	if success {
		switch {
		case margin >= 10:
			return DegreeCriticalSuccess
		case margin >= 5:
			return DegreeGreatSuccess
		default:
			return DegreeSuccess
		}
	}

	switch {
	case margin <= -10:
		return DegreeCriticalFailure
	case margin <= -5:
		return DegreeGreatFailure
	default:
		return DegreeFailure
	}
}

// SkillCheckResult is the full record of one resolved check
type SkillCheckResult struct {
	CheckType            CheckType `json:"check_type"`
	Roll                 int       `json:"roll"`
	Total                int       `json:"total"`
	DC                   int       `json:"dc"`
	PrimaryAbility       Ability   `json:"primary_ability"`
	SecondaryAbility     Ability   `json:"secondary_ability"`
	PrimaryModifier      int       `json:"primary_modifier"`
	SecondaryModifier    int       `json:"secondary_modifier"`
	ProficiencyModifier  int       `json:"proficiency_modifier"`
	CircumstanceModifier int       `json:"circumstance_modifier"`
	Circumstances        []string  `json:"circumstances,omitempty"`
	Success              bool      `json:"success"`
	Margin               int       `json:"margin"`
	Degree               Degree    `json:"degree"`
}
