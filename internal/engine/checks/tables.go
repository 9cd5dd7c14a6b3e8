package checks

import "github.com/KirkDiggler/rpg-combat/internal/entities/combat"

// Definition declares the abilities and base DC of a check type
type Definition struct {
	Primary   combat.Ability
	Secondary combat.Ability
	BaseDC    int
}

var definitions = map[combat.CheckType]Definition{
	combat.CheckAttack:      {Primary: combat.Strength, Secondary: combat.Dexterity, BaseDC: 10},
	combat.CheckClimb:       {Primary: combat.Strength, Secondary: combat.Dexterity, BaseDC: 12},
	combat.CheckJump:        {Primary: combat.Strength, Secondary: combat.Dexterity, BaseDC: 12},
	combat.CheckSwim:        {Primary: combat.Strength, Secondary: combat.Constitution, BaseDC: 12},
	combat.CheckForce:       {Primary: combat.Strength, Secondary: combat.Constitution, BaseDC: 14},
	combat.CheckSneak:       {Primary: combat.Dexterity, Secondary: combat.Wisdom, BaseDC: 13},
	combat.CheckTumble:      {Primary: combat.Dexterity, Secondary: combat.Strength, BaseDC: 12},
	combat.CheckSleight:     {Primary: combat.Dexterity, Secondary: combat.Intelligence, BaseDC: 15},
	combat.CheckSearch:      {Primary: combat.Wisdom, Secondary: combat.Intelligence, BaseDC: 12},
	combat.CheckInvestigate: {Primary: combat.Intelligence, Secondary: combat.Wisdom, BaseDC: 13},
	combat.CheckRecall:      {Primary: combat.Intelligence, Secondary: combat.Wisdom, BaseDC: 14},
	combat.CheckCast:        {Primary: combat.Intelligence, Secondary: combat.Wisdom, BaseDC: 13},
	combat.CheckPersuade:    {Primary: combat.Charisma, Secondary: combat.Wisdom, BaseDC: 13},
	combat.CheckDeceive:     {Primary: combat.Charisma, Secondary: combat.Intelligence, BaseDC: 14},
	combat.CheckIntimidate:  {Primary: combat.Charisma, Secondary: combat.Strength, BaseDC: 13},
	combat.CheckPerform:     {Primary: combat.Charisma, Secondary: combat.Dexterity, BaseDC: 12},
	combat.CheckInsight:     {Primary: combat.Wisdom, Secondary: combat.Charisma, BaseDC: 12},
	combat.CheckHeal:        {Primary: combat.Wisdom, Secondary: combat.Intelligence, BaseDC: 12},
	combat.CheckSurvive:     {Primary: combat.Wisdom, Secondary: combat.Constitution, BaseDC: 12},
	combat.CheckEndure:      {Primary: combat.Constitution, Secondary: combat.Strength, BaseDC: 12},
}

// Circumstance keys
const (
	CircumstanceCareful          = "careful"
	CircumstancePrepared         = "prepared"
	CircumstanceAssisted         = "assisted"
	CircumstanceHighGround       = "high_ground"
	CircumstanceSurprise         = "surprise"
	CircumstanceTools            = "tools"
	CircumstanceHasty            = "hasty"
	CircumstanceDistracted       = "distracted"
	CircumstanceDarkness         = "darkness"
	CircumstanceInjured          = "injured"
	CircumstanceDifficultTerrain = "difficult_terrain"
	CircumstanceOutnumbered      = "outnumbered"
)

var circumstanceModifiers = map[string]int{
	CircumstanceCareful:          2,
	CircumstancePrepared:         2,
	CircumstanceAssisted:         2,
	CircumstanceHighGround:       2,
	CircumstanceSurprise:         3,
	CircumstanceTools:            2,
	CircumstanceHasty:            -2,
	CircumstanceDistracted:       -2,
	CircumstanceDarkness:         -2,
	CircumstanceInjured:          -2,
	CircumstanceDifficultTerrain: -2,
	CircumstanceOutnumbered:      -3,
}

// Lookup returns the definition of a check type
func Lookup(check combat.CheckType) (Definition, bool) {
	def, ok := definitions[check]
	return def, ok
}

// CheckTypes returns every known check type
func CheckTypes() []combat.CheckType {
	out := make([]combat.CheckType, 0, len(definitions))
	for c := range definitions {
		out = append(out, c)
	}
	return out
}

// CircumstanceModifier returns the signed modifier of a circumstance, 0 when unknown
func CircumstanceModifier(circumstance string) int {
	return circumstanceModifiers[circumstance]
}
