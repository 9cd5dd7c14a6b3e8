package calculations

import (
	"regexp"

	"github.com/KirkDiggler/rpg-combat/internal/entities/combat"
)

// SpellProfile is the shape of a spell sub-type
type SpellProfile struct {
	Dice    string
	Effect  *combat.StatusEffect
	Area    bool
	Healing bool
}

var spells = map[string]SpellProfile{
	combat.SpellFirebolt:     {Dice: "1d10"},
	combat.SpellFrost:        {Dice: "1d8", Effect: &combat.StatusEffect{Kind: combat.StatusFrozen, Duration: 1}},
	combat.SpellPoisonSpray:  {Dice: "1d6", Effect: &combat.StatusEffect{Kind: combat.StatusPoisoned, Duration: 3}},
	combat.SpellLightning:    {Dice: "2d8"},
	combat.SpellFireball:     {Dice: "3d6", Area: true},
	combat.SpellMagicMissile: {Dice: "2d4"},
	combat.SpellHeal:         {Dice: "2d8", Healing: true},
}

// Spell returns the profile of a spell sub-type
func Spell(name string) (SpellProfile, bool) {
	p, ok := spells[name]
	return p, ok
}

// ItemProfile is the shape of an item sub-type
type ItemProfile struct {
	Dice    string
	Healing bool
	Cleanse bool
}

var items = map[string]ItemProfile{
	combat.ItemHealingPotion:        {Dice: "2d4+2", Healing: true},
	combat.ItemGreaterHealingPotion: {Dice: "4d4+4", Healing: true},
	combat.ItemAntidote:             {Cleanse: true},
	combat.ItemBomb:                 {Dice: "2d6"},
}

// Item returns the profile of an item sub-type
func Item(name string) (ItemProfile, bool) {
	p, ok := items[name]
	return p, ok
}

type featureProfile struct {
	pattern *regexp.Regexp
	dice    string
	effect  *combat.StatusEffect
}

var features = []featureProfile{
	{pattern: regexp.MustCompile(`\b(?:explosive|explosives|barrel|barrels|powder keg)\b`), dice: "3d6"},
	{pattern: regexp.MustCompile(`\b(?:rocks?|boulders?|chandelier|collapse|collapsing|pillar)\b`), dice: "2d10"},
	{pattern: regexp.MustCompile(`\b(?:fire|brazier|torch|torches|flames?|lava)\b`), dice: "2d6", effect: &combat.StatusEffect{Kind: combat.StatusBurning, Duration: 2}},
	{pattern: regexp.MustCompile(`\b(?:ice|icy|water|river|frost)\b`), dice: "1d6", effect: &combat.StatusEffect{Kind: combat.StatusFrozen, Duration: 1}},
}

const defaultFeatureDice = "2d6"

func featureFor(name string) (string, *combat.StatusEffect) {
	for _, f := range features {
		if f.pattern.MatchString(name) {
			return f.dice, f.effect
		}
	}
	return defaultFeatureDice, nil
}
