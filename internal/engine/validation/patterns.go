package validation

import (
	"regexp"

	"github.com/KirkDiggler/rpg-combat/internal/entities/combat"
)

// Rule is one row of a screening table
type Rule struct {
	Category string
	Pattern  *regexp.Regexp
	// Unless suppresses the rule when it also matches
	Unless     *regexp.Regexp
	Reason     string
	Suggestion string
}

// Matches reports whether the rule fires for a lower-cased description
func (r Rule) Matches(text string) bool {
	if !r.Pattern.MatchString(text) {
		return false
	}
	return r.Unless == nil || !r.Unless.MatchString(text)
}

var impossibleRules = []Rule{
	{
		Category: "mass_acrobatics",
		Pattern:  regexp.MustCompile(`\b(?:\d{2,}|dozens? of|hundreds? of|thousands? of|a million)\s+(?:back|front)?\s*(?:flips?|somersaults?|cartwheels?|handsprings?)\b`),
		Reason:   "No one can chain that many acrobatic moves in a single action.",
	},
	{
		Category: "superhuman_strength",
		Pattern:  regexp.MustCompile(`\b(?:lift|lifts|pick up|picks up|throw|throws|carry|carries|hurl|hurls|uproot)\b[^.]*\b(?:castle|mountain|fortress|building|city|moon|planet|cathedral)\b`),
		Reason:   "That feat is far beyond mortal strength.",
	},
	{
		Category: "impossible_traversal",
		Pattern:  regexp.MustCompile(`\b(?:jump|jumps|leap|leaps)\s+(?:over|across)\s+(?:the\s+|a\s+|an\s+)?(?:mountain|ocean|sea|castle|kingdom|canyon|city)\b`),
		Reason:   "That distance cannot be crossed in a single bound.",
	},
	{
		Category: "impossible_traversal",
		Pattern:  regexp.MustCompile(`\b(?:fly|flies|flying|levitate|levitates|teleport|teleports)\b`),
		Unless:   regexp.MustCompile(`\b(?:spell|cast|casts|wings?|broom|potion|mount|griffon|pegasus|carpet|ring|scroll)\b`),
		Reason:   "You have no means of flight or teleportation.",
	},
	{
		Category: "instant_victory",
		Pattern:  regexp.MustCompile(`\b(?:instantly|immediately|automatically)\s+(?:kill|kills|slay|slays|defeat|defeats|destroy|destroys|win|wins)\b|\b(?:kill|kills|slay|slays|defeat|defeats)\b[^.]*\binstantly\b|\bone[- ]shot\b|\bwin the (?:fight|battle|game|war)\b`),
		Reason:   "Battles are won blow by blow, not by declaration.",
	},
	{
		Category: "fourth_wall",
		Pattern:  regexp.MustCompile(`\b(?:game master|dungeon master|the gm|the dm|the ai|as an ai|language model|chatgpt|reload|save file|save game|load (?:a |my |the )?save|cheat code|cheat codes|god mode|noclip|console command|dev mode)\b`),
		Reason:   "Your character cannot reach outside the story.",
	},
	{
		Category: "plot_item",
		Pattern:  regexp.MustCompile(`\bi (?:already |just )?(?:have|own|possess|hold)\s+(?:the|a)\s+(?:legendary\s+|ancient\s+|magic(?:al)?\s+|lost\s+|sacred\s+)?(?:artifact|relic|holy grail|crown|macguffin)\b|\b(?:pull|pulls|produce|produces)\s+out\s+(?:the|a)\s+(?:legendary|magic(?:al)?|ancient|mythic(?:al)?|sacred)\s+(?:sword|blade|artifact|relic|weapon|staff)\b|\b(?:suddenly|conveniently)\s+(?:find|finds|have|has|discover|discovers)\b`),
		Reason:   "Important items have to be found in the world first.",
	},
}

var redirectRules = []Rule{
	{
		Category:   "unbounded_targets",
		Pattern:    regexp.MustCompile(`\b(?:attack|attacks|hit|hits|strike|strikes|kill|kills|fight|fights|stab|stabs|shoot|shoots|slash|slashes)\s+(?:(?:all|every|each)\s+(?:of\s+)?(?:the\s+)?(?:enemies|enemy|monsters?|guards?|goblins?|foes?|creatures?|bandits?|orcs?|one)|all of them|them all)\b`),
		Reason:     "You can only focus on one foe at a time.",
		Suggestion: `Pick a single target, e.g. "I attack the nearest enemy".`,
	},
	{
		Category:   "unbounded_targets",
		Pattern:    regexp.MustCompile(`\b(?:attack|attacks|hit|hits|strike|strikes|kill|kills|fight|fights)\s+(?:everyone|everybody|everything)\b`),
		Reason:     "You can only focus on one foe at a time.",
		Suggestion: `Pick a single target, e.g. "I attack the nearest enemy".`,
	},
	{
		Category:   "take_everything",
		Pattern:    regexp.MustCompile(`\b(?:take|takes|grab|grabs|steal|steals|loot|loots)\s+(?:everything|all\s+(?:of\s+)?(?:the\s+)?(?:treasure|gold|items|loot|weapons))\b`),
		Reason:     "You can only carry off so much in one go.",
		Suggestion: `Name one thing you want, e.g. "I take the gold pouch".`,
	},
}

var expandPattern = regexp.MustCompile(`^(?:i\s+)?(?:search|look|talk|attack|use|cast|move|go|check|investigate|sneak|climb|fight|help|open|run)(?:\s+around)?[.!?]*$`)

const expandReason = "What exactly do you do? Add a target or an object."

type keywordGroup struct {
	check   combat.CheckType
	pattern *regexp.Regexp
}

var keywordGroups = []keywordGroup{
	{check: combat.CheckAttack, pattern: regexp.MustCompile(`\b(?:attack|attacks|attacking|strike|strikes|stab|stabs|slash|slashes|swing|swings|punch|punches|shoot|shoots|fight|fights)\b`)},
	{check: combat.CheckClimb, pattern: regexp.MustCompile(`\b(?:climb|climbs|climbing|scale|scales|scaling|clamber)\b`)},
	{check: combat.CheckJump, pattern: regexp.MustCompile(`\b(?:jump|jumps|jumping|leap|leaps|leaping|vault|vaults)\b`)},
	{check: combat.CheckSwim, pattern: regexp.MustCompile(`\b(?:swim|swims|swimming|dive|dives|diving)\b`)},
	{check: combat.CheckForce, pattern: regexp.MustCompile(`\b(?:force|forces|break down|breaks down|bash|bashes|smash|smashes|shove|shoves|push|pushes|lift|lifts|pry|kick down|kick open)\b`)},
	{check: combat.CheckSneak, pattern: regexp.MustCompile(`\b(?:sneak|sneaks|sneaking|hide|hides|hiding|creep|creeps|stealthily|tiptoe|tiptoes)\b`)},
	{check: combat.CheckTumble, pattern: regexp.MustCompile(`\b(?:tumble|tumbles|roll|rolls|flip|flips|backflip|backflips|somersault|somersaults|dodge|dodges|cartwheel)\b`)},
	{check: combat.CheckSleight, pattern: regexp.MustCompile(`\b(?:pickpocket|pickpockets|pick the lock|pick a lock|pick its lock|lockpick|steal|steals|palm|palms|sleight)\b`)},
	{check: combat.CheckSearch, pattern: regexp.MustCompile(`\b(?:search|searches|searching|look for|looks for|scan|scans|scout|scouts)\b`)},
	{check: combat.CheckInvestigate, pattern: regexp.MustCompile(`\b(?:investigate|investigates|examine|examines|inspect|inspects|study|studies|analy[sz]e|analy[sz]es)\b`)},
	{check: combat.CheckRecall, pattern: regexp.MustCompile(`\b(?:recall|recalls|remember|remembers|recollect|know about)\b`)},
	{check: combat.CheckCast, pattern: regexp.MustCompile(`\b(?:cast|casts|casting|spell|incantation|conjure|conjures)\b`)},
	{check: combat.CheckPersuade, pattern: regexp.MustCompile(`\b(?:persuade|persuades|convince|convinces|negotiate|negotiates|plead|pleads|bargain|reason with)\b`)},
	{check: combat.CheckDeceive, pattern: regexp.MustCompile(`\b(?:lie|lies|lying|deceive|deceives|bluff|bluffs|trick|tricks|pretend|pretends|disguise)\b`)},
	{check: combat.CheckIntimidate, pattern: regexp.MustCompile(`\b(?:intimidate|intimidates|threaten|threatens|menace|scare|scares|frighten|frightens)\b`)},
	{check: combat.CheckPerform, pattern: regexp.MustCompile(`\b(?:perform|performs|sing|sings|dance|dances|juggle|juggles|recite|recites|play (?:a|the|my) (?:lute|song|tune|flute))\b`)},
	{check: combat.CheckInsight, pattern: regexp.MustCompile(`\b(?:sense motive|read (?:his|her|their) (?:intentions|expression|face)|gauge|discern|tell if)\b`)},
	{check: combat.CheckHeal, pattern: regexp.MustCompile(`\b(?:heal|heals|bandage|bandages|first aid|tend to|treat (?:the|his|her|their|my) wounds?)\b`)},
	{check: combat.CheckSurvive, pattern: regexp.MustCompile(`\b(?:track|tracks|tracking|forage|forages|hunt for|navigate|navigates)\b`)},
	{check: combat.CheckEndure, pattern: regexp.MustCompile(`\b(?:endure|endures|withstand|withstands|resist|resists|hold my breath|hold out)\b`)},
}

type circumstancePhrase struct {
	key     string
	pattern *regexp.Regexp
}

var circumstancePhrases = []circumstancePhrase{
	{key: "careful", pattern: regexp.MustCompile(`\b(?:carefully|cautiously|slowly)\b`)},
	{key: "prepared", pattern: regexp.MustCompile(`\b(?:prepared|readied|after planning)\b`)},
	{key: "assisted", pattern: regexp.MustCompile(`\b(?:with (?:the )?help|with my (?:friend|ally|companion)s?|together with|assisted)\b`)},
	{key: "high_ground", pattern: regexp.MustCompile(`\b(?:high ground|from above|from the ledge|from the rooftop)\b`)},
	{key: "surprise", pattern: regexp.MustCompile(`\b(?:by surprise|unaware|unnoticed|ambush|ambushes)\b`)},
	{key: "tools", pattern: regexp.MustCompile(`\b(?:rope|grappling hook|crowbar|lockpicks|thieves'? tools|ladder|with (?:my |a |the )?tools)\b`)},
	{key: "hasty", pattern: regexp.MustCompile(`\b(?:quickly|hastily|rush|rushes|hurry|hurriedly)\b`)},
	{key: "distracted", pattern: regexp.MustCompile(`\b(?:distracted|while (?:talking|arguing|running))\b`)},
	{key: "darkness", pattern: regexp.MustCompile(`\b(?:dark|darkness|pitch black|at night|in the shadows)\b`)},
	{key: "injured", pattern: regexp.MustCompile(`\b(?:injured|wounded|bleeding|limping)\b`)},
	{key: "difficult_terrain", pattern: regexp.MustCompile(`\b(?:mud|muddy|slippery|icy|rubble|swamp|difficult terrain)\b`)},
	{key: "outnumbered", pattern: regexp.MustCompile(`\b(?:outnumbered|surrounded)\b`)},
}
