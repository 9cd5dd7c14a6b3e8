package combat

import (
	"regexp"
	"sort"
	"strings"
)

type contextPattern struct {
	label   string
	pattern *regexp.Regexp
}

var featurePatterns = []contextPattern{
	{label: "explosive barrel", pattern: regexp.MustCompile(`\b(?:explosive|barrels?|powder kegs?|kegs?)\b`)},
	{label: "chandelier", pattern: regexp.MustCompile(`\bchandeliers?\b`)},
	{label: "loose rocks", pattern: regexp.MustCompile(`\b(?:rocks?|boulders?|rubble|rockslide)\b`)},
	{label: "collapsing pillar", pattern: regexp.MustCompile(`\b(?:pillars?|columns?|collaps\w*)\b`)},
	{label: "brazier", pattern: regexp.MustCompile(`\bbraziers?\b`)},
	{label: "torch", pattern: regexp.MustCompile(`\btorch(?:es)?\b`)},
	{label: "fire", pattern: regexp.MustCompile(`\b(?:fire|flames?|bonfire|lava)\b`)},
	{label: "ice", pattern: regexp.MustCompile(`\b(?:ice|icy|frozen lake)\b`)},
	{label: "water", pattern: regexp.MustCompile(`\b(?:water|river|stream|pool|flood)\b`)},
}

var teamUpPatterns = []contextPattern{
	{label: "flanking", pattern: regexp.MustCompile(`\b(?:flank|flanks|flanking|surround|pincer)\b`)},
	{label: "combined assault", pattern: regexp.MustCompile(`\b(?:together|combined|coordinated|coordinate|in unison)\b`)},
	{label: "distraction", pattern: regexp.MustCompile(`\b(?:distract|distracted|distraction|diversion|lure)\b`)},
	{label: "high ground", pattern: regexp.MustCompile(`\b(?:high ground|balcony|ledge|rooftops?|cliff)\b`)},
	{label: "ambush", pattern: regexp.MustCompile(`\b(?:ambush|ambushes|surprise|unaware)\b`)},
}

// ExtractEnvironmentalFeatures finds usable features in the story context,
// ordered by first mention. No context yields an empty list.
func ExtractEnvironmentalFeatures(story string) []string {
	return extract(story, featurePatterns)
}

// ExtractTeamUpOpportunities finds coordination hooks in the story context,
// ordered by first mention.
func ExtractTeamUpOpportunities(story string) []string {
	return extract(story, teamUpPatterns)
}

func extract(story string, patterns []contextPattern) []string {
	text := strings.ToLower(story)
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	type hit struct {
		label string
		pos   int
	}
	var hits []hit
	for _, p := range patterns {
		if loc := p.pattern.FindStringIndex(text); loc != nil {
			hits = append(hits, hit{label: p.label, pos: loc[0]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.label)
	}
	return out
}
