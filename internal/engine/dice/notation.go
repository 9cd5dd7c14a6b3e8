package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Limits keep a single notation from rolling an unbounded number of dice
const (
	MaxDiceCount = 100
	MaxDieSides  = 1000
)

var notationRegex = regexp.MustCompile(`^(\d*)d(\d+)(?:([+-])(\d+))?$`)

// Notation is a parsed "NdM+K" expression
type Notation struct {
	Count    int
	Sides    int
	Modifier int
}

// String renders the notation in canonical form
func (n Notation) String() string {
	switch {
	case n.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Sides, n.Modifier)
	case n.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", n.Count, n.Sides, n.Modifier)
	default:
		return fmt.Sprintf("%dd%d", n.Count, n.Sides)
	}
}

// ParseNotation parses "NdM", "dM", "NdM+K" and "NdM-K".
// Anything else is an InvalidArgument error.
func ParseNotation(notation string) (Notation, error) {
	cleaned := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(notation), " ", ""))
	matches := notationRegex.FindStringSubmatch(cleaned)
	if matches == nil {
		return Notation{}, errors.InvalidArgumentf("invalid dice notation: %q (expected format: NdM, NdM+K or NdM-K)", notation)
	}

	count := 1
	if matches[1] != "" {
		var err error
		count, err = strconv.Atoi(matches[1])
		if err != nil {
			return Notation{}, errors.InvalidArgumentf("invalid dice count in notation: %q", notation)
		}
	}

	sides, err := strconv.Atoi(matches[2])
	if err != nil {
		return Notation{}, errors.InvalidArgumentf("invalid die size in notation: %q", notation)
	}

	if count < 1 || sides < 1 {
		return Notation{}, errors.InvalidArgumentf("dice count and size must be positive: %q", notation)
	}
	if count > MaxDiceCount || sides > MaxDieSides {
		return Notation{}, errors.InvalidArgumentf("dice notation out of range: %q", notation)
	}

	modifier := 0
	if matches[3] != "" {
		modifier, err = strconv.Atoi(matches[4])
		if err != nil {
			return Notation{}, errors.InvalidArgumentf("invalid modifier in notation: %q", notation)
		}
		if matches[3] == "-" {
			modifier = -modifier
		}
	}

	return Notation{Count: count, Sides: sides, Modifier: modifier}, nil
}
