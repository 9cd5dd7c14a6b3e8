package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

func TestLoadRoster(t *testing.T) {
	roster, err := LoadRoster("testdata/tavern.yaml")
	require.NoError(t, err)

	require.Len(t, roster.Party, 2)
	require.Len(t, roster.Adversaries, 2)
	assert.Contains(t, roster.Story, "chandelier")

	aria := roster.Party[0]
	assert.Equal(t, "aria", aria.ID)
	require.NotNil(t, aria.Abilities.Strength)
	assert.Equal(t, 16, *aria.Abilities.Strength)
	assert.Equal(t, "1d8", aria.Equipment["weapon"].Dice)
	assert.Equal(t, 2, aria.Items["healing_potion"])
	assert.Nil(t, aria.ArmorClass)

	shaman := roster.Adversaries[1]
	require.Len(t, shaman.StatusEffects, 1)
	assert.Equal(t, 2, shaman.StatusEffects[0].Duration)
}

func TestParseRosterRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: "story: nothing happens\n"},
		{name: "no adversaries", data: "party:\n  - id: a\n"},
		{name: "unknown field", data: "party:\n  - id: a\n    mana: 3\nadversaries:\n  - id: b\n"},
		{name: "not yaml", data: "party: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoster([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestLoadRosterMissingFile(t *testing.T) {
	_, err := LoadRoster("testdata/missing.yaml")
	assert.True(t, errors.IsInvalidArgument(err))
}
