package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMembersAndLiving(t *testing.T) {
	hero := NormalizeCombatant(CombatantRecord{ID: "hero"}, FactionParty, 0)
	gob := NormalizeCombatant(CombatantRecord{ID: "gob"}, FactionAdversary, 0)
	cleric := NormalizeCombatant(CombatantRecord{ID: "cleric", HP: intPtr(0), MaxHP: intPtr(8)}, FactionParty, 1)
	s := &Session{Combatants: []*Combatant{hero, gob, cleric}}

	party := s.Members(FactionParty)
	require.Len(t, party, 2)
	assert.Equal(t, "hero", party[0].ID)
	assert.Equal(t, "cleric", party[1].ID)

	living := s.Living(FactionParty)
	require.Len(t, living, 1)
	assert.Equal(t, "hero", living[0].ID)

	assert.Len(t, s.Members(FactionAdversary), 1)
	assert.Empty(t, (&Session{}).Members(FactionParty))
}
