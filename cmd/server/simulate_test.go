package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enginedice "github.com/KirkDiggler/rpg-combat/internal/engine/dice"
	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/config"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-combat/internal/testutils"
)

func memoryConfig(t *testing.T) *config.Config {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	return cfg
}

func TestRunSimulationFinishes(t *testing.T) {
	ctx := context.Background()
	svc, err := buildServices(ctx, memoryConfig(t), nil)
	require.NoError(t, err)
	defer svc.Close()

	roster, err := LoadRoster("testdata/tavern.yaml")
	require.NoError(t, err)

	final, err := runSimulation(ctx, svc.Combat, roster)
	require.NoError(t, err)
	assert.True(t, final.State.IsTerminal())
	assert.NotEmpty(t, final.Log)

	_, err = svc.Combat.GetCombat(ctx, &combat.GetCombatInput{SessionID: final.ID})
	assert.True(t, errors.IsNotFound(err))

	var out bytes.Buffer
	printSummary(&out, final)
	assert.Contains(t, out.String(), "Result: "+string(final.State))
	assert.Contains(t, out.String(), "Aria")
	assert.Contains(t, out.String(), "\nparty:\n")
	assert.Contains(t, out.String(), "\nadversary:\n")
	assert.Less(t, strings.Index(out.String(), "\nparty:\n"), strings.Index(out.String(), "\nadversary:\n"))
}

func TestRunSimulationScripted(t *testing.T) {
	ctx := context.Background()
	// hero initiative 20, goblin 1; 20 on the attack roll is a critical hit
	script := enginedice.NewScripted(20, 1, 20, 6)
	svc, err := buildServices(ctx, memoryConfig(t), enginedice.New(script))
	require.NoError(t, err)
	defer svc.Close()

	hero := testutils.Hero("hero-1", "fighter", 20)
	str := 16
	hero.Abilities.Strength = &str

	final, err := runSimulation(ctx, svc.Combat, &Roster{
		Party:       []entities.CombatantRecord{hero},
		Adversaries: []entities.CombatantRecord{testutils.Foe("gob-1", "goblin", 7, 7)},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StateVictory, final.State)
	assert.Equal(t, 1, final.Round)
	assert.Equal(t, 0, script.Remaining())
}

func TestPartyAction(t *testing.T) {
	s := testutils.Session("s1",
		[]entities.CombatantRecord{
			testutils.WithItems(testutils.Foe("knight", "fighter", 2, 20), map[string]int{"healing_potion": 1}),
			testutils.Hero("mage", "wizard", 12),
		},
		[]entities.CombatantRecord{
			testutils.Foe("orc", "brute", 15, 15),
			testutils.Foe("imp", "skirmisher", 4, 10),
		},
	)
	knight, _ := s.Combatant("knight")
	mage, _ := s.Combatant("mage")

	req := partyAction(knight, s)
	assert.Equal(t, entities.ActionItem, req.Type)
	assert.Equal(t, "knight", req.TargetID)

	req = partyAction(mage, s)
	assert.Equal(t, entities.ActionSpell, req.Type)
	assert.Equal(t, "imp", req.TargetID)

	mage.Cooldowns[entities.ActionSpell] = 1
	req = partyAction(mage, s)
	assert.Equal(t, entities.ActionAttack, req.Type)
	assert.Equal(t, "imp", req.TargetID)
}
