package dicesession_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
	mockclock "github.com/KirkDiggler/rpg-combat/internal/pkg/clock/mock"
	dicesession "github.com/KirkDiggler/rpg-combat/internal/repositories/dice_session"
)

func TestInMemoryRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	clk := mockclock.NewMockClock(ctrl)
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	clk.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	repo := dicesession.NewInMemory(clk, 5*time.Minute)
	ctx := context.Background()
	key := dicesession.GetInput{EntityID: "combat-1", Context: "combat_round_1"}

	t.Run("append creates then extends", func(t *testing.T) {
		_, err := repo.Append(ctx, dicesession.AppendInput{
			EntityID: "combat-1",
			Context:  "combat_round_1",
			Rolls:    []dicesession.DiceRoll{roll("a", 4)},
		})
		require.NoError(t, err)

		out, err := repo.Append(ctx, dicesession.AppendInput{
			EntityID: "combat-1",
			Context:  "combat_round_1",
			Rolls:    []dicesession.DiceRoll{roll("b", 9)},
		})
		require.NoError(t, err)
		assert.Len(t, out.Session.Rolls, 2)
		assert.Equal(t, now.Add(5*time.Minute), out.Session.ExpiresAt)
	})

	t.Run("returned sessions are copies", func(t *testing.T) {
		got, err := repo.Get(ctx, key)
		require.NoError(t, err)
		got.Session.Rolls[0].Dice[0] = 99

		again, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int32(4), again.Session.Rolls[0].Dice[0])
	})

	t.Run("expired sessions disappear", func(t *testing.T) {
		now = now.Add(6 * time.Minute)
		_, err := repo.Get(ctx, key)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("delete reports rolls", func(t *testing.T) {
		_, err := repo.Create(ctx, dicesession.CreateInput{
			EntityID: "e",
			Context:  "c",
			Rolls:    []dicesession.DiceRoll{roll("a", 1), roll("b", 2), roll("c", 3)},
		})
		require.NoError(t, err)

		out, err := repo.Delete(ctx, dicesession.DeleteInput{EntityID: "e", Context: "c"})
		require.NoError(t, err)
		assert.Equal(t, int32(3), out.RollsDeleted)
	})
}
