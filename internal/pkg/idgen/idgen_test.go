package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-combat/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	t.Run("prefixed", func(t *testing.T) {
		id := idgen.NewUUID("combat").Generate()
		require.True(t, strings.HasPrefix(id, "combat_"))
		_, err := uuid.Parse(strings.TrimPrefix(id, "combat_"))
		assert.NoError(t, err)
	})

	t.Run("bare", func(t *testing.T) {
		g := idgen.NewUUID("")
		a, b := g.Generate(), g.Generate()
		_, err := uuid.Parse(a)
		assert.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential("roll")
	assert.Equal(t, "roll_1", g.Generate())
	assert.Equal(t, "roll_2", g.Generate())

	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}

func TestSequentialGenerator_Concurrent(t *testing.T) {
	g := idgen.NewSequential("x")
	seen := sync.Map{}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(g.Generate(), true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()
}
