package dicesession_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
	mockclock "github.com/KirkDiggler/rpg-combat/internal/pkg/clock/mock"
	dicesession "github.com/KirkDiggler/rpg-combat/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-combat/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	clock *mockclock.MockClock
	mr    *miniredis.Miniredis
	repo  dicesession.Repository
	ctx   context.Context

	mu  sync.Mutex
	now time.Time
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.clock = mockclock.NewMockClock(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	s.clock.EXPECT().Now().DoAndReturn(func() time.Time {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.now
	}).AnyTimes()

	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr

	repo, err := dicesession.NewRedisRepository(&dicesession.Config{
		Client: client,
		Clock:  s.clock,
		TTL:    10 * time.Minute,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func roll(id string, total int32) dicesession.DiceRoll {
	return dicesession.DiceRoll{RollID: id, Notation: "1d20", Dice: []int32{total}, Total: total, DiceTotal: total}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	out, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "combat-1",
		Context:  "combat_round_1",
		Rolls:    []dicesession.DiceRoll{roll("r1", 12)},
	})
	s.Require().NoError(err)
	s.Equal(s.now.Add(10*time.Minute), out.Session.ExpiresAt)
	s.Equal(10*time.Minute, s.mr.TTL("dice_session:combat-1:combat_round_1"))

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "combat-1", Context: "combat_round_1"})
	s.Require().NoError(err)
	s.Require().Len(got.Session.Rolls, 1)
	s.Equal(int32(12), got.Session.Rolls[0].Total)
}

func (s *RedisRepositoryTestSuite) TestAppendCreatesThenExtends() {
	first, err := s.repo.Append(s.ctx, dicesession.AppendInput{
		EntityID: "combat-1",
		Context:  "combat_round_2",
		Rolls:    []dicesession.DiceRoll{roll("r1", 3)},
	})
	s.Require().NoError(err)
	expires := first.Session.ExpiresAt

	s.advance(time.Minute)

	second, err := s.repo.Append(s.ctx, dicesession.AppendInput{
		EntityID: "combat-1",
		Context:  "combat_round_2",
		Rolls:    []dicesession.DiceRoll{roll("r2", 17), roll("r3", 8)},
	})
	s.Require().NoError(err)
	s.Len(second.Session.Rolls, 3)
	s.Equal(expires, second.Session.ExpiresAt)
	s.Equal(9*time.Minute, s.mr.TTL("dice_session:combat-1:combat_round_2"))
}

func (s *RedisRepositoryTestSuite) TestConcurrentAppendsKeepEveryRoll() {
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.Append(s.ctx, dicesession.AppendInput{
				EntityID: "combat-1",
				Context:  "combat_round_1",
				Rolls:    []dicesession.DiceRoll{roll("r", 1)},
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "combat-1", Context: "combat_round_1"})
	s.Require().NoError(err)
	s.Len(got.Session.Rolls, 4)
}

func (s *RedisRepositoryTestSuite) TestExpiredByClock() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "e", Context: "c"})
	s.Require().NoError(err)

	s.advance(11 * time.Minute)

	_, err = s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "e", Context: "c"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDeleteCountsRolls() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "e",
		Context:  "c",
		Rolls:    []dicesession.DiceRoll{roll("a", 1), roll("b", 2)},
	})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, dicesession.DeleteInput{EntityID: "e", Context: "c"})
	s.Require().NoError(err)
	s.Equal(int32(2), out.RollsDeleted)

	out, err = s.repo.Delete(s.ctx, dicesession.DeleteInput{EntityID: "e", Context: "c"})
	s.Require().NoError(err)
	s.Equal(int32(0), out.RollsDeleted)
}

func (s *RedisRepositoryTestSuite) TestKeyValidation() {
	_, err := s.repo.Get(s.ctx, dicesession.GetInput{Context: "c"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Append(s.ctx, dicesession.AppendInput{EntityID: "e"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestMissing() {
	_, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "e", Context: "c"})
	s.True(errors.IsNotFound(err))
}

func TestNewRedisRepository_Validation(t *testing.T) {
	_, err := dicesession.NewRedisRepository(&dicesession.Config{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
