package dice

import (
	"sync"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Scripted is a deterministic randomness source that returns queued values in order.
// It satisfies the rpg-toolkit dice.Roller interface.
type Scripted struct {
	mu     sync.Mutex
	values []int
	rolled int
}

// NewScripted queues the values to return
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: append([]int(nil), values...)}
}

// Push queues more values
func (s *Scripted) Push(values ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, values...)
}

// Remaining returns the number of queued values not yet used
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// Rolled returns how many values were consumed
func (s *Scripted) Rolled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rolled
}

// Roll returns the next queued value.
// A value outside [1, size] is an error so scripts cannot hide bad expectations.
func (s *Scripted) Roll(size int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return 0, errors.FailedPreconditionf("scripted dice exhausted after %d rolls", s.rolled)
	}
	v := s.values[0]
	if v < 1 || v > size {
		return 0, errors.InvalidArgumentf("scripted value %d does not fit a d%d", v, size)
	}
	s.values = s.values[1:]
	s.rolled++
	return v, nil
}

// RollN returns the next count queued values
func (s *Scripted) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
