package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartPauseResume(t *testing.T) {
	s := NewSet()

	s.Start(1)
	s.Tick()
	s.Tick()
	s.Tick()
	assert.Equal(t, int64(3), s.Elapsed(1))

	s.Pause(1)
	s.Tick()
	s.Tick()
	st, ok := s.Get(1)
	assert.True(t, ok)
	assert.False(t, st.Running)
	assert.Equal(t, int64(3), st.Elapsed, "paused timer must not advance")

	s.Start(1)
	s.Tick()
	assert.Equal(t, int64(4), s.Elapsed(1), "resume continues from the frozen value")
}

func TestStopDiscardsElapsed(t *testing.T) {
	s := NewSet()
	s.Start(1)
	s.Tick()
	s.Tick()

	s.Stop(1)
	_, ok := s.Get(1)
	assert.False(t, ok)
	assert.Equal(t, int64(0), s.Elapsed(1))

	s.Start(1)
	st, _ := s.Get(1)
	assert.Equal(t, State{Elapsed: 0, Running: true}, st)
}

func TestPauseAbsentIsNoop(t *testing.T) {
	s := NewSet()
	s.Pause(42)
	assert.Equal(t, 0, s.Len())
	s.Stop(42)
	assert.Equal(t, 0, s.Len())
}

func TestTickAdvancesAllRunning(t *testing.T) {
	s := NewSet()
	s.Start(1)
	s.Start(2)
	s.Start(3)
	s.Pause(3)

	assert.Equal(t, 2, s.Tick())
	assert.Equal(t, int64(1), s.Elapsed(1))
	assert.Equal(t, int64(1), s.Elapsed(2))
	assert.Equal(t, int64(0), s.Elapsed(3))
}

func TestToggle(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Toggle(7))
	assert.True(t, s.AnyRunning())
	assert.False(t, s.Toggle(7))
	assert.False(t, s.AnyRunning())
	assert.Equal(t, []int64{7}, s.IDs())
}

func TestSum(t *testing.T) {
	s := NewSet()
	s.Start(1)
	s.Start(2)
	s.Tick()
	s.Pause(2)
	s.Tick()

	assert.Equal(t, int64(3), s.Sum([]int64{1, 2}))
	assert.Equal(t, int64(2), s.Sum([]int64{1, 99}))
	assert.Equal(t, int64(0), s.Sum(nil))
}
