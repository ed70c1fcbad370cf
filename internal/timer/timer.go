// Package timer tracks per-task stopwatches.
//
// A timer is absent (never started or stopped), paused, or running. A single
// Tick advances every running timer by one second. Set is not safe for
// concurrent use; it is owned by the board session.
package timer

import "slices"

// State is a snapshot of one stopwatch.
type State struct {
	Elapsed int64 `json:"elapsed"` // seconds
	Running bool  `json:"running"`
}

// Set holds stopwatches keyed by task id.
type Set struct {
	entries map[int64]*State
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{entries: make(map[int64]*State)}
}

// Start runs the timer for id, creating it at zero if absent.
// A paused timer resumes from its frozen value.
func (s *Set) Start(id int64) {
	if st, ok := s.entries[id]; ok {
		st.Running = true
		return
	}
	s.entries[id] = &State{Running: true}
}

// Pause freezes a running timer. Absent timers are left absent.
func (s *Set) Pause(id int64) {
	if st, ok := s.entries[id]; ok {
		st.Running = false
	}
}

// Toggle starts a stopped or paused timer and pauses a running one.
// It reports whether the timer is running afterwards.
func (s *Set) Toggle(id int64) bool {
	if s.Running(id) {
		s.Pause(id)
		return false
	}
	s.Start(id)
	return true
}

// Stop discards the timer and its elapsed time.
func (s *Set) Stop(id int64) {
	delete(s.entries, id)
}

// Remove is Stop, named for the task-deleted case.
func (s *Set) Remove(id int64) {
	s.Stop(id)
}

// Tick advances every running timer by one second and returns how many advanced.
func (s *Set) Tick() int {
	n := 0
	for _, st := range s.entries {
		if st.Running {
			st.Elapsed++
			n++
		}
	}
	return n
}

// Get returns the state for id and whether a timer exists.
func (s *Set) Get(id int64) (State, bool) {
	st, ok := s.entries[id]
	if !ok {
		return State{}, false
	}
	return *st, true
}

// Elapsed returns the elapsed seconds for id, 0 when absent.
func (s *Set) Elapsed(id int64) int64 {
	if st, ok := s.entries[id]; ok {
		return st.Elapsed
	}
	return 0
}

// Running reports whether the timer for id is running.
func (s *Set) Running(id int64) bool {
	st, ok := s.entries[id]
	return ok && st.Running
}

// AnyRunning reports whether at least one timer is running.
func (s *Set) AnyRunning() bool {
	for _, st := range s.entries {
		if st.Running {
			return true
		}
	}
	return false
}

// Sum adds elapsed seconds over ids, counting paused and running timers.
func (s *Set) Sum(ids []int64) int64 {
	var total int64
	for _, id := range ids {
		total += s.Elapsed(id)
	}
	return total
}

// IDs returns the ids that currently have a timer, ascending.
func (s *Set) IDs() []int64 {
	ids := make([]int64, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of timers present.
func (s *Set) Len() int {
	return len(s.entries)
}
