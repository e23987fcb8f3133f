// Package owner implements the atomic ownership word for a thread cell.
//
// The entire ownership state machine fits in a single int64 word:
//   - 0:  disowned, no goroutine holds the cell
//   - >0: owned, the value is the owning goroutine's ID
//   - -1: destroyed, the cell has been consumed or torn down
//
// Goroutine IDs handed out by the Go runtime are positive and never reused,
// so the two sentinel values can never collide with a real owner.
//
// Every transition is a single compare-and-swap; a failed CAS is reported
// immediately and never retried internally. Go's atomic operations are
// sequentially consistent, so a successful Release followed by another
// goroutine's successful Acquire carries the release/acquire visibility
// guarantee for everything the previous owner wrote.
package owner

import "sync/atomic"

const (
	// Disowned is the owner word of a cell no goroutine holds.
	Disowned int64 = 0

	// destroyed marks a consumed cell. Terminal: no transition leaves it.
	destroyed int64 = -1
)

// State is the ownership word. The zero value is a disowned state.
//
// State must not be copied after first use.
type State struct {
	word atomic.Int64
}

// Init sets the initial owner without a CAS. Only valid before the state
// is shared with other goroutines (i.e. during cell construction).
func (s *State) Init(id int64) {
	s.word.Store(id)
}

// Acquire attempts the disowned -> owned(id) transition.
// Returns false when the word was not Disowned (owned by anyone,
// including id itself, or destroyed).
func (s *State) Acquire(id int64) bool {
	return s.word.CompareAndSwap(Disowned, id)
}

// Release attempts the owned(id) -> disowned transition.
// Returns false when id is not the current holder.
func (s *State) Release(id int64) bool {
	return s.word.CompareAndSwap(id, Disowned)
}

// Steal forcibly installs id as the holder, regardless of the previous
// word. No-op when id already holds the state. The caller is responsible
// for guaranteeing the previous holder is no longer active.
func (s *State) Steal(id int64) {
	if s.word.Load() != id {
		s.word.Store(id)
	}
}

// Destroy attempts the transition into the terminal destroyed word.
// Permitted from owned(id) and from Disowned; returns false when another
// goroutine holds the state or it is already destroyed.
func (s *State) Destroy(id int64) bool {
	return s.word.CompareAndSwap(id, destroyed) ||
		s.word.CompareAndSwap(Disowned, destroyed)
}

// Holder returns the current owner word.
func (s *State) Holder() int64 {
	return s.word.Load()
}

// HeldBy reports whether id is the current holder.
func (s *State) HeldBy(id int64) bool {
	return s.word.Load() == id
}

// Destroyed reports whether the state reached the terminal word.
func (s *State) Destroyed() bool {
	return s.word.Load() == destroyed
}
