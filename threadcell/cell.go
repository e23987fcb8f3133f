package threadcell

import (
	"fmt"
	"sync/atomic"

	"github.com/kolkov/threadcell/internal/threadcell/goid"
	"github.com/kolkov/threadcell/internal/threadcell/owner"
)

// Panic messages follow the sync package convention: ownership violations
// are programming errors, reported as unrecoverable faults.
const (
	panicNotOwner  = "threadcell: goroutine does not own cell"
	panicOwned     = "threadcell: cell is already owned"
	panicDestroyed = "threadcell: use of destroyed cell"
	panicGuardLive = "threadcell: cell already has a live guard"
	panicGuardDone = "threadcell: use of released guard"
)

// Cell holds a value of type T that only the owning goroutine may access.
//
// The zero Cell is not useful; construct with New or NewDisowned. A Cell
// must not be copied after first use.
type Cell[T any] struct {
	state owner.State

	// guarded is set while a Guard or GuardMut is live for this cell.
	guarded atomic.Bool

	value T
}

// New returns a cell holding value, owned by the calling goroutine.
func New[T any](value T) *Cell[T] {
	c := &Cell[T]{value: value}
	c.state.Init(goid.Get())
	return c
}

// NewDisowned returns a cell holding value that no goroutine owns.
// Any goroutine may subsequently acquire it.
func NewDisowned[T any](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

// Acquire takes ownership of a disowned cell.
//
// It panics when the cell is already owned — by any goroutine, including
// the caller — or destroyed. A lost acquisition race reports the same way:
// contention resolves immediately, it is never waited out.
func (c *Cell[T]) Acquire() {
	if !c.state.Acquire(goid.Get()) {
		if c.state.Destroyed() {
			panic(panicDestroyed)
		}
		panic(panicOwned)
	}
}

// TryAcquire attempts to take ownership of the cell. It returns true when
// ownership was obtained or the caller already owned the cell, and false
// when another goroutine owns it or it is destroyed.
func (c *Cell[T]) TryAcquire() bool {
	id := goid.Get()
	return c.state.HeldBy(id) || c.state.Acquire(id)
}

// Release returns an owned cell to the disowned state, making it
// acquirable by any goroutine.
//
// It panics when the calling goroutine does not own the cell.
func (c *Cell[T]) Release() {
	if !c.state.Release(goid.Get()) {
		if c.state.Destroyed() {
			panic(panicDestroyed)
		}
		panic(panicNotOwner)
	}
}

// TryRelease releases the cell if the calling goroutine owns it.
// It reports whether the release happened.
func (c *Cell[T]) TryRelease() bool {
	return c.state.Release(goid.Get())
}

// Steal takes ownership of the cell unconditionally, bypassing the current
// owner. It is a no-op when the caller already owns the cell.
//
// Steal performs no safety check. The caller must guarantee that the
// previous owner is no longer accessing the cell — the intended use is
// recovering a cell left owned by a goroutine that terminated (for example
// after a panic). Stealing from a still-running owner is a data race and
// undefined behavior; note that the value may be in a half-updated state
// even when the steal itself is legitimate.
func (c *Cell[T]) Steal() {
	if c.state.Destroyed() {
		panic(panicDestroyed)
	}
	c.state.Steal(goid.Get())
}

// IsOwned reports whether the calling goroutine owns the cell.
func (c *Cell[T]) IsOwned() bool {
	return c.state.HeldBy(goid.Get())
}

// Get returns a pointer to the cell's value.
//
// It panics when the calling goroutine does not own the cell. The pointer
// is valid only while ownership is held; retaining it across a Release is
// caller misuse.
func (c *Cell[T]) Get() *T {
	if !c.state.HeldBy(goid.Get()) {
		if c.state.Destroyed() {
			panic(panicDestroyed)
		}
		panic(panicNotOwner)
	}
	return &c.value
}

// TryGet returns a pointer to the cell's value, or (nil, false) when the
// calling goroutine does not own the cell.
func (c *Cell[T]) TryGet() (*T, bool) {
	if !c.state.HeldBy(goid.Get()) {
		return nil, false
	}
	return &c.value, true
}

// AcquireGet acquires the cell if the caller does not already own it, then
// returns a pointer to the value.
//
// It panics when the cell is owned by another goroutine.
func (c *Cell[T]) AcquireGet() *T {
	if !c.IsOwned() {
		c.Acquire()
	}
	return &c.value
}

// TryAcquireGet acquires the cell if needed and returns a pointer to the
// value, or (nil, false) when another goroutine owns the cell.
func (c *Cell[T]) TryAcquireGet() (*T, bool) {
	if !c.TryAcquire() {
		return nil, false
	}
	return &c.value, true
}

// With acquires the cell, runs f on the value, and releases.
//
// The release happens even when f panics. It panics when the cell is
// already owned, including by the caller.
func (c *Cell[T]) With(f func(*T)) {
	c.Acquire()
	defer c.TryRelease()
	f(&c.value)
}

// TryWith acquires the cell if needed, runs f on the value, and releases.
// It returns false without running f when another goroutine owns the cell.
//
// Note that TryWith releases the cell afterwards even when the caller
// owned it before the call.
func (c *Cell[T]) TryWith(f func(*T)) bool {
	if !c.TryAcquire() {
		return false
	}
	defer c.TryRelease()
	f(&c.value)
	return true
}

// Take consumes the cell and returns its value. The cell is destroyed:
// every subsequent operation on it panics.
//
// It panics when the calling goroutine does not own the cell.
func (c *Cell[T]) Take() T {
	id := goid.Get()
	if !c.state.HeldBy(id) {
		if c.state.Destroyed() {
			panic(panicDestroyed)
		}
		panic(panicNotOwner)
	}
	v := c.value
	var zero T
	c.value = zero
	c.state.Destroy(id)
	return v
}

// Destroy tears the cell down, discarding its value. Permitted when the
// calling goroutine owns the cell or the cell is disowned; it panics when
// another goroutine owns it. Every subsequent operation on the cell
// panics.
func (c *Cell[T]) Destroy() {
	if !c.state.Destroy(goid.Get()) {
		if c.state.Destroyed() {
			panic(panicDestroyed)
		}
		panic(panicNotOwner)
	}
	// Sole reference to the value; drop it for the collector.
	var zero T
	c.value = zero
}

// String renders the value when the calling goroutine owns the cell and an
// opaque placeholder otherwise, so logging a cell from a non-owning
// goroutine never faults.
func (c *Cell[T]) String() string {
	if v, ok := c.TryGet(); ok {
		return fmt.Sprintf("Cell(%v)", *v)
	}
	return "Cell(<not owned>)"
}
