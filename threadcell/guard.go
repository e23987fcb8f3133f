package threadcell

import (
	"sync/atomic"

	"github.com/kolkov/threadcell/internal/threadcell/goid"
)

// guard is the state shared by Guard and GuardMut: a back-reference to the
// cell, the identity of the goroutine that constructed the guard, and a
// released flag making Release idempotent.
//
// A guard does not pin ownership. The cell can be released explicitly (or
// stolen) underneath it, so both access and release re-check ownership
// against the constructing goroutine instead of trusting the state seen at
// construction time.
type guard[T any] struct {
	cell     *Cell[T]
	id       int64
	released atomic.Bool
}

func (g *guard[T]) get() *T {
	if g.released.Load() {
		panic(panicGuardDone)
	}
	if goid.Get() != g.id || !g.cell.state.HeldBy(g.id) {
		panic(panicNotOwner)
	}
	return &g.cell.value
}

func (g *guard[T]) release() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	// Clear the liveness bit before giving up ownership so the next owner
	// never observes a phantom live guard.
	g.cell.guarded.Store(false)
	// Try-release: when the cell was already released manually, or is now
	// owned by a different goroutine, there is nothing of ours to release
	// and the CAS leaves the cell untouched.
	g.cell.state.Release(g.id)
}

// beginGuard validates guard construction for the panic path and marks the
// cell guarded. Returns the caller's goroutine ID.
func (c *Cell[T]) beginGuard() int64 {
	id := goid.Get()
	if !c.state.HeldBy(id) {
		if c.state.Destroyed() {
			panic(panicDestroyed)
		}
		panic(panicNotOwner)
	}
	if !c.guarded.CompareAndSwap(false, true) {
		panic(panicGuardLive)
	}
	return id
}

// tryBeginGuard is the query-path counterpart of beginGuard.
func (c *Cell[T]) tryBeginGuard() (int64, bool) {
	id := goid.Get()
	if !c.state.HeldBy(id) || !c.guarded.CompareAndSwap(false, true) {
		return 0, false
	}
	return id, true
}

// Guard registers a release obligation for an owned cell with shared
// (read) access intent. Dereference with Get; release with Release,
// typically deferred.
//
// At most one guard of either kind may be live per cell.
type Guard[T any] struct {
	g guard[T]
}

// GuardMut is the exclusive (write) access flavor of Guard.
type GuardMut[T any] struct {
	g guard[T]
}

// Guard returns a shared-access guard for the cell.
//
// The calling goroutine must already own the cell — construction registers
// the cleanup obligation, it does not acquire. It panics when the caller
// is not the owner or when another guard is live for this cell.
func (c *Cell[T]) Guard() *Guard[T] {
	g := &Guard[T]{}
	g.g.cell = c
	g.g.id = c.beginGuard()
	return g
}

// TryGuard returns a shared-access guard for the cell, or (nil, false)
// when the caller is not the owner or another guard is live.
func (c *Cell[T]) TryGuard() (*Guard[T], bool) {
	id, ok := c.tryBeginGuard()
	if !ok {
		return nil, false
	}
	g := &Guard[T]{}
	g.g.cell = c
	g.g.id = id
	return g, true
}

// GuardMut returns an exclusive-access guard for the cell. Same contract
// as Guard.
func (c *Cell[T]) GuardMut() *GuardMut[T] {
	g := &GuardMut[T]{}
	g.g.cell = c
	g.g.id = c.beginGuard()
	return g
}

// TryGuardMut returns an exclusive-access guard for the cell, or
// (nil, false) when the caller is not the owner or another guard is live.
func (c *Cell[T]) TryGuardMut() (*GuardMut[T], bool) {
	id, ok := c.tryBeginGuard()
	if !ok {
		return nil, false
	}
	g := &GuardMut[T]{}
	g.g.cell = c
	g.g.id = id
	return g, true
}

// Get returns a pointer to the guarded value for reading. It panics when
// the guard has been released or the constructing goroutine no longer owns
// the cell (stale guard). Mutating through a shared guard is caller
// misuse; use GuardMut for write intent.
func (g *Guard[T]) Get() *T {
	return g.g.get()
}

// Release releases the cell exactly once. Calling Release again, or on a
// stale guard, is a no-op — in particular a stale guard never releases a
// cell now owned by a different goroutine. Intended use:
//
//	g := cell.Guard()
//	defer g.Release()
func (g *Guard[T]) Release() {
	g.g.release()
}

// Get returns a pointer to the guarded value. It panics when the guard has
// been released or the constructing goroutine no longer owns the cell.
func (g *GuardMut[T]) Get() *T {
	return g.g.get()
}

// Set replaces the guarded value. Same validity rules as Get.
func (g *GuardMut[T]) Set(v T) {
	*g.g.get() = v
}

// Release releases the cell exactly once; see Guard.Release.
func (g *GuardMut[T]) Release() {
	g.g.release()
}
