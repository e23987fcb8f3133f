// Package threadcell provides a cell whose value is accessible only by the
// goroutine that currently owns it.
//
// Unlike a mutex there is no wait queue: ownership is a cooperative,
// explicit hand-off. A goroutine that does not hold ownership and accesses
// the value panics; non-panicking Try variants report the same condition as
// a boolean or (pointer, ok) result instead. No operation ever blocks —
// acquisition contention resolves immediately into one winner and losers.
//
// # Quick Start
//
//	cell := threadcell.New(42) // owned by the creating goroutine
//
//	v := cell.Get() // *int
//	*v = 7
//	cell.Release()
//
//	go func() {
//		if cell.TryAcquire() {
//			defer cell.Release()
//			fmt.Println(*cell.Get()) // 7
//		}
//	}()
//
// # Ownership Model
//
// A cell is in one of three states: owned by exactly one goroutine,
// disowned, or destroyed. State lives in a single atomic word and changes
// only through compare-and-swap, so at most one of any number of concurrent
// acquirers can win. While a goroutine owns a cell, only that goroutine may
// read or write the value, release the cell, or destroy it. While a cell is
// disowned, any goroutine may acquire or destroy it, and none may touch the
// value.
//
// A successful Release followed by another goroutine's successful Acquire
// guarantees that the new owner observes every write the previous owner
// made before releasing.
//
// # Panics vs. Try Variants
//
// Every ownership rule violation is reported on two channels sharing one
// transition function: the plain operation panics (a programming error, in
// the style of sync.Mutex misuse), and the Try variant returns false or
// (nil, false) for callers to whom absence of ownership is an expected
// outcome.
//
// # Guards
//
// Guard and GuardMut tie release to scope exit. They are constructed by the
// current owner — construction registers the cleanup obligation, it does
// not acquire — and at most one guard may be live per cell:
//
//	cell.Acquire()
//	g := cell.GuardMut()
//	defer g.Release() // releases the cell exactly once, also on panic
//	g.Set(7)
//
// Guards do not prevent explicit release of the cell underneath them: a
// guard whose cell this goroutine no longer owns is stale, panics on
// access, and releases nothing on Release. The variant in which guard
// construction itself acquires is deliberately not provided; use
// AcquireGet or With for acquire-and-use patterns.
//
// # Recovery
//
// A cell owned by a goroutine that terminated without releasing is stuck.
// Steal forcibly re-owns such a cell. Steal performs no safety check: the
// caller asserts the previous owner is no longer running. Stealing from a
// live owner is a data race outside this package's protection envelope.
//
// # Payload Thread Safety
//
// A *Cell may be handed between goroutines in any state. The cell
// serializes access to the value through ownership only; whatever internal
// thread-safety the payload type itself needs remains the caller's concern.
package threadcell
