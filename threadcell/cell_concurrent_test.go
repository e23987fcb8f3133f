package threadcell

import (
	"sync"
	"testing"
)

// recoverPanic runs f and returns the recovered panic value, or nil.
// Used to probe fatal-path behavior from worker goroutines, where a bare
// panic would kill the test process.
func recoverPanic(f func()) (r any) {
	defer func() { r = recover() }()
	f()
	return nil
}

// TestExclusivity verifies that a non-owning goroutine faults on the
// panic-path operations and gets the empty outcome on the query path.
func TestExclusivity(t *testing.T) {
	cell := New(42) // owned by the test goroutine

	done := make(chan struct{})
	go func() {
		defer close(done)

		if _, ok := cell.TryGet(); ok {
			t.Error("TryGet() by non-owner succeeded")
		}
		if cell.TryRelease() {
			t.Error("TryRelease() by non-owner = true")
		}
		if cell.TryAcquire() {
			t.Error("TryAcquire() on cell owned by other goroutine = true")
		}

		if r := recoverPanic(func() { _ = cell.Get() }); r != panicNotOwner {
			t.Errorf("Get() by non-owner: panic(%v), want panic(%q)", r, panicNotOwner)
		}
		if r := recoverPanic(cell.Release); r != panicNotOwner {
			t.Errorf("Release() by non-owner: panic(%v), want panic(%q)", r, panicNotOwner)
		}
		if r := recoverPanic(cell.Acquire); r != panicOwned {
			t.Errorf("Acquire() on owned cell: panic(%v), want panic(%q)", r, panicOwned)
		}
	}()
	<-done

	// The probing must not have disturbed ownership.
	if !cell.IsOwned() {
		t.Error("owner lost ownership during non-owner probing")
	}
	if got := *cell.Get(); got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
}

// TestTryAcquireSingleWinner verifies that among N goroutines racing
// TryAcquire on a disowned cell exactly one wins.
func TestTryAcquireSingleWinner(t *testing.T) {
	const numGoroutines = 32
	const numRounds = 50

	for round := 0; round < numRounds; round++ {
		cell := NewDisowned(round)
		results := make(chan bool, numGoroutines)

		var start, wg sync.WaitGroup
		start.Add(1)
		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				start.Wait()
				won := cell.TryAcquire()
				if won {
					// The winner must have full access before it releases.
					if got := *cell.Get(); got != round {
						t.Errorf("round %d: winner Get() = %d", round, got)
					}
				}
				results <- won
			}()
		}
		start.Done()
		wg.Wait()
		close(results)

		winners := 0
		for won := range results {
			if won {
				winners++
			}
		}
		if winners != 1 {
			t.Fatalf("round %d: %d winners, want exactly 1", round, winners)
		}
	}
}

// TestHandoff runs the full two-goroutine hand-off scenario:
// T1 owns 42, T2 cannot see it, T1 releases, T2 acquires and rewrites to
// 7, releases, T1 re-acquires and reads 7.
func TestHandoff(t *testing.T) {
	cell := New(42) // T1 = test goroutine

	if got := *cell.Get(); got != 42 {
		t.Fatalf("T1 Get() = %d, want 42", got)
	}

	step := make(chan struct{})
	done := make(chan struct{})

	go func() { // T2
		defer close(done)

		if _, ok := cell.TryGet(); ok {
			t.Error("T2 TryGet() succeeded while T1 owns the cell")
		}
		step <- struct{}{} // T2 probed

		<-step // T1 released
		if !cell.TryAcquire() {
			t.Error("T2 TryAcquire() on released cell = false")
			return
		}
		step <- struct{}{} // T2 acquired

		<-step // T1 probed
		*cell.Get() = 7
		cell.Release()
		step <- struct{}{} // T2 released
	}()

	<-step // T2 probed
	cell.Release()
	step <- struct{}{} // T1 released

	<-step // T2 acquired
	if _, ok := cell.TryGet(); ok {
		t.Error("T1 TryGet() succeeded after losing ownership")
	}
	step <- struct{}{} // T1 probed

	<-step // T2 released
	if !cell.TryAcquire() {
		t.Fatal("T1 TryAcquire() after T2 released = false")
	}
	if got := *cell.Get(); got != 7 {
		t.Errorf("T1 Get() after hand-off = %d, want 7", got)
	}
	<-done
}

// TestVisibilityAcrossHandoff verifies that writes made before a release
// are observed by the goroutine that subsequently acquires.
func TestVisibilityAcrossHandoff(t *testing.T) {
	const numHandoffs = 200

	cell := NewDisowned(make([]int, 64))
	handoff := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < numHandoffs; i++ {
			<-handoff
			if !cell.TryAcquire() {
				t.Errorf("hand-off %d: TryAcquire after release = false", i)
				return
			}
			buf := *cell.Get()
			for j, v := range buf {
				if v != i*len(buf)+j {
					t.Errorf("hand-off %d: buf[%d] = %d, want %d", i, j, v, i*len(buf)+j)
					return
				}
			}
			cell.Release()
			handoff <- struct{}{}
		}
	}()

	for i := 0; i < numHandoffs; i++ {
		cell.Acquire()
		buf := *cell.Get()
		for j := range buf {
			buf[j] = i*len(buf) + j
		}
		cell.Release()
		handoff <- struct{}{}
		<-handoff
	}
	<-done
}

// TestStealFromDeadOwner tests recovering a cell whose owner terminated
// without releasing.
func TestStealFromDeadOwner(t *testing.T) {
	cell := NewDisowned(0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		cell.Acquire()
		*cell.Get() = 1
		// Terminates while still owning the cell.
	}()
	<-done

	// The cell is stuck: the owner is gone and ordinary acquisition fails.
	if cell.TryAcquire() {
		t.Fatal("TryAcquire() succeeded on cell owned by dead goroutine")
	}

	cell.Steal()
	if !cell.IsOwned() {
		t.Fatal("IsOwned() = false after Steal")
	}
	if got := *cell.Get(); got != 1 {
		t.Errorf("Get() after Steal = %d, want 1", got)
	}
	cell.Release()
}

// TestCellHandedBetweenGoroutines verifies a cell pointer can cross
// goroutines in any ownership state.
func TestCellHandedBetweenGoroutines(t *testing.T) {
	owned := New(1)
	disowned := NewDisowned(2)

	result := make(chan int, 1)
	go func() {
		// Receiving the pointers is fine in either state; only access is
		// gated by ownership.
		disowned.Acquire()
		defer disowned.Release()
		if _, ok := owned.TryGet(); ok {
			t.Error("TryGet() on other goroutine's cell succeeded")
		}
		result <- *disowned.Get()
	}()

	if got := <-result; got != 2 {
		t.Errorf("worker read %d from disowned cell, want 2", got)
	}
}
