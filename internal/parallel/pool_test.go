package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}

	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

func TestWorkerPool_CreateNegativeWorkers(t *testing.T) {
	pool := NewWorkerPool(-5)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numTasks := 100

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	if err := pool.ExecuteAll(work); err != nil {
		t.Fatalf("ExecuteAll: %v", err)
	}

	if counter.Load() != int64(numTasks) {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestWorkerPool_ExecuteAll_AllRows(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	// Row-partitioned accumulation, as used by the ellipse rasterizer.
	var mu sync.Mutex
	rows := make(map[int]int)
	workers := pool.Workers()

	work := make([]func(), workers)
	for k := range work {
		work[k] = func() {
			local := make(map[int]int)
			for y := 0; y < 20; y++ {
				if y%workers == k {
					local[y] = k
				}
			}
			mu.Lock()
			for y, owner := range local {
				rows[y] = owner
			}
			mu.Unlock()
		}
	}

	if err := pool.ExecuteAll(work); err != nil {
		t.Fatalf("ExecuteAll: %v", err)
	}

	if len(rows) != 20 {
		t.Fatalf("rows = %d, want 20", len(rows))
	}
	for y, owner := range rows {
		if owner != y%workers {
			t.Errorf("row %d owned by %d, want %d", y, owner, y%workers)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if err := pool.ExecuteAll(nil); err != nil {
		t.Errorf("ExecuteAll(nil) = %v", err)
	}
	if err := pool.ExecuteAll([]func(){}); err != nil {
		t.Errorf("ExecuteAll(empty) = %v", err)
	}
}

func TestWorkerPool_ExecuteAll_Single(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var executed atomic.Bool

	err := pool.ExecuteAll([]func(){
		func() { executed.Store(true) },
	})
	if err != nil {
		t.Fatalf("ExecuteAll: %v", err)
	}

	if !executed.Load() {
		t.Error("single task was not executed")
	}
}

func TestWorkerPool_ExecuteAll_Panic(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 8)
	for i := range work {
		work[i] = func() {
			if i == 3 {
				panic("boom")
			}
			counter.Add(1)
		}
	}

	err := pool.ExecuteAll(work)
	if !errors.Is(err, ErrTaskPanic) {
		t.Fatalf("ExecuteAll error = %v, want ErrTaskPanic", err)
	}
	if counter.Load() != 7 {
		t.Errorf("counter = %d, want 7 (other tasks still run)", counter.Load())
	}

	// The pool stays usable after a panicking task.
	if err := pool.ExecuteAll([]func(){func() {}}); err != nil {
		t.Errorf("ExecuteAll after panic: %v", err)
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(4)

	if !pool.IsRunning() {
		t.Error("Pool should be running before close")
	}

	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)

	pool.Close()
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_OperationsAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var executed atomic.Bool

	err := pool.ExecuteAll([]func(){
		func() { executed.Store(true) },
	})
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("ExecuteAll after Close = %v, want ErrPoolClosed", err)
	}

	time.Sleep(20 * time.Millisecond)

	if executed.Load() {
		t.Error("Work was executed on closed pool")
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numGoroutines := 10
	numTasksPerGoroutine := 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for g := 0; g < numGoroutines; g++ {
		go func() {
			defer wg.Done()

			work := make([]func(), numTasksPerGoroutine)
			for i := range work {
				work[i] = func() {
					counter.Add(1)
				}
			}

			if err := pool.ExecuteAll(work); err != nil {
				t.Errorf("ExecuteAll: %v", err)
			}
		}()
	}

	wg.Wait()

	expected := int64(numGoroutines * numTasksPerGoroutine)
	if counter.Load() != expected {
		t.Errorf("counter = %d, want %d", counter.Load(), expected)
	}
}

func TestWorkerPool_CloseDuringExecuteAll(t *testing.T) {
	for iter := 0; iter < 200; iter++ {
		pool := NewWorkerPool(2)

		var ran atomic.Int64
		work := make([]func(), 64)
		for i := range work {
			work[i] = func() { ran.Add(1) }
		}

		result := make(chan error, 1)
		go func() { result <- pool.ExecuteAll(work) }()
		pool.Close()

		select {
		case err := <-result:
			switch {
			case err == nil:
				if ran.Load() != int64(len(work)) {
					t.Fatalf("iteration %d: ran %d of %d items", iter, ran.Load(), len(work))
				}
			case !errors.Is(err, ErrPoolClosed):
				t.Fatalf("iteration %d: ExecuteAll = %v", iter, err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("iteration %d: ExecuteAll did not return after Close", iter)
		}
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var fastCount, slowCount atomic.Int64

	work := make([]func(), 100)
	for i := range work {
		if i%10 == 0 {
			work[i] = func() {
				time.Sleep(5 * time.Millisecond)
				slowCount.Add(1)
			}
		} else {
			work[i] = func() {
				fastCount.Add(1)
			}
		}
	}

	if err := pool.ExecuteAll(work); err != nil {
		t.Fatalf("ExecuteAll: %v", err)
	}

	if slowCount.Load() != 10 {
		t.Errorf("slowCount = %d, want 10", slowCount.Load())
	}
	if fastCount.Load() != 90 {
		t.Errorf("fastCount = %d, want 90", fastCount.Load())
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for i := 0; i < 5; i++ {
		pool := NewWorkerPool(4)

		work := make([]func(), 100)
		for j := range work {
			work[j] = func() {}
		}
		_ = pool.ExecuteAll(work)

		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	final := runtime.NumGoroutine()

	// Allow for some variance (test framework goroutines, etc.)
	if final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}
