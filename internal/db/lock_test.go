//go:build unix

package db

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWriteLockerAcquireRelease(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "course.db")
	locker := newWriteLocker(dbPath)

	if err := locker.acquire(500 * time.Millisecond); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	data, err := os.ReadFile(dbPath + ".lock")
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	if len(data) == 0 {
		t.Error("lock file should contain holder info")
	}

	if err := locker.release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}
}

func TestWriteLockerTimeout(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "course.db")

	first := newWriteLocker(dbPath)
	if err := first.acquire(500 * time.Millisecond); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	defer first.release()

	second := newWriteLocker(dbPath)
	if err := second.acquire(50 * time.Millisecond); err == nil {
		second.release()
		t.Error("second acquire should time out")
	}
}

func TestWriteLockerSerializesWriters(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "course.db")

	const numGoroutines = 5
	const numIterations = 10

	var counter int64
	var inCritical int64
	var wg sync.WaitGroup

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locker := newWriteLocker(dbPath)
			for j := 0; j < numIterations; j++ {
				if err := locker.acquire(5 * time.Second); err != nil {
					t.Errorf("acquire: %v", err)
					return
				}
				if n := atomic.AddInt64(&inCritical, 1); n != 1 {
					t.Errorf("%d goroutines inside the critical section", n)
				}
				atomic.AddInt64(&counter, 1)
				atomic.AddInt64(&inCritical, -1)
				locker.release()
			}
		}()
	}
	wg.Wait()

	if counter != numGoroutines*numIterations {
		t.Errorf("counter: got %d, want %d", counter, numGoroutines*numIterations)
	}
}
