package benchmark

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	concurrency "github.com/Invicton-Labs/go-concurrency"
	"github.com/Invicton-Labs/go-stackerr"
)

const memorySampleInterval = 10 * time.Millisecond

func getMemUsage() runtime.MemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

// memoryMonitor tracks the peak memory usage seen while it runs.
type memoryMonitor struct {
	lock        sync.Mutex
	maxReserved uint64
	maxInUse    uint64
}

func (m *memoryMonitor) sample() {
	mem := getMemUsage()
	m.lock.Lock()
	defer m.lock.Unlock()
	if mem.Sys > m.maxReserved {
		m.maxReserved = mem.Sys
	}
	if mem.HeapInuse+mem.StackInuse > m.maxInUse {
		m.maxInUse = mem.HeapInuse + mem.StackInuse
	}
}

// run samples once per interval until ctx is done, plus once at the start and
// once at the end. Cancellation of ctx is the normal way to stop it and is not
// reported as an error.
func (m *memoryMonitor) run(ctx context.Context, interval time.Duration) stackerr.Error {
	m.sample()
	executor := concurrency.ContinuousFinal(
		ctx, concurrency.ContinuousFinalInput{
			Name: "memory-monitor",
			Func: func(ctx context.Context, metadata *concurrency.RoutineFunctionMetadata) (err stackerr.Error) {
				m.sample()
				return nil
			},
		}, interval)
	err := executor.Wait()
	m.sample()
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// peakMiB returns the largest reserved and in-use (heap plus stack) sizes seen.
func (m *memoryMonitor) peakMiB() (maxReserved uint64, maxInUse uint64) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return bToMb(m.maxReserved), bToMb(m.maxInUse)
}
