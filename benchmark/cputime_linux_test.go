package benchmark

import (
	"runtime"
	"testing"
	"time"

	"github.com/tychoish/fun/assert"
	"github.com/tychoish/fun/assert/check"
)

func spin(d time.Duration) int {
	count := 0
	for start := time.Now(); time.Since(start) < d; {
		count++
	}
	return count
}

func TestThreadCPUTime(t *testing.T) {
	t.Run("AdvancesWithWork", func(t *testing.T) {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		before, err := threadCPUTime()
		assert.NotError(t, err)
		check.True(t, before >= 0)
		check.True(t, spin(20*time.Millisecond) > 0)
		after, err := threadCPUTime()
		assert.NotError(t, err)
		check.True(t, after > before)
	})
	t.Run("IgnoresSleep", func(t *testing.T) {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		before, err := threadCPUTime()
		assert.NotError(t, err)
		time.Sleep(50 * time.Millisecond)
		after, err := threadCPUTime()
		assert.NotError(t, err)
		check.True(t, after-before < 40*time.Millisecond)
	})
}
