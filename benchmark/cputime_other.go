//go:build !linux

package benchmark

import (
	"time"

	"github.com/Invicton-Labs/go-stackerr"
)

var processStart = time.Now()

// threadCPUTime falls back to the wall clock where per-thread usage is not
// available.
func threadCPUTime() (time.Duration, stackerr.Error) {
	return time.Since(processStart), nil
}
