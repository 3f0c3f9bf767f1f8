package benchmark

import (
	"time"

	"github.com/Invicton-Labs/go-stackerr"
	"golang.org/x/sys/unix"
)

// threadCPUTime returns the user plus system CPU time consumed so far by the
// calling OS thread. Callers must hold the goroutine on its thread with
// runtime.LockOSThread for two readings to be comparable.
func threadCPUTime() (time.Duration, stackerr.Error) {
	var usage unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_THREAD, &usage); err != nil {
		return 0, stackerr.Wrap(err)
	}
	return time.Duration(usage.Utime.Nano() + usage.Stime.Nano()), nil
}
