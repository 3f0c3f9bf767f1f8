// Package benchmark times LinkedList merge sorts over a range of input sizes
// and records the results as CSV rows of "size,cpu_seconds", where cpu_seconds
// is the CPU time the sorting thread spent in the sort.
package benchmark

import (
	"context"
	"encoding/csv"
	"io"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/Invicton-Labs/go-linkedlist/collections"
	"github.com/Invicton-Labs/go-linkedlist/log"
	"github.com/Invicton-Labs/go-stackerr"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// progressInterval is how many rows are written between progress log entries.
const progressInterval = 100

type Config struct {
	// Start is the first (smallest) input size.
	Start int
	// End is the exclusive upper bound for input sizes.
	End int
	// Step is the increment between input sizes.
	Step int
	// Seed seeds the shuffling of each input. Zero means a time-based seed,
	// which is reported in the Summary.
	Seed int64
}

// DefaultConfig returns sizes 100, 200, ..., 99900.
func DefaultConfig() Config {
	return Config{
		Start: 100,
		End:   100000,
		Step:  100,
	}
}

func (c Config) Validate() stackerr.Error {
	fields := map[string]any{
		"start": c.Start,
		"end":   c.End,
		"step":  c.Step,
	}
	if c.Step <= 0 {
		return stackerr.Errorf("benchmark step must be positive, got %d", c.Step).With(fields)
	}
	if c.Start < 0 {
		return stackerr.Errorf("benchmark start must not be negative, got %d", c.Start).With(fields)
	}
	if c.End < c.Start {
		return stackerr.Errorf("benchmark end (%d) is less than start (%d)", c.End, c.Start).With(fields)
	}
	return nil
}

// Sizes returns the input sizes the config describes, in ascending order.
func (c Config) Sizes() []int {
	if c.Step <= 0 || c.End <= c.Start {
		return []int{}
	}
	sizes := make([]int, 0, (c.End-c.Start+c.Step-1)/c.Step)
	for size := c.Start; size < c.End; size += c.Step {
		sizes = append(sizes, size)
	}
	return sizes
}

type Row struct {
	Size int
	// Elapsed is the CPU time of the sorting thread.
	Elapsed time.Duration
}

// Record formats the row as CSV fields: the size and the CPU seconds.
func (r Row) Record() []string {
	return []string{
		strconv.Itoa(r.Size),
		strconv.FormatFloat(r.Elapsed.Seconds(), 'f', -1, 64),
	}
}

type Summary struct {
	RunID   string
	Seed    int64
	Rows    int
	Total   time.Duration
	Slowest Row

	// Peak memory seen during the run, in MiB.
	PeakReservedMiB uint64
	PeakInUseMiB    uint64
}

func (s *Summary) add(row Row) {
	s.Rows++
	s.Total += row.Elapsed
	if s.Rows == 1 || row.Elapsed > s.Slowest.Elapsed {
		s.Slowest = row
	}
}

// timeSort sorts the list and returns the CPU time the calling thread spent
// doing it. The goroutine is pinned to its thread for the duration so that
// scheduling onto another thread can't skew the reading.
func timeSort(list collections.LinkedList[int]) (time.Duration, stackerr.Error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	start, err := threadCPUTime()
	if err != nil {
		return 0, err
	}
	list.MergeSort()
	end, err := threadCPUTime()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// Run builds a shuffled list for each size in the config, times its merge sort,
// and writes one CSV row per size to w. Lists are generated on a separate
// goroutine so the next input is ready when the previous sort finishes; only
// the MergeSort call itself is timed, in CPU time of the sorting thread.
func Run(ctx context.Context, cfg Config, w io.Writer) (Summary, stackerr.Error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	summary := Summary{
		RunID: uuid.New().String(),
		Seed:  seed,
	}
	logger := log.FromContext(ctx).With("run_id", summary.RunID, "seed", seed)
	logger.Infow("Starting merge sort benchmark", "start", cfg.Start, "end", cfg.End, "step", cfg.Step)

	csvWriter := csv.NewWriter(w)
	inputs := make(chan collections.LinkedList[int], 1)
	g, gctx := errgroup.WithContext(ctx)

	monitor := &memoryMonitor{}
	monitorCtx, stopMonitor := context.WithCancel(gctx)
	defer stopMonitor()
	g.Go(func() error {
		return monitor.run(monitorCtx, memorySampleInterval)
	})

	g.Go(func() error {
		defer close(inputs)
		r := rand.New(rand.NewSource(seed))
		for _, size := range cfg.Sizes() {
			if err := gctx.Err(); err != nil {
				return stackerr.Wrap(err)
			}
			values := collections.Range(0, size)
			r.Shuffle(len(values), func(i, j int) {
				values[i], values[j] = values[j], values[i]
			})
			select {
			case inputs <- collections.NewLinkedListFromSlice(values):
			case <-gctx.Done():
				return stackerr.Wrap(gctx.Err())
			}
		}
		return nil
	})

	g.Go(func() error {
		defer stopMonitor()
		for list := range inputs {
			size := list.Len()
			elapsed, err := timeSort(list)
			if err != nil {
				return err
			}
			row := Row{Size: size, Elapsed: elapsed}

			if !list.IsSorted() || list.Len() != size {
				return stackerr.Errorf("list of size %d is not sorted after merge sort", size).With(map[string]any{
					"size":   size,
					"length": list.Len(),
				})
			}
			if err := csvWriter.Write(row.Record()); err != nil {
				return stackerr.Wrap(err)
			}
			summary.add(row)
			if summary.Rows%progressInterval == 0 {
				logger.Infow("Benchmark progress", "rows", summary.Rows, "size", size, "elapsed", row.Elapsed, "heap_in_use_mib", bToMb(getMemUsage().HeapInuse))
			} else {
				logger.Debugw("Sorted list", "size", size, "elapsed", row.Elapsed)
			}
		}
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			return stackerr.Wrap(err)
		}
		return nil
	})

	err := g.Wait()
	summary.PeakReservedMiB, summary.PeakInUseMiB = monitor.peakMiB()
	if err != nil {
		return summary, stackerr.Wrap(err)
	}
	logger.Infow("Finished merge sort benchmark",
		"rows", summary.Rows,
		"total", summary.Total,
		"slowest_size", summary.Slowest.Size,
		"slowest", summary.Slowest.Elapsed,
		"peak_reserved_mib", summary.PeakReservedMiB,
		"peak_in_use_mib", summary.PeakInUseMiB,
	)
	return summary, nil
}

// WriteFile runs the benchmark and writes the rows to the file at path,
// truncating it if it exists.
func WriteFile(ctx context.Context, cfg Config, path string) (Summary, stackerr.Error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	f, cerr := os.Create(path)
	if cerr != nil {
		return Summary{}, stackerr.Wrap(cerr)
	}
	summary, err := Run(ctx, cfg, f)
	if combined := multierr.Append(err, f.Close()); combined != nil {
		return summary, stackerr.Wrap(combined)
	}
	return summary, nil
}
