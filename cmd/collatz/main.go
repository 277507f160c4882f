// Command collatz searches, for every starting value from 2 up to -top,
// for the longest Collatz sequence, using a fixed-size worker pool racing
// over a shared task table the way its ancestor's pthread workers did. Its
// only purpose here is to put realistic concurrent load on the core
// allocator: every sequence buffer (and, in -mode=list, every intermediate
// list node) is allocated through the arena package instead of the Go heap.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/McNibbler/fast-malloc/internal/arena"
	"github.com/McNibbler/fast-malloc/internal/demo"
)

const (
	defaultThreads = 4
	maxStepsProbe  = 50
)

func collatzStep(n int64) int64 {
	if n%2 == 0 {
		return n / 2
	}
	return 3*n + 1
}

// vecTask tracks one starting value's in-progress sequence, guarded by its
// own mutex the way the original guarded dibs with a per-task pthread_mutex_t.
type vecTask struct {
	mu    sync.Mutex
	vals  *demo.IntVec
	steps int64 // -1 until the sequence reaches 1
	dibs  bool
}

func iterateVec(xs *demo.IntVec) *demo.IntVec {
	v := int64(0)
	for j := 0; v != 1 && j < maxStepsProbe; j++ {
		v = collatzStep(xs.Last())
		xs.Push(v)
	}
	return xs
}

func scanAndIterate(a *arena.Allocator, tasks []*vecTask, top int64) bool {
	doneCount := int64(0)
	base := rand.Int63n(top)

	for i0 := int64(1); i0 < top; i0++ {
		ii := 1 + (base+i0)%(top-1)
		task := tasks[ii]

		task.mu.Lock()
		skip := task.dibs
		if !skip {
			task.dibs = true
		}
		task.mu.Unlock()
		if skip {
			continue
		}

		xs := task.vals
		v := xs.Last()
		if v > 1 {
			grown := xs.Copy()
			xs.Free()
			task.vals = iterateVec(grown)
		} else {
			if task.steps == -1 {
				task.steps = int64(task.vals.Len() - 1)
			}
			doneCount++
		}

		task.mu.Lock()
		task.dibs = false
		task.mu.Unlock()
	}

	return doneCount == top-1
}

func runVecMode(a *arena.Allocator, threads int, top int64) (maxValue, maxSteps int64) {
	tasks := make([]*vecTask, top)
	for i := int64(0); i < top; i++ {
		v := demo.NewIntVec(a, 4)
		v.Push(i)
		tasks[i] = &vecTask{vals: v, steps: -1}
	}

	var g errgroup.Group
	for t := 0; t < threads; t++ {
		g.Go(func() error {
			for !scanAndIterate(a, tasks, top) {
			}
			return nil
		})
	}
	_ = g.Wait()

	for i := int64(0); i < top; i++ {
		if tasks[i].steps > maxSteps {
			maxValue = i
			maxSteps = tasks[i].steps
		}
		tasks[i].vals.Free()
	}
	return maxValue, maxSteps
}

// runListMode exercises the cons-list allocation shape instead of the
// growable array: it builds each sequence as a list prepended one step at a
// time, a smaller, many-fixed-size-nodes access pattern complementary to
// the array growth in runVecMode.
func runListMode(a *arena.Allocator, threads int, top int64) (maxValue, maxSteps int64) {
	results := make([]int64, top)
	var g errgroup.Group
	sem := make(chan struct{}, threads)

	for n := int64(2); n < top; n++ {
		n := n
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			xs := demo.Cons(a, n, demo.Cell{})
			cur := n
			for cur != 1 {
				cur = collatzStep(cur)
				xs = demo.Cons(a, cur, xs)
			}
			results[n] = demo.Count(xs) - 1
			demo.FreeList(a, xs)
			return nil
		})
	}
	_ = g.Wait()

	for i, steps := range results {
		if steps > maxSteps {
			maxValue = int64(i)
			maxSteps = steps
		}
	}
	return maxValue, maxSteps
}

func main() {
	threads := flag.Int("threads", defaultThreads, "number of concurrent workers")
	top := flag.Int64("top", 100000, "search starting values from 2 up to this bound")
	watermarkBytes := flag.Int("watermark", 0, "per-arena cache watermark in bytes before handoff to the reclaimer (0 keeps the allocator's default)")
	mode := flag.String("mode", "vec", `allocation pattern to exercise: "vec" (growable arrays) or "list" (cons-list nodes)`)
	flag.Parse()

	if *top < 2 {
		fmt.Fprintln(os.Stderr, "collatz: -top must be at least 2")
		os.Exit(1)
	}

	var opts []arena.Option
	if *watermarkBytes > 0 {
		opts = append(opts, arena.WithWatermark(uintptr(*watermarkBytes)))
	}
	a := arena.NewDefault(opts...)

	var maxValue, maxSteps int64
	switch *mode {
	case "vec":
		maxValue, maxSteps = runVecMode(a, *threads, *top)
	case "list":
		maxValue, maxSteps = runListMode(a, *threads, *top)
	default:
		fmt.Fprintf(os.Stderr, "collatz: unknown -mode %q\n", *mode)
		os.Exit(1)
	}

	fmt.Printf("Max steps is at %d: %d steps\n", maxValue, maxSteps)
}
