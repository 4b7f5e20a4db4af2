package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU buckets. Reset at the top of every frame.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCalls  = make(map[string]int)
)

// Track returns a stop function that adds the elapsed time to the named bucket.
// Usage: defer profiling.Track("renderer.surfaces")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		Add(name, time.Since(start))
	}
}

// Add records d under name directly
func Add(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	frameCalls[name]++
	mu.Unlock()
}

// ResetFrame clears the current frame's buckets
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCalls)
	mu.Unlock()
}

// SumWithPrefix totals every bucket whose name starts with prefix
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var total time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}

// Sample is one bucket of the current frame
type Sample struct {
	Name  string
	Total time.Duration
	Calls int
}

// Samples returns the current buckets, slowest first. Ties sort by name.
func Samples() []Sample {
	mu.Lock()
	out := make([]Sample, 0, len(frameTotals))
	for k, v := range frameTotals {
		out = append(out, Sample{Name: k, Total: v, Calls: frameCalls[k]})
	}
	mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopN formats the n slowest buckets.
// Example: "renderer.surfaces:4.2ms, texture.pump:0.3ms"
func TopN(n int) string {
	list := Samples()
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, s := range list[:n] {
		parts = append(parts, s.Name+":"+formatMs(s.Total))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0"
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "ms"
}
