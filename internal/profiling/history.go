package profiling

import "time"

// HistorySize is how many frames the rolling stats cover
const HistorySize = 60

// FrameHistory keeps rolling frame-time stats and a once-a-second FPS count
type FrameHistory struct {
	frames []time.Duration
	next   int

	counted   int
	windowEnd time.Time
	fps       int
}

// Record adds one frame that took d and ended at now
func (h *FrameHistory) Record(d time.Duration, now time.Time) {
	if len(h.frames) < HistorySize {
		h.frames = append(h.frames, d)
	} else {
		h.frames[h.next] = d
	}
	h.next = (h.next + 1) % HistorySize

	h.counted++
	if h.windowEnd.IsZero() {
		h.windowEnd = now.Add(time.Second)
		return
	}
	if !now.Before(h.windowEnd) {
		h.fps = h.counted
		h.counted = 0
		h.windowEnd = now.Add(time.Second)
	}
}

// FPS is the frame count of the last full second, 0 until one has passed
func (h *FrameHistory) FPS() int { return h.fps }

// Stats returns the min, average and max of the recorded frames
func (h *FrameHistory) Stats() (lo, avg, hi time.Duration) {
	if len(h.frames) == 0 {
		return 0, 0, 0
	}
	lo, hi = h.frames[0], h.frames[0]
	var total time.Duration
	for _, d := range h.frames {
		total += d
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, total / time.Duration(len(h.frames)), hi
}
