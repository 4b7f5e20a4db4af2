package game

import (
	"time"
)

// spinWindow is the tail of each frame spent busy-waiting instead of sleeping
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces frames with a hybrid sleep/spin wait
type FPSLimiter struct {
	next time.Time
	now  func() time.Time
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{now: time.Now}
}

// Wait blocks until the next frame is due at the given rate. A limit of
// zero or less disables the cap and resets the schedule.
func (f *FPSLimiter) Wait(limit int) {
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// After a hitch, resync instead of racing to catch up
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
