package game

import (
	"testing"
	"time"
)

func TestFPSLimiterPacesFrames(t *testing.T) {
	f := NewFPSLimiter()
	start := time.Now()
	for range 5 {
		f.Wait(200) // 5ms per frame
	}
	if elapsed := time.Since(start); elapsed < 24*time.Millisecond {
		t.Fatalf("5 frames at 200fps took %v, want >= 25ms", elapsed)
	}
}

func TestFPSLimiterUncapped(t *testing.T) {
	f := NewFPSLimiter()
	f.Wait(100)
	f.Wait(0)
	if !f.next.IsZero() {
		t.Fatal("uncapped wait should reset the schedule")
	}
	start := time.Now()
	for range 100 {
		f.Wait(0)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("uncapped waits took %v", elapsed)
	}
}

func TestFPSLimiterResyncsAfterHitch(t *testing.T) {
	now := time.Unix(0, 0)
	f := &FPSLimiter{now: func() time.Time { return now }}

	// Schedule is already a second behind the clock
	f.next = now.Add(-time.Second)
	f.Wait(100)
	if want := now.Add(10 * time.Millisecond); !f.next.Equal(want) {
		t.Fatalf("next = %v, want %v", f.next, want)
	}
}
