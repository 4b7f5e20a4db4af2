package profiling

import (
	"testing"
	"time"
)

func TestTopNOrdersBySlowest(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	Add("texture.pump", 300*time.Microsecond)
	Add("renderer.surfaces", 4200*time.Microsecond)
	Add("input.update", 2*time.Millisecond)
	Add("renderer.surfaces", 0)

	if got, want := TopN(2), "renderer.surfaces:4.2ms, input.update:2ms"; got != want {
		t.Fatalf("TopN(2) = %q, want %q", got, want)
	}
	if got, want := TopN(10), "renderer.surfaces:4.2ms, input.update:2ms, texture.pump:0.3ms"; got != want {
		t.Fatalf("TopN(10) = %q, want %q", got, want)
	}

	samples := Samples()
	if samples[0].Calls != 2 {
		t.Fatalf("calls = %d, want 2", samples[0].Calls)
	}
}

func TestResetFrame(t *testing.T) {
	Add("x", time.Millisecond)
	ResetFrame()
	if got := TopN(5); got != "" {
		t.Fatalf("TopN after reset = %q", got)
	}
}

func TestTrack(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	stop := Track("sleep")
	time.Sleep(2 * time.Millisecond)
	stop()

	s := Samples()
	if len(s) != 1 || s[0].Name != "sleep" || s[0].Total < 2*time.Millisecond {
		t.Fatalf("samples = %+v", s)
	}
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	Add("renderer.surfaces", 3*time.Millisecond)
	Add("renderer.hud", time.Millisecond)
	Add("texture.Pump", 5*time.Millisecond)

	if got := SumWithPrefix("renderer."); got != 4*time.Millisecond {
		t.Fatalf("renderer total = %v", got)
	}
	if got := SumWithPrefix("missing"); got != 0 {
		t.Fatalf("missing prefix total = %v", got)
	}
}
