package sim

import "testing"

func TestClockStepCounts(t *testing.T) {
	cases := []struct {
		name      string
		fixed     float64
		maxDelta  float64
		frames    []float64
		wantSteps []int
		wantDt    []float64
	}{
		{"matched_rates", 0.02, 0.333, []float64{0.02, 0.02, 0.02}, []int{1, 1, 1}, []float64{0.02, 0.02, 0.02}},
		{"frame_faster_than_fixed", 0.02, 0.333, []float64{0.01, 0.01, 0.01, 0.01}, []int{0, 1, 0, 1}, []float64{0.01, 0.01, 0.01, 0.01}},
		{"frame_slower_than_fixed", 0.02, 0.333, []float64{0.05, 0.05}, []int{2, 3}, []float64{0.05, 0.05}},
		{"clamped_spike", 0.02, 0.1, []float64{1}, []int{5}, []float64{0.1}},
		{"negative_dt", 0.02, 0.333, []float64{-1}, []int{0}, []float64{0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock := NewClock(c.fixed, c.maxDelta)
			for i, dt := range c.frames {
				steps, frameDt := clock.Advance(dt)
				if steps != c.wantSteps[i] {
					t.Fatalf("frame %d: expected %d steps, got %d", i, c.wantSteps[i], steps)
				}
				if frameDt != c.wantDt[i] {
					t.Fatalf("frame %d: expected dt %v, got %v", i, c.wantDt[i], frameDt)
				}
			}
		})
	}
}

func TestClockFiftyHertzSecond(t *testing.T) {
	clock := NewClock(1.0/50, 0.333)
	total := 0
	for i := 0; i < 60; i++ {
		steps, _ := clock.Advance(1.0 / 60)
		total += steps
	}
	if total != 50 {
		t.Fatalf("expected 50 fixed ticks in one second, got %d", total)
	}
	if a := clock.Alpha(); a < 0 || a >= 1 {
		t.Fatalf("alpha out of range: %v", a)
	}
	clock.Reset()
	if clock.Elapsed() != 0 || clock.Alpha() != 0 {
		t.Fatalf("reset did not clear clock")
	}
}
