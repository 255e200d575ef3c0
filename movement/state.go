package movement

import (
	"math"
	"sync/atomic"
)

// State is the mutable per-character movement state. It lives as long as the
// character does and is only touched by the controllers in this package.
type State struct {
	Grounded        bool
	CoyoteTimer     float64
	JumpBufferTimer float64

	// Jumping and HoldingJump are set on launch and never cleared by a landing.
	Jumping     bool
	HoldingJump bool

	// HorizontalRate is the smoothing filter's derivative memory, not a velocity.
	HorizontalRate float64

	axis axisSample
}

// Axis returns the most recently sampled horizontal axis.
func (s *State) Axis() float64 {
	return s.axis.Load()
}

// Snapshot is a copyable view of State for debug overlays and traces.
type Snapshot struct {
	Grounded        bool
	CoyoteTimer     float64
	JumpBufferTimer float64
	Jumping         bool
	HoldingJump     bool
	HorizontalRate  float64
	Axis            float64
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Grounded:        s.Grounded,
		CoyoteTimer:     s.CoyoteTimer,
		JumpBufferTimer: s.JumpBufferTimer,
		Jumping:         s.Jumping,
		HoldingJump:     s.HoldingJump,
		HorizontalRate:  s.HorizontalRate,
		Axis:            s.Axis(),
	}
}

// axisSample publishes the frame-rate axis to the fixed-rate tick as a single
// machine word so a reader never observes a torn value.
type axisSample struct {
	bits atomic.Uint64
}

func (a *axisSample) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}

func (a *axisSample) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}
