package sim

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/platformer/movement"
)

// TraceEntry records the player after one frame.
type TraceEntry struct {
	Frame      int
	Time       float64
	Dt         float64
	FixedSteps int
	Position   mgl64.Vec2
	Velocity   mgl64.Vec2
	Input      movement.InputSample
	Grounded   bool
	Launched   bool
	State      movement.Snapshot
}

func (e TraceEntry) String() string {
	flags := ""
	if e.Grounded {
		flags += "G"
	}
	if e.Launched {
		flags += "L"
	}
	if e.State.Jumping {
		flags += "J"
	}
	if e.State.HoldingJump {
		flags += "H"
	}
	return fmt.Sprintf("%5d t=%7.3f pos=(%7.3f,%7.3f) vel=(%7.3f,%7.3f) axis=%+.2f coyote=%+.3f buffer=%+.3f %s",
		e.Frame, e.Time, e.Position.X(), e.Position.Y(), e.Velocity.X(), e.Velocity.Y(),
		e.Input.Axis, e.State.CoyoteTimer, e.State.JumpBufferTimer, flags)
}

type Summary struct {
	Frames     int
	FixedSteps int
	Duration   float64
	Launches   int
	MaxHeight  float64
	FinalPos   mgl64.Vec2
	FinalVel   mgl64.Vec2
}

func Summarize(trace []TraceEntry) Summary {
	s := Summary{MaxHeight: math.Inf(-1)}
	for _, e := range trace {
		s.Frames++
		s.FixedSteps += e.FixedSteps
		s.Duration += e.Dt
		if e.Launched {
			s.Launches++
		}
		s.MaxHeight = math.Max(s.MaxHeight, e.Position.Y())
		s.FinalPos = e.Position
		s.FinalVel = e.Velocity
	}
	if s.Frames == 0 {
		s.MaxHeight = 0
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("frames=%d fixed=%d duration=%.3fs launches=%d max_height=%.3f final_pos=(%.3f,%.3f) final_vel=(%.3f,%.3f)",
		s.Frames, s.FixedSteps, s.Duration, s.Launches, s.MaxHeight,
		s.FinalPos.X(), s.FinalPos.Y(), s.FinalVel.X(), s.FinalVel.Y())
}
