package movement

import "github.com/milk9111/platformer/common"

// RawInput is what the input layer reports for one frame.
type RawInput struct {
	Axis     float64
	JumpDown bool
}

// InputSample is the normalized per-frame input consumed by the controllers.
type InputSample struct {
	Axis         float64
	JumpPressed  bool
	JumpHeld     bool
	JumpReleased bool
}

// InputSampler turns raw button levels into press/release edges.
type InputSampler struct {
	prevJump bool
}

func (s *InputSampler) Sample(raw RawInput) InputSample {
	out := InputSample{
		Axis:         common.Clamp(raw.Axis, -1, 1),
		JumpPressed:  raw.JumpDown && !s.prevJump,
		JumpHeld:     raw.JumpDown,
		JumpReleased: !raw.JumpDown && s.prevJump,
	}
	s.prevJump = raw.JumpDown
	return out
}
