package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/movement"
)

// InputSource supplies raw input for a frame. t is the simulated time at the
// start of the frame.
type InputSource interface {
	Read(frame int, t float64) movement.RawInput
}

// InputFunc adapts a function to InputSource.
type InputFunc func(frame int, t float64) movement.RawInput

func (f InputFunc) Read(frame int, t float64) movement.RawInput {
	return f(frame, t)
}

type InputSystem struct {
	source InputSource
	frame  int
	time   float64
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

// SetSource swaps the device or script feeding the world.
func (i *InputSystem) SetSource(source InputSource) {
	i.source = source
}

func (i *InputSystem) Frame() int {
	return i.frame
}

func (i *InputSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	var raw movement.RawInput
	if i.source != nil {
		raw = i.source.Read(i.frame, i.time)
	}
	i.frame++
	i.time += dt

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.Raw = raw
	})
}
