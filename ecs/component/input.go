package component

import "github.com/milk9111/platformer/movement"

// Input stores the raw device state read this frame.
type Input struct {
	Raw movement.RawInput
}

var InputComponent = NewComponent[Input]()
