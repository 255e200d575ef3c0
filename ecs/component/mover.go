package component

import "github.com/milk9111/platformer/movement"

// Mover drives an entity with a movement controller.
type Mover struct {
	Controller *movement.Controller
	Last       movement.FrameResult
	Launches   int
}

var MoverComponent = NewComponent[Mover]()
