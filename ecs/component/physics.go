package component

import "github.com/milk9111/platformer/physics"

// PhysicsBody links an entity to its body in the physics world.
type PhysicsBody struct {
	Body  *physics.Body
	World *physics.World
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
