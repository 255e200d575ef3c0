package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// PhysicsSystem steps the physics world and copies body positions into
// transforms.
type PhysicsSystem struct {
	world *physics.World
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (p *PhysicsSystem) World() *physics.World {
	return p.world
}

func (p *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if p.world == nil {
		return
	}
	p.world.Step(dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
			if pb.Body != nil {
				t.Position = pb.Body.Position()
			}
		})
}
