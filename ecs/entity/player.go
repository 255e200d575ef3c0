package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

func NewPlayer(w *ecs.World, pw *physics.World, spec prefabs.PlayerSpec) (ecs.Entity, error) {
	return NewPlayerAt(w, pw, spec, 0, 0)
}

// NewPlayerAt spawns a player body centered at x, y with a movement
// controller built from spec.
func NewPlayerAt(w *ecs.World, pw *physics.World, spec prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	if w == nil || pw == nil {
		return 0, fmt.Errorf("player: nil world")
	}

	body := pw.AddBody(x, y, spec.Collider.Width, spec.Collider.Height, spec.Collider.Mass)
	ctrl, err := movement.NewController(spec.Movement.Config(), body, pw)
	if err != nil {
		pw.RemoveBody(body)
		return 0, fmt.Errorf("player: controller: %w", err)
	}

	e := ecs.CreateEntity(w)
	add := func(err error) error {
		if err != nil {
			pw.RemoveBody(body)
			ecs.DestroyEntity(w, e)
		}
		return err
	}
	if err := add(ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := add(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: body.Position()})); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := add(ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := add(ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, World: pw})); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := add(ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Controller: ctrl})); err != nil {
		return 0, fmt.Errorf("player: add mover: %w", err)
	}
	return e, nil
}

// Retune rebuilds the player's controller with cfg, keeping its movement
// state.
func Retune(w *ecs.World, e ecs.Entity, cfg movement.Config) error {
	mover, ok := ecs.Get(w, e, component.MoverComponent.Kind())
	if !ok || mover.Controller == nil {
		return fmt.Errorf("player: %s has no mover", e)
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.World == nil {
		return fmt.Errorf("player: %s has no physics world: %w", e, movement.ErrNilGroundProbe)
	}
	next, err := mover.Controller.Rebuild(cfg, pb.World)
	if err != nil {
		return fmt.Errorf("player: rebuild: %w", err)
	}
	mover.Controller = next
	return nil
}
