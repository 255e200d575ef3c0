package system

import (
	"log/slog"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// MovementSystem runs the frame tick of every mover: input sampling, ground
// probe and the jump state machine.
type MovementSystem struct {
	logger *slog.Logger
}

func NewMovementSystem(logger *slog.Logger) *MovementSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &MovementSystem{logger: logger}
}

func (m *MovementSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.MoverComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, mover *component.Mover, input *component.Input, pb *component.PhysicsBody) {
			if mover.Controller == nil || pb.Body == nil || pb.World == nil {
				panic("movement system: mover " + e.String() + " missing controller or body")
			}

			prev := mover.Last
			res := mover.Controller.Update(dt, input.Raw, pb.Body.Position(), pb.World.Gravity())
			mover.Last = res

			switch {
			case res.Grounded && !prev.Grounded:
				w.Events().Push(ecs.Event{Type: ecs.EventLanded, Entity: e})
			case !res.Grounded && prev.Grounded:
				w.Events().Push(ecs.Event{Type: ecs.EventLeftGround, Entity: e})
			}

			if res.Launched {
				mover.Launches++
				w.Events().Push(ecs.Event{Type: ecs.EventJumpLaunched, Entity: e, Data: pb.Body.Velocity()})
				m.logger.Debug("jump launched", "entity", e.String(), "vy", pb.Body.Velocity().Y())
			}
		})
}
