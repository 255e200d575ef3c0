package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// HorizontalSystem runs the fixed tick of every mover.
type HorizontalSystem struct{}

func NewHorizontalSystem() *HorizontalSystem {
	return &HorizontalSystem{}
}

func (h *HorizontalSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.MoverComponent.Kind(), func(e ecs.Entity, mover *component.Mover) {
		if mover.Controller != nil {
			mover.Controller.FixedUpdate(dt)
		}
	})
}
