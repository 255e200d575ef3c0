package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the world-space center of an entity, y-up.
type Transform struct {
	Position mgl64.Vec2
}

var TransformComponent = NewComponent[Transform]()
