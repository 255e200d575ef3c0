package movement

import "github.com/go-gl/mathgl/mgl64"

// Body is the external physics body that owns and integrates velocity.
type Body interface {
	Velocity() mgl64.Vec2
	SetVelocity(v mgl64.Vec2)
}
