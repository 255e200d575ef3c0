package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Body adapts a Chipmunk body to movement.Body.
type Body struct {
	body   *cp.Body
	shape  *cp.Shape
	width  float64
	height float64
}

func (b *Body) Velocity() mgl64.Vec2 {
	v := b.body.Velocity()
	return mgl64.Vec2{v.X, v.Y}
}

func (b *Body) SetVelocity(v mgl64.Vec2) {
	b.body.SetVelocity(v.X(), v.Y())
}

func (b *Body) Position() mgl64.Vec2 {
	p := b.body.Position()
	return mgl64.Vec2{p.X, p.Y}
}

func (b *Body) Size() (width, height float64) {
	return b.width, b.height
}
