package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/movement"
)

// Collision categories. Ground geometry is what the ground probe looks for.
const (
	LayerGround uint = movement.GroundLayer
	LayerPlayer uint = 1 << 1
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
)

// World owns the Chipmunk space. It integrates body velocities and answers
// the ground probe's overlap queries. The space is y-up.
type World struct {
	space     *cp.Space
	platforms []*cp.Shape
	bodies    []*Body
}

func NewWorld(gravityY float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravityY})
	return &World{space: space}
}

// Space returns the underlying Chipmunk space.
func (pw *World) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *World) Gravity() float64 {
	return pw.space.Gravity().Y
}

// Step integrates all bodies by dt seconds.
func (pw *World) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// AddPlatform adds a static box in the ground layer. x, y is the bottom-left
// corner.
func (pw *World) AddPlatform(x, y, width, height float64) *cp.Shape {
	bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, LayerGround, cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
	pw.platforms = append(pw.platforms, shape)
	return shape
}

// Platforms returns the bounding boxes of all static platforms.
func (pw *World) Platforms() []cp.BB {
	out := make([]cp.BB, 0, len(pw.platforms))
	for _, shape := range pw.platforms {
		out = append(out, shape.BB())
	}
	return out
}

// AddBody adds a non-rotating dynamic box centered at x, y in the player layer.
// The box has no friction so horizontal velocity is fully owned by the
// movement controller.
func (pw *World) AddBody(x, y, width, height, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: x, Y: y})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypePlayer)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, LayerPlayer, LayerGround))

	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	b := &Body{body: body, shape: shape, width: width, height: height}
	pw.bodies = append(pw.bodies, b)
	return b
}

// RemoveBody takes a body out of the simulation.
func (pw *World) RemoveBody(b *Body) {
	if pw == nil || b == nil {
		return
	}
	pw.space.RemoveShape(b.shape)
	pw.space.RemoveBody(b.body)
	for i, other := range pw.bodies {
		if other == b {
			pw.bodies = append(pw.bodies[:i], pw.bodies[i+1:]...)
			break
		}
	}
}

// OverlapCircle reports whether any shape whose category intersects mask lies
// within radius of center.
func (pw *World) OverlapCircle(center mgl64.Vec2, radius float64, mask uint) bool {
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
	info := pw.space.PointQueryNearest(cp.Vector{X: center.X(), Y: center.Y()}, radius, filter)
	return info != nil && info.Shape != nil
}
