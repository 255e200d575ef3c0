package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/sim"
)

const debugCircleSegments = 24

// camera maps y-up world units to screen pixels, centered on a target.
type camera struct {
	center mgl64.Vec2
	zoom   float64
}

func newCamera(target mgl64.Vec2) camera {
	return camera{center: target, zoom: common.PixelsPerUnit}
}

func (c camera) toScreen(x, y float64) (float32, float32) {
	sx := (x-c.center.X())*c.zoom + common.BaseWidth/2
	sy := common.BaseHeight/2 - (y-c.center.Y())*c.zoom
	return float32(sx), float32(sy)
}

func drawLevel(screen *ebiten.Image, pw *physics.World, cam camera) {
	for _, bb := range pw.Platforms() {
		x0, y0 := cam.toScreen(bb.L, bb.T)
		x1, y1 := cam.toScreen(bb.R, bb.B)
		vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, colornames.Slategray, false)
	}
	cp.DrawSpace(pw.Space(), &physicsDebugDrawer{screen: screen, cam: cam})
}

func drawPlayer(screen *ebiten.Image, p sim.PlayerState, cam camera) {
	fill := colornames.Skyblue
	if !p.Movement.Grounded {
		fill = colornames.Khaki
	}
	x0, y0 := cam.toScreen(p.Position.X()-p.Size.X()/2, p.Position.Y()+p.Size.Y()/2)
	x1, y1 := cam.toScreen(p.Position.X()+p.Size.X()/2, p.Position.Y()-p.Size.Y()/2)
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, fill, false)
}

// drawGroundProbe outlines the ground check circle in red.
func drawGroundProbe(screen *ebiten.Image, p sim.PlayerState, cam camera) {
	cx, cy := cam.toScreen(p.ProbeCenter.X(), p.ProbeCenter.Y())
	r := float32(p.ProbeRadius * cam.zoom)
	vector.StrokeCircle(screen, cx, cy, r, 1.5, colornames.Red, true)
}

func drawStateText(screen *ebiten.Image, p sim.PlayerState, header, status string) {
	m := p.Movement
	text := fmt.Sprintf("%s\nPos: (%.2f, %.2f)\nVel: (%.2f, %.2f)\nGrounded: %v\nCoyote: %.3f\nBuffer: %.3f\nJumping: %v  Holding: %v\nAxis: %+.2f\nLaunches: %d",
		header, p.Position.X(), p.Position.Y(), p.Velocity.X(), p.Velocity.Y(),
		m.Grounded, m.CoyoteTimer, m.JumpBufferTimer, m.Jumping, m.HoldingJump, m.Axis, p.Launches)
	if status != "" {
		text += "\n" + status
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// physicsDebugDrawer outlines Chipmunk shapes.
type physicsDebugDrawer struct {
	screen *ebiten.Image
	cam    camera
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.cam.toScreen(pos.X, pos.Y)
	vector.DrawFilledCircle(d.screen, x, y, float32(math.Max(size, 2)), toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.cam.toScreen(a.X, a.Y)
	x2, y2 := d.cam.toScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
