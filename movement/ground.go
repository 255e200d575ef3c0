package movement

import "github.com/go-gl/mathgl/mgl64"

// GroundProbe is the collision world's circle overlap query.
type GroundProbe interface {
	OverlapCircle(center mgl64.Vec2, radius float64, mask uint) bool
}

// GroundSensor forwards the configured probe parameters to a GroundProbe.
type GroundSensor struct {
	probe  GroundProbe
	offset mgl64.Vec2
	radius float64
	mask   uint
}

func NewGroundSensor(probe GroundProbe, cfg Config) (*GroundSensor, error) {
	if probe == nil {
		return nil, ErrNilGroundProbe
	}
	return &GroundSensor{
		probe:  probe,
		offset: cfg.GroundCheckOffset,
		radius: cfg.GroundCheckRadius,
		mask:   cfg.GroundMask,
	}, nil
}

// Sample reports ground contact for a body at position.
func (g *GroundSensor) Sample(position mgl64.Vec2) bool {
	return g.probe.OverlapCircle(g.Center(position), g.radius, g.mask)
}

// Center returns the probe center for a body at position.
func (g *GroundSensor) Center(position mgl64.Vec2) mgl64.Vec2 {
	return position.Add(g.offset)
}

func (g *GroundSensor) Radius() float64 {
	return g.radius
}
