package movement

import "github.com/go-gl/mathgl/mgl64"

// FrameResult summarizes one frame tick.
type FrameResult struct {
	Input    InputSample
	Grounded bool
	Launched bool
}

// Controller wires the sampler, ground sensor and both motion controllers
// around a single body.
type Controller struct {
	cfg   Config
	state State

	sampler InputSampler
	sensor  *GroundSensor
	jump    JumpStateMachine
	horiz   HorizontalController
	body    Body
}

func NewController(cfg Config, body Body, probe GroundProbe) (*Controller, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	sensor, err := NewGroundSensor(probe, cfg)
	if err != nil {
		return nil, err
	}
	return &Controller{
		cfg:    cfg,
		sensor: sensor,
		jump:   NewJumpStateMachine(cfg),
		horiz:  NewHorizontalController(cfg),
		body:   body,
	}, nil
}

// Update runs the frame tick. position is the body position the ground probe
// offset is applied to.
func (c *Controller) Update(dt float64, raw RawInput, position mgl64.Vec2, gravityY float64) FrameResult {
	in := c.sampler.Sample(raw)
	grounded := c.sensor.Sample(position)
	launched := c.jump.Step(&c.state, c.body, in, grounded, gravityY, dt)
	c.state.axis.Store(in.Axis)
	return FrameResult{Input: in, Grounded: grounded, Launched: launched}
}

// FixedUpdate runs the physics-rate tick.
func (c *Controller) FixedUpdate(dt float64) {
	c.horiz.Step(&c.state, c.body, dt)
}

// Rebuild returns a controller with a new config that keeps this controller's
// state, edge history and body.
func (c *Controller) Rebuild(cfg Config, probe GroundProbe) (*Controller, error) {
	next, err := NewController(cfg, c.body, probe)
	if err != nil {
		return nil, err
	}
	next.sampler = c.sampler
	next.state.Grounded = c.state.Grounded
	next.state.CoyoteTimer = c.state.CoyoteTimer
	next.state.JumpBufferTimer = c.state.JumpBufferTimer
	next.state.Jumping = c.state.Jumping
	next.state.HoldingJump = c.state.HoldingJump
	next.state.HorizontalRate = c.state.HorizontalRate
	next.state.axis.Store(c.state.Axis())
	return next, nil
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) State() Snapshot {
	return c.state.Snapshot()
}

func (c *Controller) Body() Body {
	return c.body
}

// ProbeRadius is the radius the ground probe queries with.
func (c *Controller) ProbeRadius() float64 {
	return c.sensor.Radius()
}

// ProbeCenter returns where the ground probe is placed for a body at position.
func (c *Controller) ProbeCenter(position mgl64.Vec2) mgl64.Vec2 {
	return c.sensor.Center(position)
}
