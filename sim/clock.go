package sim

// stepEpsilon tolerates accumulator drift when dt is a multiple of the fixed
// step.
const stepEpsilon = 1e-9

// Clock decouples the variable frame tick from the fixed physics tick.
type Clock struct {
	FixedStep     float64
	MaxFrameDelta float64

	accumulator float64
	elapsed     float64
}

func NewClock(fixedStep, maxFrameDelta float64) *Clock {
	return &Clock{FixedStep: fixedStep, MaxFrameDelta: maxFrameDelta}
}

// Advance consumes one frame of dt seconds and returns how many fixed ticks
// should run before the frame tick, plus the clamped frame dt.
func (c *Clock) Advance(dt float64) (steps int, frameDt float64) {
	if dt < 0 {
		dt = 0
	}
	if c.MaxFrameDelta > 0 && dt > c.MaxFrameDelta {
		dt = c.MaxFrameDelta
	}
	c.elapsed += dt
	if c.FixedStep <= 0 {
		return 0, dt
	}

	c.accumulator += dt
	for c.accumulator+stepEpsilon >= c.FixedStep {
		c.accumulator -= c.FixedStep
		steps++
	}
	if c.accumulator < 0 {
		c.accumulator = 0
	}
	return steps, dt
}

// Elapsed is the total simulated time.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Alpha is how far the simulation is between fixed ticks, in [0, 1).
func (c *Clock) Alpha() float64 {
	if c.FixedStep <= 0 {
		return 0
	}
	return c.accumulator / c.FixedStep
}

func (c *Clock) Reset() {
	c.accumulator = 0
	c.elapsed = 0
}
