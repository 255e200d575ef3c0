package movement

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type testBody struct {
	v mgl64.Vec2
}

func (b *testBody) Velocity() mgl64.Vec2     { return b.v }
func (b *testBody) SetVelocity(v mgl64.Vec2) { b.v = v }

type testProbe struct {
	grounded bool
	calls    int
	center   mgl64.Vec2
	radius   float64
	mask     uint
}

func (p *testProbe) OverlapCircle(center mgl64.Vec2, radius float64, mask uint) bool {
	p.calls++
	p.center = center
	p.radius = radius
	p.mask = mask
	return p.grounded
}

const gravity = -9.81

func newTestController(t *testing.T, cfg Config) (*Controller, *testBody, *testProbe) {
	t.Helper()
	body := &testBody{}
	probe := &testProbe{}
	c, err := NewController(cfg, body, probe)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c, body, probe
}

// binaryConfig uses timer values that are exact multiples of a 1/64 s tick.
func binaryConfig() Config {
	cfg := DefaultConfig()
	cfg.CoyoteTime = 0.25
	cfg.JumpBufferTime = 0.125
	return cfg
}

const binaryDT = 1.0 / 64.0

func TestInputSamplerEdges(t *testing.T) {
	cases := []struct {
		name string
		seq  []bool
		want []InputSample
	}{
		{
			name: "press_hold_release",
			seq:  []bool{false, true, true, false, false},
			want: []InputSample{
				{},
				{JumpPressed: true, JumpHeld: true},
				{JumpHeld: true},
				{JumpReleased: true},
				{},
			},
		},
		{
			name: "held_from_start_is_a_press",
			seq:  []bool{true, true},
			want: []InputSample{
				{JumpPressed: true, JumpHeld: true},
				{JumpHeld: true},
			},
		},
		{
			name: "tap_every_other_tick",
			seq:  []bool{true, false, true},
			want: []InputSample{
				{JumpPressed: true, JumpHeld: true},
				{JumpReleased: true},
				{JumpPressed: true, JumpHeld: true},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s InputSampler
			for i, down := range c.seq {
				got := s.Sample(RawInput{JumpDown: down})
				if got != c.want[i] {
					t.Fatalf("tick %d: expected %+v, got %+v", i, c.want[i], got)
				}
			}
		})
	}
}

func TestInputSamplerClampsAxis(t *testing.T) {
	cases := []struct {
		raw, want float64
	}{
		{-3, -1}, {-1, -1}, {-0.4, -0.4}, {0, 0}, {0.75, 0.75}, {1, 1}, {2.5, 1},
	}
	var s InputSampler
	for _, c := range cases {
		if got := s.Sample(RawInput{Axis: c.raw}).Axis; got != c.want {
			t.Fatalf("axis %v: expected %v, got %v", c.raw, c.want, got)
		}
	}
}

func TestNewControllerPreconditions(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := NewController(cfg, &testBody{}, nil); !errors.Is(err, ErrNilGroundProbe) {
		t.Fatalf("expected ErrNilGroundProbe, got %v", err)
	}
	if _, err := NewController(cfg, nil, &testProbe{}); !errors.Is(err, ErrNilBody) {
		t.Fatalf("expected ErrNilBody, got %v", err)
	}
	if _, err := NewGroundSensor(nil, cfg); !errors.Is(err, ErrNilGroundProbe) {
		t.Fatalf("expected ErrNilGroundProbe from sensor, got %v", err)
	}
}

func TestGroundSensorForwardsProbeParameters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GroundCheckRadius = 0.3
	cfg.GroundCheckOffset = mgl64.Vec2{0.1, -1}
	cfg.GroundMask = 1<<0 | 1<<3

	c, _, probe := newTestController(t, cfg)
	probe.grounded = true
	res := c.Update(0.02, RawInput{}, mgl64.Vec2{4, 2}, gravity)

	if !res.Grounded || !c.State().Grounded {
		t.Fatalf("expected grounded result and state")
	}
	if probe.calls != 1 {
		t.Fatalf("expected exactly one probe per frame, got %d", probe.calls)
	}
	if !probe.center.ApproxEqual(mgl64.Vec2{4.1, 1}) {
		t.Fatalf("unexpected probe center %v", probe.center)
	}
	if probe.radius != 0.3 || probe.mask != cfg.GroundMask {
		t.Fatalf("unexpected probe radius/mask %v/%v", probe.radius, probe.mask)
	}
	if c.ProbeRadius() != probe.radius || !c.ProbeCenter(mgl64.Vec2{4, 2}).ApproxEqual(probe.center) {
		t.Fatalf("reported ground check %v/%v differs from queried %v/%v", c.ProbeCenter(mgl64.Vec2{4, 2}), c.ProbeRadius(), probe.center, probe.radius)
	}
}

func TestLaunchOverwritesVerticalVelocity(t *testing.T) {
	for _, prior := range []float64{-12, -0.5, 0, 3, 20} {
		c, body, probe := newTestController(t, DefaultConfig())
		probe.grounded = true
		body.v = mgl64.Vec2{1.5, prior}

		res := c.Update(0.02, RawInput{JumpDown: true}, mgl64.Vec2{}, gravity)
		if !res.Launched {
			t.Fatalf("prior %v: expected launch", prior)
		}
		if body.v.Y() != 7.0 {
			t.Fatalf("prior %v: expected vy exactly 7, got %v", prior, body.v.Y())
		}
		if body.v.X() != 1.5 {
			t.Fatalf("prior %v: launch must not touch vx, got %v", prior, body.v.X())
		}
		st := c.State()
		if !st.Jumping || !st.HoldingJump || st.JumpBufferTimer != 0 {
			t.Fatalf("prior %v: unexpected state after launch %+v", prior, st)
		}
	}
}

func TestSinglePressLaunchesOnce(t *testing.T) {
	c, body, probe := newTestController(t, DefaultConfig())
	probe.grounded = true

	launches := 0
	for i := 0; i < 120; i++ {
		// Stay pinned to the ground so launch conditions keep holding.
		body.v = mgl64.Vec2{}
		if c.Update(0.016, RawInput{JumpDown: true}, mgl64.Vec2{}, gravity).Launched {
			launches++
		}
	}
	if launches != 1 {
		t.Fatalf("expected a single launch for one press edge, got %d", launches)
	}
	if st := c.State(); st.CoyoteTimer <= 0 {
		t.Fatalf("launch must not consume coyote time, got %v", st.CoyoteTimer)
	}
}

func TestJumpBufferWindow(t *testing.T) {
	cases := []struct {
		name       string
		airborne   int
		wantLaunch bool
	}{
		{"pressed_just_before_landing", 1, true},
		{"pressed_inside_buffer", 7, true},
		{"pressed_exactly_buffer_early", 8, false},
		{"pressed_too_early", 12, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, body, probe := newTestController(t, binaryConfig())

			// Press while airborne with no coyote time left.
			if c.Update(binaryDT, RawInput{JumpDown: true}, mgl64.Vec2{}, 0).Launched {
				t.Fatalf("launched while airborne without coyote time")
			}
			for i := 1; i < tc.airborne; i++ {
				c.Update(binaryDT, RawInput{JumpDown: true}, mgl64.Vec2{}, 0)
			}

			probe.grounded = true
			body.v = mgl64.Vec2{}
			res := c.Update(binaryDT, RawInput{JumpDown: true}, mgl64.Vec2{}, 0)
			if res.Launched != tc.wantLaunch {
				t.Fatalf("expected launch=%v after %d airborne ticks", tc.wantLaunch, tc.airborne)
			}
		})
	}
}

func TestCoyoteWindow(t *testing.T) {
	cases := []struct {
		name       string
		airborne   int
		wantLaunch bool
	}{
		{"right_after_leaving", 1, true},
		{"inside_coyote", 15, true},
		{"coyote_exhausted", 16, false},
		{"long_fall", 40, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, body, probe := newTestController(t, binaryConfig())
			probe.grounded = true
			c.Update(binaryDT, RawInput{}, mgl64.Vec2{}, 0)

			probe.grounded = false
			for i := 1; i < tc.airborne; i++ {
				c.Update(binaryDT, RawInput{}, mgl64.Vec2{}, 0)
			}
			body.v = mgl64.Vec2{}
			res := c.Update(binaryDT, RawInput{JumpDown: true}, mgl64.Vec2{}, 0)
			if res.Launched != tc.wantLaunch {
				t.Fatalf("expected launch=%v on airborne tick %d", tc.wantLaunch, tc.airborne)
			}
		})
	}
}

func TestCoyoteExpiredScenario(t *testing.T) {
	c, _, probe := newTestController(t, DefaultConfig())
	probe.grounded = true
	c.Update(0.02, RawInput{}, mgl64.Vec2{}, gravity)

	probe.grounded = false
	for elapsed := 0.0; elapsed < 0.3; elapsed += 0.02 {
		c.Update(0.02, RawInput{}, mgl64.Vec2{}, gravity)
	}
	if c.Update(0.02, RawInput{JumpDown: true}, mgl64.Vec2{}, gravity).Launched {
		t.Fatalf("expected no launch once coyote time has expired")
	}
}

func TestZeroJumpBufferNeverLaunches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JumpBufferTime = 0
	c, _, probe := newTestController(t, cfg)
	probe.grounded = true
	if c.Update(0.02, RawInput{JumpDown: true}, mgl64.Vec2{}, gravity).Launched {
		t.Fatalf("a zero jump buffer leaves no window to launch in")
	}
}

func TestGravityScaling(t *testing.T) {
	const dt = 0.02
	cfg := DefaultConfig()
	cases := []struct {
		name  string
		vy    float64
		held  bool
		delta float64
	}{
		{"rising_held", 5, true, 0},
		{"rising_released", 5, false, gravity * (cfg.LowJumpMultiplier - 1) * dt},
		{"falling_held", -2, true, gravity * (cfg.FallMultiplier - 1) * dt},
		{"falling_released", -2, false, gravity * (cfg.FallMultiplier - 1) * dt},
		{"at_rest", 0, false, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, body, _ := newTestController(t, cfg)
			// Prime the edge detector so this tick is a plain hold or no input.
			c.sampler.prevJump = tc.held
			body.v = mgl64.Vec2{0, tc.vy}
			c.Update(dt, RawInput{JumpDown: tc.held}, mgl64.Vec2{}, gravity)
			want := tc.vy + tc.delta
			if body.v.Y() != want {
				t.Fatalf("expected vy %v, got %v", want, body.v.Y())
			}
		})
	}
}

func TestReleaseCutsJumpShort(t *testing.T) {
	const dt = 0.01
	peak := func(releaseAfter int) float64 {
		c, body, probe := newTestController(t, DefaultConfig())
		probe.grounded = true
		y, top := 0.0, 0.0
		for i := 0; i < 400; i++ {
			down := i < releaseAfter
			c.Update(dt, RawInput{JumpDown: down}, mgl64.Vec2{}, gravity)
			probe.grounded = false
			// Stand-in integrator: world gravity plus position update.
			body.v[1] += gravity * dt
			y += body.v.Y() * dt
			if y > top {
				top = y
			}
		}
		return top
	}

	held := peak(400)
	tapped := peak(3)
	if tapped >= held {
		t.Fatalf("expected early release to lower the apex, held=%v tapped=%v", held, tapped)
	}
}

func TestHoldingJumpClearedOnRelease(t *testing.T) {
	c, _, probe := newTestController(t, DefaultConfig())
	probe.grounded = true
	c.Update(0.02, RawInput{JumpDown: true}, mgl64.Vec2{}, gravity)
	c.Update(0.02, RawInput{JumpDown: false}, mgl64.Vec2{}, gravity)
	st := c.State()
	if st.HoldingJump {
		t.Fatalf("expected HoldingJump cleared after release")
	}
	if !st.Jumping {
		t.Fatalf("Jumping is never reset by this controller")
	}
}

func TestHorizontalApproachesTarget(t *testing.T) {
	const dt = 1.0 / 50.0
	c, body, probe := newTestController(t, DefaultConfig())
	probe.grounded = true
	c.Update(dt, RawInput{Axis: 1}, mgl64.Vec2{}, 0)

	prev := 0.0
	reachedAt := -1
	for i := 0; i < 50; i++ {
		c.FixedUpdate(dt)
		vx := body.v.X()
		if vx < prev {
			t.Fatalf("tick %d: velocity decreased %v -> %v", i, prev, vx)
		}
		if vx > 7 {
			t.Fatalf("tick %d: overshot target, vx=%v", i, vx)
		}
		if reachedAt < 0 && vx >= 0.99*7 {
			reachedAt = i
		}
		prev = vx
	}
	if reachedAt < 0 {
		t.Fatalf("expected vx >= 99%% of 7 within one second, got %v", prev)
	}
	if reachedAt == 0 {
		t.Fatalf("velocity snapped to target instead of smoothing")
	}
}

func TestHorizontalDeceleratesToRest(t *testing.T) {
	const dt = 1.0 / 50.0
	for _, dir := range []float64{1, -1} {
		c, body, probe := newTestController(t, DefaultConfig())
		probe.grounded = true
		c.Update(dt, RawInput{Axis: dir}, mgl64.Vec2{}, 0)
		for i := 0; i < 100; i++ {
			c.FixedUpdate(dt)
		}

		c.Update(dt, RawInput{Axis: 0}, mgl64.Vec2{}, 0)
		prev := body.v.X()
		for i := 0; i < 200; i++ {
			c.FixedUpdate(dt)
			vx := body.v.X()
			if vx*dir < 0 {
				t.Fatalf("dir %v tick %d: crossed zero, vx=%v", dir, i, vx)
			}
			if abs(vx) > abs(prev) {
				t.Fatalf("dir %v tick %d: speed grew %v -> %v", dir, i, prev, vx)
			}
			prev = vx
		}
		if prev != 0 {
			t.Fatalf("dir %v: expected rest, got %v", dir, prev)
		}
	}
}

func TestFixedTickUsesLatestAxisSample(t *testing.T) {
	c, body, _ := newTestController(t, DefaultConfig())
	c.FixedUpdate(0.02)
	if body.v.X() != 0 {
		t.Fatalf("no axis sampled yet, expected rest, got %v", body.v.X())
	}
	c.Update(0.016, RawInput{Axis: -1}, mgl64.Vec2{}, 0)
	c.FixedUpdate(0.02)
	if body.v.X() >= 0 {
		t.Fatalf("expected leftward motion from latest sample, got %v", body.v.X())
	}
	if got := c.State().Axis; got != -1 {
		t.Fatalf("expected cached axis -1, got %v", got)
	}
}

func TestRebuildKeepsState(t *testing.T) {
	c, body, probe := newTestController(t, DefaultConfig())
	probe.grounded = true
	c.Update(0.02, RawInput{Axis: 1, JumpDown: true}, mgl64.Vec2{}, gravity)
	c.FixedUpdate(0.02)

	cfg := DefaultConfig()
	cfg.JumpForce = 11
	next, err := c.Rebuild(cfg, probe)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if next.State() != c.State() {
		t.Fatalf("expected state carried over, got %+v want %+v", next.State(), c.State())
	}
	if next.Body() != body {
		t.Fatalf("expected body carried over")
	}
	// Still held, so the carried edge history must not produce a new press.
	if next.Update(0.02, RawInput{Axis: 1, JumpDown: true}, mgl64.Vec2{}, gravity).Launched {
		t.Fatalf("held button re-triggered a launch after rebuild")
	}
	if next.Config().JumpForce != 11 {
		t.Fatalf("expected new config applied")
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
