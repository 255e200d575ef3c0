package movement

// JumpStateMachine drives coyote time, jump buffering, launches and the
// gravity scaling that shapes the jump arc. It runs once per frame tick.
type JumpStateMachine struct {
	cfg Config
}

func NewJumpStateMachine(cfg Config) JumpStateMachine {
	return JumpStateMachine{cfg: cfg}
}

// Step advances the timers and mutates the body's vertical velocity.
// gravityY is the world gravity (negative is down). It reports whether a
// jump launched this tick.
func (j JumpStateMachine) Step(st *State, body Body, in InputSample, grounded bool, gravityY, dt float64) bool {
	st.Grounded = grounded
	if grounded {
		st.CoyoteTimer = j.cfg.CoyoteTime
	} else {
		st.CoyoteTimer -= dt
	}

	if in.JumpPressed {
		st.JumpBufferTimer = j.cfg.JumpBufferTime
	} else {
		st.JumpBufferTimer -= dt
	}

	launched := false
	if st.JumpBufferTimer > 0 && st.CoyoteTimer > 0 {
		v := body.Velocity()
		v[1] = j.cfg.JumpForce
		body.SetVelocity(v)

		// Consuming the buffer is the only thing preventing a second launch;
		// the coyote timer is left untouched.
		st.JumpBufferTimer = 0
		st.Jumping = true
		st.HoldingJump = true
		launched = true
	}

	if in.JumpReleased {
		st.HoldingJump = false
	}

	v := body.Velocity()
	switch {
	case v.Y() > 0 && !in.JumpHeld:
		v[1] += gravityY * (j.cfg.LowJumpMultiplier - 1) * dt
	case v.Y() < 0:
		v[1] += gravityY * (j.cfg.FallMultiplier - 1) * dt
	default:
		return launched
	}
	body.SetVelocity(v)
	return launched
}
