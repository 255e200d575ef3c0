package movement

import "github.com/go-gl/mathgl/mgl64"

// GroundLayer is the default collision category probed for ground contact.
const GroundLayer uint = 1 << 0

// Config holds per-character tuning. It is treated as immutable once a
// Controller has been built from it.
type Config struct {
	MoveSpeed    float64
	Acceleration float64
	Deceleration float64

	JumpForce         float64
	LowJumpMultiplier float64
	FallMultiplier    float64
	CoyoteTime        float64
	JumpBufferTime    float64

	GroundCheckRadius float64
	GroundCheckOffset mgl64.Vec2
	GroundMask        uint
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:         7,
		Acceleration:      5,
		Deceleration:      5,
		JumpForce:         7,
		LowJumpMultiplier: 2,
		FallMultiplier:    2.5,
		CoyoteTime:        0.2,
		JumpBufferTime:    0.1,
		GroundCheckRadius: 0.2,
		GroundCheckOffset: mgl64.Vec2{0, -0.5},
		GroundMask:        GroundLayer,
	}
}
