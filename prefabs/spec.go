package prefabs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/platformer/movement"
)

const (
	PlayerFile = "player.yaml"
	LevelFile  = "level.yaml"
)

// loadOver decodes filename on top of base so that missing keys keep the
// values already in base.
func loadOver[T any](filename string, base T) (T, error) {
	data, err := Load(filename)
	if err != nil {
		return base, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return base, nil
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VecSpec) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// MovementSpec is the YAML form of movement.Config.
type MovementSpec struct {
	MoveSpeed         float64 `yaml:"move_speed"`
	Acceleration      float64 `yaml:"acceleration"`
	Deceleration      float64 `yaml:"deceleration"`
	JumpForce         float64 `yaml:"jump_force"`
	LowJumpMultiplier float64 `yaml:"low_jump_multiplier"`
	FallMultiplier    float64 `yaml:"fall_multiplier"`
	CoyoteTime        float64 `yaml:"coyote_time"`
	JumpBufferTime    float64 `yaml:"jump_buffer_time"`
	GroundCheckRadius float64 `yaml:"ground_check_radius"`
	GroundCheckOffset VecSpec `yaml:"ground_check_offset"`
	GroundMask        uint    `yaml:"ground_mask"`
}

func MovementSpecFrom(cfg movement.Config) MovementSpec {
	return MovementSpec{
		MoveSpeed:         cfg.MoveSpeed,
		Acceleration:      cfg.Acceleration,
		Deceleration:      cfg.Deceleration,
		JumpForce:         cfg.JumpForce,
		LowJumpMultiplier: cfg.LowJumpMultiplier,
		FallMultiplier:    cfg.FallMultiplier,
		CoyoteTime:        cfg.CoyoteTime,
		JumpBufferTime:    cfg.JumpBufferTime,
		GroundCheckRadius: cfg.GroundCheckRadius,
		GroundCheckOffset: VecSpec{X: cfg.GroundCheckOffset.X(), Y: cfg.GroundCheckOffset.Y()},
		GroundMask:        cfg.GroundMask,
	}
}

func (s MovementSpec) Config() movement.Config {
	return movement.Config{
		MoveSpeed:         s.MoveSpeed,
		Acceleration:      s.Acceleration,
		Deceleration:      s.Deceleration,
		JumpForce:         s.JumpForce,
		LowJumpMultiplier: s.LowJumpMultiplier,
		FallMultiplier:    s.FallMultiplier,
		CoyoteTime:        s.CoyoteTime,
		JumpBufferTime:    s.JumpBufferTime,
		GroundCheckRadius: s.GroundCheckRadius,
		GroundCheckOffset: s.GroundCheckOffset.Vec2(),
		GroundMask:        s.GroundMask,
	}
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

type PlayerSpec struct {
	Name     string       `yaml:"name"`
	Collider ColliderSpec `yaml:"collider"`
	Movement MovementSpec `yaml:"movement"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:     "player",
		Collider: ColliderSpec{Width: 1, Height: 1, Mass: 1},
		Movement: MovementSpecFrom(movement.DefaultConfig()),
	}
}

// LoadPlayerSpec decodes player.yaml over DefaultPlayerSpec.
func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := loadOver(PlayerFile, DefaultPlayerSpec())
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// MarshalPlayerSpec renders spec as player.yaml content.
func MarshalPlayerSpec(spec PlayerSpec) ([]byte, error) {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal %s: %w", PlayerFile, err)
	}
	return data, nil
}

// PlatformSpec is a static box. X, Y is its bottom-left corner.
type PlatformSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type LevelSpec struct {
	Name      string         `yaml:"name"`
	Gravity   float64        `yaml:"gravity"`
	Spawn     VecSpec        `yaml:"spawn"`
	Platforms []PlatformSpec `yaml:"platforms"`
}

func DefaultLevelSpec() LevelSpec {
	return LevelSpec{
		Name:    "flat",
		Gravity: -9.81,
		Spawn:   VecSpec{X: 0, Y: 0.5},
		Platforms: []PlatformSpec{
			{X: -50, Y: -1, Width: 100, Height: 1},
		},
	}
}

// LoadLevelSpec decodes filename over DefaultLevelSpec. A file that lists
// platforms replaces the default floor.
func LoadLevelSpec(filename string) (*LevelSpec, error) {
	if filename == "" {
		filename = LevelFile
	}
	base := DefaultLevelSpec()
	base.Platforms = nil
	spec, err := loadOver(filename, base)
	if err != nil {
		return nil, err
	}
	if len(spec.Platforms) == 0 {
		spec.Platforms = DefaultLevelSpec().Platforms
	}
	return &spec, nil
}
