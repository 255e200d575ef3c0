// Package sim runs the movement controller headlessly against a physics world
// with a decoupled frame and fixed clock.
package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

type (
	InputSource = system.InputSource
	InputFunc   = system.InputFunc
)

var ErrInvalidFixedStep = errors.New("sim: fixed step must be positive")

type Options struct {
	Level         prefabs.LevelSpec
	Player        prefabs.PlayerSpec
	FixedStep     float64
	MaxFrameDelta float64
	Input         InputSource
	Logger        *slog.Logger
	// TraceLimit bounds the trace to the most recent entries. Zero keeps all.
	TraceLimit int
}

// PlayerState is a read-only view of the player after the last frame.
type PlayerState struct {
	Position    mgl64.Vec2
	Velocity    mgl64.Vec2
	Size        mgl64.Vec2
	ProbeCenter mgl64.Vec2
	ProbeRadius float64
	Movement    movement.Snapshot
	Config      movement.Config
	Launches    int
}

type Runner struct {
	world   *ecs.World
	physics *physics.World
	player  ecs.Entity
	clock   *Clock
	input   *system.InputSystem

	frame *ecs.Scheduler
	fixed *ecs.Scheduler

	logger     *slog.Logger
	frames     int
	trace      []TraceEntry
	traceLimit int
}

func NewRunner(opts Options) (*Runner, error) {
	if opts.FixedStep <= 0 {
		return nil, ErrInvalidFixedStep
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pw := physics.NewWorld(opts.Level.Gravity)
	for _, p := range opts.Level.Platforms {
		pw.AddPlatform(p.X, p.Y, p.Width, p.Height)
	}

	w := ecs.NewWorld()
	player, err := entity.NewPlayerAt(w, pw, opts.Player, opts.Level.Spawn.X, opts.Level.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("sim: spawn: %w", err)
	}

	input := system.NewInputSystem(opts.Input)
	r := &Runner{
		world:      w,
		physics:    pw,
		player:     player,
		clock:      NewClock(opts.FixedStep, opts.MaxFrameDelta),
		input:      input,
		frame:      ecs.NewScheduler(input, system.NewMovementSystem(logger)),
		fixed:      ecs.NewScheduler(system.NewHorizontalSystem(), system.NewPhysicsSystem(pw)),
		logger:     logger,
		traceLimit: opts.TraceLimit,
	}
	logger.Debug("sim ready", "level", opts.Level.Name, "platforms", len(opts.Level.Platforms), "fixed_step", opts.FixedStep)
	return r, nil
}

// Frame advances the simulation by one variable frame of dt seconds: due
// fixed ticks first, then the frame tick.
func (r *Runner) Frame(dt float64) TraceEntry {
	start := r.clock.Elapsed()
	steps, frameDt := r.clock.Advance(dt)
	for i := 0; i < steps; i++ {
		r.fixed.Update(r.world, r.clock.FixedStep)
	}
	r.frame.Update(r.world, frameDt)

	launched := false
	for _, evt := range r.world.Events().Drain() {
		if evt.Type == ecs.EventJumpLaunched && evt.Entity == r.player {
			launched = true
		}
	}

	mover := r.mover()
	body := r.body()
	entry := TraceEntry{
		Frame:      r.frames,
		Time:       start,
		Dt:         frameDt,
		FixedSteps: steps,
		Position:   body.Position(),
		Velocity:   body.Velocity(),
		Input:      mover.Last.Input,
		Grounded:   mover.Last.Grounded,
		Launched:   launched,
		State:      mover.Controller.State(),
	}
	r.frames++
	r.record(entry)
	return entry
}

func (r *Runner) record(e TraceEntry) {
	r.trace = append(r.trace, e)
	if r.traceLimit > 0 && len(r.trace) > r.traceLimit {
		r.trace = append(r.trace[:0], r.trace[len(r.trace)-r.traceLimit:]...)
	}
}

// Run plays n frames of constant dt.
func (r *Runner) Run(n int, dt float64) []TraceEntry {
	out := make([]TraceEntry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.Frame(dt))
	}
	return out
}

// Player reports the player as of the last fixed tick. Position comes from the
// entity's Transform, which the physics system syncs after each step.
func (r *Runner) Player() PlayerState {
	mover := r.mover()
	body := r.body()
	tr, ok := ecs.Get(r.world, r.player, component.TransformComponent.Kind())
	if !ok {
		panic("sim: player has no transform")
	}
	w, h := body.Size()
	return PlayerState{
		Position:    tr.Position,
		Velocity:    body.Velocity(),
		Size:        mgl64.Vec2{w, h},
		ProbeCenter: mover.Controller.ProbeCenter(tr.Position),
		ProbeRadius: mover.Controller.ProbeRadius(),
		Movement:    mover.Controller.State(),
		Config:      mover.Controller.Config(),
		Launches:    mover.Launches,
	}
}

func (r *Runner) Trace() []TraceEntry {
	return append([]TraceEntry(nil), r.trace...)
}

// Reconfigure swaps the player's tuning, keeping its movement state.
func (r *Runner) Reconfigure(cfg movement.Config) error {
	if err := entity.Retune(r.world, r.player, cfg); err != nil {
		return fmt.Errorf("sim: reconfigure: %w", err)
	}
	r.logger.Info("movement tuning applied", "jump_force", cfg.JumpForce, "move_speed", cfg.MoveSpeed)
	return nil
}

func (r *Runner) SetInput(src InputSource) {
	r.input.SetSource(src)
}

func (r *Runner) Physics() *physics.World {
	return r.physics
}

func (r *Runner) World() *ecs.World {
	return r.world
}

func (r *Runner) Clock() *Clock {
	return r.clock
}

func (r *Runner) mover() *component.Mover {
	mover, ok := ecs.Get(r.world, r.player, component.MoverComponent.Kind())
	if !ok {
		panic("sim: player has no mover")
	}
	return mover
}

func (r *Runner) body() *physics.Body {
	pb, ok := ecs.Get(r.world, r.player, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		panic("sim: player has no physics body")
	}
	return pb.Body
}
