// Package scenario drives the simulation from tengo scripts. A script defines
//
//	input := func(frame, t) { return {axis: 1.0, jump: false} }
//
// and is evaluated once per frame.
package scenario

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/prefabs"
)

var ErrNoInputFunc = errors.New("scenario: script does not define input")

const dispatchScript = `
__out := undefined
if is_callable(input) {
	__out = input(__frame, __t)
}
`

// Script is a compiled input scenario. It is not safe for concurrent use.
type Script struct {
	name     string
	compiled *tengo.Compiled
	logger   *slog.Logger
	failed   bool
}

// Load compiles a script from the prefab scripts directory.
func Load(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	return Compile(name, src)
}

// Compile compiles script source and evaluates it once for frame 0.
func Compile(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), dispatchScript...))
	_ = script.Add("__frame", 0)
	_ = script.Add("__t", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("scenario: run %s: %w", name, err)
	}
	if compiled.Get("__out").IsUndefined() {
		return nil, fmt.Errorf("scenario: %s: %w", name, ErrNoInputFunc)
	}
	return &Script{name: name, compiled: compiled, logger: slog.Default()}, nil
}

func (s *Script) Name() string {
	return s.name
}

// WithLogger sets the logger used for runtime errors.
func (s *Script) WithLogger(logger *slog.Logger) *Script {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Eval runs input(frame, t) and decodes the returned map.
func (s *Script) Eval(frame int, t float64) (movement.RawInput, error) {
	if err := s.compiled.Set("__frame", frame); err != nil {
		return movement.RawInput{}, err
	}
	if err := s.compiled.Set("__t", t); err != nil {
		return movement.RawInput{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return movement.RawInput{}, fmt.Errorf("scenario: run %s: %w", s.name, err)
	}

	out := s.compiled.Get("__out")
	if out.IsUndefined() {
		return movement.RawInput{}, fmt.Errorf("scenario: %s: %w", s.name, ErrNoInputFunc)
	}
	values := out.Map()
	if values == nil {
		return movement.RawInput{}, fmt.Errorf("scenario: %s: input returned %s, want map", s.name, out.ValueType())
	}

	var raw movement.RawInput
	switch axis := values["axis"].(type) {
	case float64:
		raw.Axis = axis
	case int64:
		raw.Axis = float64(axis)
	case nil:
	default:
		return movement.RawInput{}, fmt.Errorf("scenario: %s: axis has type %T", s.name, axis)
	}
	if jump, ok := values["jump"].(bool); ok {
		raw.JumpDown = jump
	}
	return raw, nil
}

// Read implements the simulation input source. Script errors are logged once
// and produce neutral input.
func (s *Script) Read(frame int, t float64) movement.RawInput {
	raw, err := s.Eval(frame, t)
	if err != nil {
		if !s.failed {
			s.logger.Error("scenario input failed", "script", s.name, "frame", frame, "err", err)
			s.failed = true
		}
		return movement.RawInput{}
	}
	return raw
}
