package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/platformer/movement"
)

const stickDeadzone = 0.2

// deviceInput reads the keyboard and the first standard gamepad. It reports
// the jump button level; press and release edges are derived by the
// controller.
type deviceInput struct{}

func (deviceInput) Read(frame int, t float64) movement.RawInput {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	return movement.RawInput{Axis: moveX, JumpDown: jump}
}
