package movement

import (
	"math"

	"github.com/milk9111/platformer/common"
)

// HorizontalController smooths horizontal velocity toward axis*MoveSpeed and
// decelerates to rest when the axis is neutral. It runs once per fixed tick.
type HorizontalController struct {
	cfg Config
}

func NewHorizontalController(cfg Config) HorizontalController {
	return HorizontalController{cfg: cfg}
}

func (h HorizontalController) Step(st *State, body Body, dt float64) {
	axis := st.Axis()
	target := axis * h.cfg.MoveSpeed

	v := body.Velocity()
	vx := common.SmoothDamp(v.X(), target, &st.HorizontalRate, h.cfg.Acceleration*dt, math.Inf(1), dt)

	if axis == 0 {
		decel := math.Min(math.Abs(vx), h.cfg.Deceleration*dt)
		vx = common.MoveTowards(vx, 0, decel)
	}

	v[0] = vx
	body.SetVelocity(v)
}
