package common

import "math"

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveTowards moves current toward target by at most maxDelta without passing it.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + math.Copysign(maxDelta, target-current)
}

// SmoothDamp is a critically damped spring step from current toward target.
// rate is the filter's derivative memory and must persist between calls.
// The result never overshoots target.
func SmoothDamp(current, target float64, rate *float64, smoothTime, maxSpeed, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	goal := target

	maxChange := maxSpeed * smoothTime
	change = Clamp(change, -maxChange, maxChange)
	target = current - change

	temp := (*rate + omega*change) * dt
	*rate = (*rate - omega*temp) * exp
	output := target + (change+temp)*exp

	if (goal-current > 0) == (output > goal) {
		output = goal
		*rate = (output - goal) / dt
	}
	return output
}
