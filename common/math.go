package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// ApproachVelocity integrates one step of acceleration toward a terminal velocity.
//
// No damping is applied until the step would pass terminal. From there a damping
// coefficient k = acceleration / terminal is used (a - k*terminal = 0, so terminal
// is the fixed point of dv/dt = a - k*v) and the result is clamped to terminal.
func ApproachVelocity(current, acceleration, dt, terminal float64) float64 {
	if acceleration == 0 {
		return current
	}
	if terminal == 0 {
		return 0
	}

	next := current + acceleration*dt
	if !beyond(next, terminal) {
		return next
	}
	if beyond(current, terminal) || Sign(current) == -Sign(terminal) {
		return terminal
	}

	damping := acceleration / terminal
	damped := next - damping*next*dt
	if terminal > 0 {
		return math.Min(damped, terminal)
	}
	return math.Max(damped, terminal)
}

// ApproachZero decelerates linearly at maxSpeed/stopTime and stops exactly at zero.
func ApproachZero(current, dt, maxSpeed, stopTime float64) float64 {
	if current == 0 || stopTime <= 0 {
		return 0
	}
	deceleration := Sign(current) * maxSpeed / stopTime
	next := current - deceleration*dt
	if Sign(next) != Sign(current) {
		return 0
	}
	return next
}

func beyond(v, terminal float64) bool {
	if terminal > 0 {
		return v > terminal
	}
	return v < terminal
}
