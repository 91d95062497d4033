package gamemath

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speed, friction float64) float64 {
	return MoveTowards(speed, 0, friction)
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// MoveTowards moves current toward target by at most maxDelta and never
// overshoots.
func MoveTowards(current, target, maxDelta float64) float64 {
	if target-current > maxDelta {
		return current + maxDelta
	}
	if current-target > maxDelta {
		return current - maxDelta
	}
	return target
}

// Clamp01 clamps v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
