package effects

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp01 confines per-word animation progress to [0,1]: windows that
// have not started render at t=0, finished windows freeze at t=1.
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// easeOutCubic decelerates toward the end of the window
func easeOutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// easeOutBack overshoots the target and settles, using the classic
// c1=1.70158 overshoot constant.
func easeOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}
