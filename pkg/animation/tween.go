package animation

import "time"

// Tween is a pair of values and the interpolation between them.
type Tween[T any] struct {
	Begin, End T
	// Lerp returns the value a fraction t of the way from a to b. Nil jumps
	// straight to End.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the value at progress t.
func (tw Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// At returns the value elapsed into a transition of the given duration,
// shaped by curve. A nil curve is linear.
func (tw Tween[T]) At(elapsed, duration time.Duration, curve Curve) T {
	return tw.Evaluate(Progress(elapsed, duration, curve))
}

// Progress returns how far elapsed is through duration, clamped to [0, 1]
// and then eased. A transition with no duration is already complete.
func Progress(elapsed, duration time.Duration, curve Curve) float64 {
	if duration <= 0 {
		return 1
	}
	t := clampUnit(float64(elapsed) / float64(duration))
	if curve == nil {
		return t
	}
	return curve(t)
}

// LerpFloat64 interpolates linearly between a and b.
func LerpFloat64(a, b, t float64) float64 {
	return a + (b-a)*t
}

// TweenFloat64 returns a linear float64 tween.
func TweenFloat64(begin, end float64) Tween[float64] {
	return Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}
