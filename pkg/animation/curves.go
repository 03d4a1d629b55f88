package animation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Curve maps linear progress in [0, 1] to eased progress. Curves return
// exactly 0 and 1 at the ends.
type Curve func(t float64) float64

// LinearCurve leaves progress unchanged.
func LinearCurve(t float64) float64 { return t }

// The CSS timing-function keywords.
var (
	Ease      = CubicBezier(0.25, 0.1, 0.25, 1)
	EaseIn    = CubicBezier(0.42, 0, 1, 1)
	EaseOut   = CubicBezier(0, 0, 0.58, 1)
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
)

var namedCurves = map[string]Curve{
	"linear":      LinearCurve,
	"ease":        Ease,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
}

// ParseCurve reads a CSS timing function: one of the keywords or
// cubic-bezier(x1, y1, x2, y2).
func ParseCurve(s string) (Curve, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedCurves[s]; ok {
		return c, nil
	}
	args, ok := strings.CutPrefix(s, "cubic-bezier(")
	if !ok || !strings.HasSuffix(args, ")") {
		return nil, fmt.Errorf("unknown timing function %q", s)
	}
	parts := strings.Split(strings.TrimSuffix(args, ")"), ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("cubic-bezier takes 4 arguments, got %d", len(parts))
	}
	var p [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("cubic-bezier argument %d: %w", i+1, err)
		}
		p[i] = v
	}
	if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
		return nil, fmt.Errorf("cubic-bezier x values must be in [0, 1]")
	}
	return CubicBezier(p[0], p[1], p[2], p[3]), nil
}

// bezier holds the polynomial coefficients of a unit cubic bezier in each
// axis: x(u) = ((ax*u + bx)*u + cx)*u.
type bezier struct {
	ax, bx, cx float64
	ay, by, cy float64
}

func newBezier(x1, y1, x2, y2 float64) bezier {
	var b bezier
	b.cx = 3 * x1
	b.bx = 3*(x2-x1) - b.cx
	b.ax = 1 - b.cx - b.bx
	b.cy = 3 * y1
	b.by = 3*(y2-y1) - b.cy
	b.ay = 1 - b.cy - b.by
	return b
}

func (b bezier) x(u float64) float64  { return ((b.ax*u+b.bx)*u + b.cx) * u }
func (b bezier) y(u float64) float64  { return ((b.ay*u+b.by)*u + b.cy) * u }
func (b bezier) dx(u float64) float64 { return (3*b.ax*u+2*b.bx)*u + b.cx }

// solve finds u with x(u) = t, by Newton's method with a bisection fallback.
func (b bezier) solve(t float64) float64 {
	const eps = 1e-7
	u := t
	for range 8 {
		err := b.x(u) - t
		if math.Abs(err) < eps {
			return u
		}
		d := b.dx(u)
		if math.Abs(d) < eps {
			break
		}
		u -= err / d
	}
	lo, hi := 0.0, 1.0
	u = clampUnit(t)
	for lo < hi {
		x := b.x(u)
		if math.Abs(x-t) < eps {
			break
		}
		if x < t {
			lo = u
		} else {
			hi = u
		}
		next := (lo + hi) / 2
		if next == u {
			break
		}
		u = next
	}
	return u
}

// CubicBezier returns the curve of CSS cubic-bezier(x1, y1, x2, y2).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	b := newBezier(x1, y1, x2, y2)
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return b.y(b.solve(t))
	}
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
