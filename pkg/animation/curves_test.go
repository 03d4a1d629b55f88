package animation

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestCubicBezier_Endpoints(t *testing.T) {
	curves := map[string]Curve{
		"ease":        Ease,
		"ease-in":     EaseIn,
		"ease-out":    EaseOut,
		"ease-in-out": EaseInOut,
	}
	for name, curve := range curves {
		if got := curve(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := curve(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestCubicBezier_Monotonic(t *testing.T) {
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := Ease(float64(i) / 100)
		if v < prev-1e-9 {
			t.Fatalf("Ease not monotonic at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestEaseInOut_Symmetric(t *testing.T) {
	if got := EaseInOut(0.5); math.Abs(got-0.5) > 1e-4 {
		t.Errorf("EaseInOut(0.5) = %v, want 0.5", got)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		duration time.Duration
		want     float64
	}{
		{"start", 0, 100 * time.Millisecond, 0},
		{"half", 50 * time.Millisecond, 100 * time.Millisecond, 0.5},
		{"past end", 300 * time.Millisecond, 100 * time.Millisecond, 1},
		{"zero duration", 0, 0, 1},
		{"negative elapsed", -time.Millisecond, 100 * time.Millisecond, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.elapsed, tt.duration, nil); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTweenFloat64_At(t *testing.T) {
	tw := TweenFloat64(120, 0)
	if got := tw.At(175*time.Millisecond, 350*time.Millisecond, LinearCurve); got != 60 {
		t.Errorf("At(half) = %v, want 60", got)
	}
	if got := tw.At(time.Second, 350*time.Millisecond, Ease); got != 0 {
		t.Errorf("At(after end) = %v, want 0", got)
	}
}

func TestParseCurve(t *testing.T) {
	tests := []struct {
		in   string
		at   float64
		want float64
	}{
		{"linear", 0.3, 0.3},
		{" Ease-In-Out ", 0.5, 0.5},
		{"cubic-bezier(0, 0, 1, 1)", 0.25, 0.25},
		{"cubic-bezier(0.25,0.1,0.25,1)", 0.5, Ease(0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseCurve(tt.in)
			if err != nil {
				t.Fatalf("ParseCurve(%q): %v", tt.in, err)
			}
			if got := c(tt.at); math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("curve(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestParseCurveErrors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bounce", "unknown timing function"},
		{"cubic-bezier(0, 0, 1)", "takes 4 arguments"},
		{"cubic-bezier(0, 0, 1, x)", "argument 4"},
		{"cubic-bezier(1.5, 0, 1, 1)", "x values must be in [0, 1]"},
		{"cubic-bezier(0, 0, 1, 1", "unknown timing function"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseCurve(tt.in)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseCurve(%q) error = %v, want %q", tt.in, err, tt.want)
			}
		})
	}
}

func TestCubicBezier_Overshoot(t *testing.T) {
	back := CubicBezier(0.68, -0.55, 0.27, 1.55)
	lo, hi := 0.0, 0.0
	for i := 1; i < 100; i++ {
		v := back(float64(i) / 100)
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo >= 0 || hi <= 1 {
		t.Errorf("back curve range [%v, %v] should overshoot both ends", lo, hi)
	}
}
