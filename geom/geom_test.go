package geom

import (
	"math"
	"testing"
)

func TestClampIdempotent(t *testing.T) {
	bounds := [][2]float64{
		{0, 1},
		{-10, 10},
		{0.5, 2},
		{math.Inf(-1), math.Inf(1)},
		{3, 3},
	}
	values := []float64{-1e9, -3, -0.5, 0, 0.25, 1, 2.5, 17, 1e9}

	for _, b := range bounds {
		clamp := Clamp(b[0], b[1])
		for _, v := range values {
			once := clamp(v)
			twice := clamp(once)
			if once != twice {
				t.Errorf("Clamp(%v, %v) not idempotent for %v: %v then %v", b[0], b[1], v, once, twice)
			}
			if once < b[0] || once > b[1] {
				t.Errorf("Clamp(%v, %v)(%v) = %v out of range", b[0], b[1], v, once)
			}
		}
	}
}

func TestClampUnbounded(t *testing.T) {
	clamp := Clamp(math.Inf(-1), math.Inf(1))
	if got := clamp(-42); got != -42 {
		t.Errorf("expected -42, got %v", got)
	}
}

func TestCompose(t *testing.T) {
	double := func(v float64) float64 { return v * 2 }
	inc := func(v float64) float64 { return v + 1 }

	if got := Compose(double, inc)(3); got != 8 {
		t.Errorf("Compose(double, inc)(3) = %v, want 8", got)
	}
	if got := Compose(inc, double)(3); got != 7 {
		t.Errorf("Compose(inc, double)(3) = %v, want 7", got)
	}
	if got := Compose()(5); got != 5 {
		t.Errorf("empty Compose should be identity, got %v", got)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: -5, Width: 5, Height: 5}

	got := a.Union(b)
	want := Rect{X: 0, Y: -5, Width: 25, Height: 15}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty union should return the other operand, got %+v", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v", got)
	}
	if got := Mean([]float64{5, 5}); got != 5 {
		t.Errorf("Mean = %v, want 5", got)
	}
}
