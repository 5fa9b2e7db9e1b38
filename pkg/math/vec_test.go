package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	if got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999999 || l > 1.000001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}

	if z := (Vec2{}).Normalize(); z != (Vec2{}) {
		t.Errorf("zero vector normalized to %v", z)
	}
}

func TestVec2Perp(t *testing.T) {
	got := Vec2{-1, 0}.Perp()
	want := Vec2{0, 1}
	if got != want {
		t.Errorf("Vec2.Perp() = %v, want %v", got, want)
	}
	if d := (Vec2{3, 7}).Dot(Vec2{3, 7}.Perp()); d != 0 {
		t.Errorf("perpendicular dot = %v, want 0", d)
	}
}

func TestVec2Rotate(t *testing.T) {
	got := Vec2{1, 0}.Rotate(math.Pi / 2)
	if !got.ApproxEqual(Vec2{0, 1}, 1e-12) {
		t.Errorf("Vec2.Rotate(pi/2) = %v, want (0,1)", got)
	}

	v := Vec2{0.3, -1.7}
	back := v.Rotate(0.83).Rotate(-0.83)
	if !back.ApproxEqual(v, 1e-12) {
		t.Errorf("rotate round trip = %v, want %v", back, v)
	}
}

func TestVec2Floor(t *testing.T) {
	x, y := Vec2{2.9, -0.1}.Floor()
	if x != 2 || y != -1 {
		t.Errorf("Vec2.Floor() = (%d,%d), want (2,-1)", x, y)
	}
}

func TestFromAngle(t *testing.T) {
	tests := []struct {
		deg  float64
		want Vec2
	}{
		{0, Vec2{1, 0}},
		{90, Vec2{0, 1}},
		{180, Vec2{-1, 0}},
		{270, Vec2{0, -1}},
	}
	for _, tt := range tests {
		got := FromAngle(tt.deg * math.Pi / 180)
		if got != tt.want {
			t.Errorf("FromAngle(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}
