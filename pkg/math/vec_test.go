package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	got := Vec2{3, 4}.Length()
	if got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	l := Vec2{3, 4}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec2{}).Normalize() != (Vec2{}) {
		t.Error("zero Vec2 should normalize to zero")
	}
}

func TestVec2Div(t *testing.T) {
	got := Vec2{10, 30}.Div(Vec2{100, 600})
	if got != (Vec2{0.1, 0.05}) {
		t.Errorf("Vec2.Div() = %v, want (0.1, 0.05)", got)
	}
	if (Vec2{1, 1}).Div(Vec2{0, 2}) != (Vec2{0, 0.5}) {
		t.Error("zero divisor should yield zero component")
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Distance(t *testing.T) {
	got := Vec3{1, 2, 3}.Distance(Vec3{1, 2, 8})
	if got != 5 {
		t.Errorf("Vec3.Distance() = %v, want 5", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec3{float32(math.NaN()), 0, 0}).IsFinite() {
		t.Error("NaN component should be non-finite")
	}
	if (Vec3{0, float32(math.Inf(1)), 0}).IsFinite() {
		t.Error("Inf component should be non-finite")
	}
}
