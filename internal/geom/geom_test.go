package geom

import "testing"

func TestSizeClamp(t *testing.T) {
	tests := []struct {
		s, min, max, want Size
	}{
		{Size{10, 10}, Size{20, 5}, Size{}, Size{20, 10}},
		{Size{500, 500}, Size{1, 1}, Size{300, 0}, Size{300, 500}},
		{Size{-40, 0}, Size{1, 1}, Size{}, Size{1, 1}},
	}
	for _, tt := range tests {
		if got := tt.s.Clamp(tt.min, tt.max); got != tt.want {
			t.Errorf("%v.Clamp(%v, %v) = %v, want %v", tt.s, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 100, 50)
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{10, 10}, true},
		{Point{109.9, 59.9}, true},
		{Point{110, 30}, false},
		{Point{30, 60}, false},
		{Point{9.5, 30}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 100, 100)
	b := NewRect(100, 50, 200, 100)
	if got, want := a.Union(b), NewRect(0, 0, 300, 150); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty Union = %v, want %v", got, b)
	}
}

func TestRectClampPoint(t *testing.T) {
	r := NewRect(0, 0, 100, 100)
	if got, want := r.ClampPoint(Point{-5, 150}), (Point{0, 99}); got != want {
		t.Errorf("ClampPoint = %v, want %v", got, want)
	}
	p := Point{-5, 5}
	if got := (Rect{}).ClampPoint(p); got != p {
		t.Errorf("empty ClampPoint = %v, want %v", got, p)
	}
}

func TestPointRound(t *testing.T) {
	if got, want := (Point{1.5, -2.4}).Round(), (Loc{2, -2}); got != want {
		t.Errorf("Round = %v, want %v", got, want)
	}
}
