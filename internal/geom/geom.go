// Package geom holds the logical coordinate types shared by the seat, space and grabs.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in global compositor coordinates.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Round snaps p to the integer grid windows are placed on.
func (p Point) Round() Loc {
	return Loc{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Loc is an integer position, used for window and output placement.
type Loc struct {
	X int
	Y int
}

func (l Loc) Add(o Loc) Loc {
	return Loc{X: l.X + o.X, Y: l.Y + o.Y}
}

func (l Loc) ToPoint() Point {
	return Point{X: float64(l.X), Y: float64(l.Y)}
}

type Size struct {
	W int
	H int
}

func (s Size) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// Clamp bounds s to [min, max] on each axis. A zero max axis means unbounded.
func (s Size) Clamp(min, max Size) Size {
	if max.W > 0 && s.W > max.W {
		s.W = max.W
	}
	if max.H > 0 && s.H > max.H {
		s.H = max.H
	}
	if s.W < min.W {
		s.W = min.W
	}
	if s.H < min.H {
		s.H = min.H
	}
	return s
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

type Rect struct {
	Loc  Loc
	Size Size
}

func NewRect(x, y, w, h int) Rect {
	return Rect{Loc: Loc{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= float64(r.Loc.X) &&
		p.Y >= float64(r.Loc.Y) &&
		p.X < float64(r.Loc.X+r.Size.W) &&
		p.Y < float64(r.Loc.Y+r.Size.H)
}

// Union returns the smallest rectangle holding both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Size.IsEmpty() {
		return o
	}
	if o.Size.IsEmpty() {
		return r
	}
	x1, y1 := min(r.Loc.X, o.Loc.X), min(r.Loc.Y, o.Loc.Y)
	x2 := max(r.Loc.X+r.Size.W, o.Loc.X+o.Size.W)
	y2 := max(r.Loc.Y+r.Size.H, o.Loc.Y+o.Size.H)
	return NewRect(x1, y1, x2-x1, y2-y1)
}

// ClampPoint keeps p inside r.
func (r Rect) ClampPoint(p Point) Point {
	if r.Size.IsEmpty() {
		return p
	}
	maxX := float64(r.Loc.X + r.Size.W - 1)
	maxY := float64(r.Loc.Y + r.Size.H - 1)
	p.X = math.Max(float64(r.Loc.X), math.Min(p.X, maxX))
	p.Y = math.Max(float64(r.Loc.Y), math.Min(p.Y, maxY))
	return p
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Size.W, r.Size.H, r.Loc.X, r.Loc.Y)
}
