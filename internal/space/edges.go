package space

import "strings"

// Edges is the set of window edges an interactive resize drags.
type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight

	EdgeNone Edges = 0
	EdgeAll        = EdgeTop | EdgeBottom | EdgeLeft | EdgeRight
)

func (e Edges) Has(o Edges) bool {
	return e&o != 0
}

func (e Edges) String() string {
	if e == EdgeNone {
		return "none"
	}
	var parts []string
	if e.Has(EdgeTop) {
		parts = append(parts, "top")
	}
	if e.Has(EdgeBottom) {
		parts = append(parts, "bottom")
	}
	if e.Has(EdgeLeft) {
		parts = append(parts, "left")
	}
	if e.Has(EdgeRight) {
		parts = append(parts, "right")
	}
	return strings.Join(parts, "|")
}
