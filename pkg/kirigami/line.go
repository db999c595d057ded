package kirigami

import (
	"cmp"
	"slices"
)

// LineStyle tells how the sheet is treated along a line.
type LineStyle uint8

const (
	Cut LineStyle = iota + 1
	MountainFold
	ValleyFold
)

// LineStyles lists every style in declaration order.
var LineStyles = []LineStyle{Cut, MountainFold, ValleyFold}

// Point is an intersection of grid lines, not a cell centre.
type Point struct {
	X, Y int
}

// Line is a unit cut or fold segment. Lines are compared structurally.
type Line struct {
	Start Point
	Style LineStyle
	End   Point
}

// CompareLines orders lines by start point, end point, then style.
func CompareLines(a, b Line) int {
	if c := cmp.Compare(a.Start.X, b.Start.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Start.Y, b.Start.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(a.End.X, b.End.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.End.Y, b.End.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Style, b.Style)
}

// SortLines sorts lines in place into the canonical CompareLines order.
func SortLines(lines []Line) {
	slices.SortFunc(lines, CompareLines)
}
