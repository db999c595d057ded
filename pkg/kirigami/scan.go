package kirigami

import (
	kerrors "github.com/matzehuels/kirigami/pkg/errors"
)

// cutLines compares column c with column c+1 row by row and yields a
// vertical Cut on their shared boundary wherever the facets differ. Row 0
// is skipped: the top edge of the sheet is never cut. It reports false when
// yield asked to stop.
func cutLines(c int, left, right []Facet, yield func(Line) bool) bool {
	x := c + 1
	for i := 1; i < len(left); i++ {
		if Compare(left[i], right[i]) == Equal {
			continue
		}
		if !yield(Line{Start: Point{x, i}, Style: Cut, End: Point{x, i + 1}}) {
			return false
		}
	}
	return true
}

// foldLines classifies every horizontal edge inside column j.
//
// support tracks how much depth is left under the facet being examined: it
// starts at the base plane depth, each riser consumes one unit, and a tread
// resets it to its own depth once its lower edge has been classified.
func foldLines(j int, column []Facet, basePlaneDepth int, yield func(Line) bool) (bool, error) {
	support := basePlaneDepth
	for i := 0; i+1 < len(column); i++ {
		if support < 0 {
			return false, kerrors.New(kerrors.ErrCodeInternal,
				"negative support depth %d in column %d at row %d", support, j, i)
		}
		cur, next := column[i], column[i+1]
		if cur.Orientation == Upward {
			support--
		}

		var style LineStyle
		switch {
		case cur.Orientation > next.Orientation:
			style = MountainFold
		case next.Orientation > cur.Orientation:
			style = ValleyFold
			if next.Depth > support {
				style = Cut
			}
		case cur.Depth != next.Depth:
			style = Cut
		}

		if style != 0 {
			if !yield(Line{Start: Point{j, i + 1}, Style: style, End: Point{j + 1, i + 1}}) {
				return false, nil
			}
		}
		if cur.Orientation == Face {
			support = cur.Depth
		}
	}
	return true, nil
}
