// Package debug renders kirigami values as short text labels for logs,
// test failures and the inspect command. None of this is used by the
// geometry itself.
package debug

import (
	"fmt"
	"strings"

	"github.com/matzehuels/kirigami/pkg/kirigami"
)

// Orientation returns "u" for Upward and "f" for Face.
func Orientation(o kirigami.Orientation) string {
	switch o {
	case kirigami.Upward:
		return "u"
	case kirigami.Face:
		return "f"
	default:
		return "?"
	}
}

// Facet returns the orientation label followed by the depth, e.g. "u0" or "f2".
func Facet(f kirigami.Facet) string {
	return fmt.Sprintf("%s%d", Orientation(f.Orientation), f.Depth)
}

// LineStyle returns a lower-case name for s.
func LineStyle(s kirigami.LineStyle) string {
	switch s {
	case kirigami.Cut:
		return "cut"
	case kirigami.MountainFold:
		return "mountain"
	case kirigami.ValleyFold:
		return "valley"
	default:
		return "unknown"
	}
}

// Line formats l as "(x, y) - style -> (x, y)".
func Line(l kirigami.Line) string {
	return fmt.Sprintf("(%d, %d) - %s -> (%d, %d)",
		l.Start.X, l.Start.Y, LineStyle(l.Style), l.End.X, l.End.Y)
}

// Header describes the sheet geometry as "(W x (B + H))".
func Header(cfg *kirigami.Configuration) string {
	return fmt.Sprintf("(%d x (%d + %d))", cfg.Width(), cfg.BasePlaneDepth(), cfg.BackgroundPlaneHeight())
}

// Grid prints the header followed by one line per sheet row, columns left to
// right, so the dump reads like the flattened sheet.
func Grid(cfg *kirigami.Configuration) string {
	var b strings.Builder
	b.WriteString(Header(cfg))
	b.WriteByte('\n')
	for row := range cfg.Height() {
		for col := range cfg.Width() {
			if col > 0 {
				b.WriteByte(' ')
			}
			f, _ := cfg.At(col, row)
			b.WriteString(Facet(f))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
