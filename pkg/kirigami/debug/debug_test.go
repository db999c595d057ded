package debug

import (
	"testing"

	"github.com/matzehuels/kirigami/pkg/kirigami"
)

func TestFacet(t *testing.T) {
	tests := []struct {
		facet kirigami.Facet
		want  string
	}{
		{kirigami.Facet{Orientation: kirigami.Upward, Depth: 0}, "u0"},
		{kirigami.Facet{Orientation: kirigami.Face, Depth: 2}, "f2"},
		{kirigami.Facet{Depth: 1}, "?1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Facet(tt.facet); got != tt.want {
				t.Errorf("Facet(%+v) = %q, want %q", tt.facet, got, tt.want)
			}
		})
	}
}

func TestLine(t *testing.T) {
	l := kirigami.Line{Start: kirigami.Point{X: 1, Y: 2}, Style: kirigami.MountainFold, End: kirigami.Point{X: 2, Y: 2}}
	want := "(1, 2) - mountain -> (2, 2)"
	if got := Line(l); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestGrid(t *testing.T) {
	cfg, err := kirigami.FromDepths([][]int{{0, 0}, {1, 0}, {0, 0}}, 2)
	if err != nil {
		t.Fatalf("FromDepths() error: %v", err)
	}

	want := "(3 x (2 + 2))\n" +
		"u0 u0 u0\n" +
		"u0 f1 u0\n" +
		"f0 u1 f0\n" +
		"f0 f0 f0\n"
	if got := Grid(cfg); got != want {
		t.Errorf("Grid() =\n%s\nwant\n%s", got, want)
	}
}
