package kirigami

import "testing"

func TestCompare(t *testing.T) {
	u := func(d int) Facet { return Facet{Orientation: Upward, Depth: d} }
	f := func(d int) Facet { return Facet{Orientation: Face, Depth: d} }

	tests := []struct {
		name string
		a, b Facet
		want Ordering
	}{
		{"equal upward", u(1), u(1), Equal},
		{"equal face", f(0), f(0), Equal},
		{"upward by depth", u(0), u(2), Less},
		{"face by depth", f(3), f(1), Greater},
		{"upward before face", u(5), f(0), Less},
		{"face after upward", f(0), u(5), Greater},
		{"orientation beats depth", u(9), f(1), Less},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%+v, %+v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare(%+v, %+v) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}
