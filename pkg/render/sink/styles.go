package sink

import (
	"strings"

	kerrors "github.com/matzehuels/kirigami/pkg/errors"
	"github.com/matzehuels/kirigami/pkg/kirigami"
)

// Style names used in configuration files and JSON output.
const (
	StyleNameCut      = "cut"
	StyleNameMountain = "mountain"
	StyleNameValley   = "valley"
)

var styleNames = map[kirigami.LineStyle]string{
	kirigami.Cut:          StyleNameCut,
	kirigami.MountainFold: StyleNameMountain,
	kirigami.ValleyFold:   StyleNameValley,
}

// DefaultLineStyles returns a fresh copy of the default style table.
func DefaultLineStyles() map[kirigami.LineStyle]string {
	return map[kirigami.LineStyle]string{
		kirigami.Cut:          "stroke:rgb(0,0,0);stroke-width:1",
		kirigami.MountainFold: "stroke:rgb(255,0,0);stroke-width:1;stroke-dasharray:5,5",
		kirigami.ValleyFold:   "stroke:rgb(0,0,255);stroke-width:1;stroke-dasharray:5,5",
	}
}

// StyleName returns the configuration name of s.
func StyleName(s kirigami.LineStyle) string {
	return styleNames[s]
}

// ParseLineStyle resolves a configuration name. Matching is case-insensitive.
func ParseLineStyle(name string) (kirigami.LineStyle, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for s, candidate := range styleNames {
		if candidate == n {
			return s, nil
		}
	}
	return 0, kerrors.New(kerrors.ErrCodeInvalidStyle,
		"unknown line style %q (must be one of: cut, mountain, valley)", name)
}

// ParseLineStyles converts a name-keyed table into a style table and
// validates every declaration.
func ParseLineStyles(named map[string]string) (map[kirigami.LineStyle]string, error) {
	out := make(map[kirigami.LineStyle]string, len(named))
	for name, decl := range named {
		s, err := ParseLineStyle(name)
		if err != nil {
			return nil, err
		}
		if err := kerrors.ValidateStyleDeclaration(decl); err != nil {
			return nil, err
		}
		out[s] = decl
	}
	return out, nil
}
