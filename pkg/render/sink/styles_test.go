package sink

import (
	"testing"

	kerrors "github.com/matzehuels/kirigami/pkg/errors"
	"github.com/matzehuels/kirigami/pkg/kirigami"
)

func TestParseLineStyle(t *testing.T) {
	tests := []struct {
		name    string
		want    kirigami.LineStyle
		wantErr bool
	}{
		{"cut", kirigami.Cut, false},
		{"Mountain", kirigami.MountainFold, false},
		{" valley ", kirigami.ValleyFold, false},
		{"fold", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLineStyle(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLineStyle(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLineStyle(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestStyleNameRoundTrip(t *testing.T) {
	for _, s := range kirigami.LineStyles {
		got, err := ParseLineStyle(StyleName(s))
		if err != nil || got != s {
			t.Errorf("ParseLineStyle(StyleName(%d)) = %v, %v", s, got, err)
		}
	}
}

func TestParseLineStyles(t *testing.T) {
	got, err := ParseLineStyles(map[string]string{"cut": "stroke:black", "valley": "stroke:blue"})
	if err != nil {
		t.Fatalf("ParseLineStyles() error: %v", err)
	}
	if got[kirigami.Cut] != "stroke:black" || got[kirigami.ValleyFold] != "stroke:blue" {
		t.Errorf("ParseLineStyles() = %v", got)
	}

	if _, err := ParseLineStyles(map[string]string{"edge": "stroke:red"}); !kerrors.Is(err, kerrors.ErrCodeInvalidStyle) {
		t.Errorf("unknown name error = %v, want INVALID_STYLE", err)
	}
	if _, err := ParseLineStyles(map[string]string{"cut": "<b>"}); !kerrors.Is(err, kerrors.ErrCodeInvalidStyle) {
		t.Errorf("bad declaration error = %v, want INVALID_STYLE", err)
	}
}

func TestDefaultLineStylesIsCopy(t *testing.T) {
	a := DefaultLineStyles()
	a[kirigami.Cut] = "changed"
	if DefaultLineStyles()[kirigami.Cut] == "changed" {
		t.Error("DefaultLineStyles() must return a fresh map")
	}
}
