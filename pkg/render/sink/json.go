package sink

import (
	"encoding/json"

	"github.com/matzehuels/kirigami/pkg/kirigami"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	name   string
	sorted bool
}

// WithJSONName records the pattern name in the output.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithJSONSortedLines emits lines in CompareLines order.
func WithJSONSortedLines() JSONOption { return func(r *jsonRenderer) { r.sorted = true } }

type jsonOutput struct {
	Name                  string     `json:"name,omitempty"`
	Width                 int        `json:"width"`
	Height                int        `json:"height"`
	BasePlaneDepth        int        `json:"base_plane_depth"`
	BackgroundPlaneHeight int        `json:"background_plane_height"`
	Counts                jsonCounts `json:"counts"`
	Lines                 []jsonLine `json:"lines"`
}

type jsonCounts struct {
	Cut      int `json:"cut"`
	Mountain int `json:"mountain"`
	Valley   int `json:"valley"`
}

type jsonLine struct {
	Style string `json:"style"`
	X1    int    `json:"x1"`
	Y1    int    `json:"y1"`
	X2    int    `json:"x2"`
	Y2    int    `json:"y2"`
}

// RenderJSON exports the sheet geometry and its lines, in grid coordinates,
// as a pretty-printed JSON document.
func RenderJSON(cfg *kirigami.Configuration, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	lines, err := cfg.CollectLines()
	if err != nil {
		return nil, err
	}
	if r.sorted {
		kirigami.SortLines(lines)
	}

	out := jsonOutput{
		Name:                  r.name,
		Width:                 cfg.Width(),
		Height:                cfg.Height(),
		BasePlaneDepth:        cfg.BasePlaneDepth(),
		BackgroundPlaneHeight: cfg.BackgroundPlaneHeight(),
		Lines:                 make([]jsonLine, 0, len(lines)),
	}
	for _, l := range lines {
		switch l.Style {
		case kirigami.Cut:
			out.Counts.Cut++
		case kirigami.MountainFold:
			out.Counts.Mountain++
		case kirigami.ValleyFold:
			out.Counts.Valley++
		}
		out.Lines = append(out.Lines, jsonLine{
			Style: StyleName(l.Style),
			X1:    l.Start.X, Y1: l.Start.Y,
			X2: l.End.X, Y2: l.End.Y,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
