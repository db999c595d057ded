package sink

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	kerrors "github.com/matzehuels/kirigami/pkg/errors"
	"github.com/matzehuels/kirigami/pkg/kirigami"
)

// DefaultCellSize is the cell edge used when neither cell nor page size is set.
const DefaultCellSize = 10.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellW, cellH   float64
	pageW, pageH   float64
	preserveAspect bool
	styles         map[kirigami.LineStyle]string
	sorted         bool
}

// WithCellSize sets the drawing size of one grid cell.
func WithCellSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.cellW, r.cellH = w, h }
}

// WithPageSize fits the sheet into a page instead of using a cell size.
func WithPageSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.pageW, r.pageH = w, h }
}

// WithPreserveAspectRatio keeps cells square. It is on by default.
func WithPreserveAspectRatio(on bool) SVGOption {
	return func(r *svgRenderer) { r.preserveAspect = on }
}

// WithLineStyles overrides the style declaration of the given line styles.
// Styles missing from m keep their default.
func WithLineStyles(m map[kirigami.LineStyle]string) SVGOption {
	return func(r *svgRenderer) {
		for s, decl := range m {
			r.styles[s] = decl
		}
	}
}

// WithSortedLines emits lines in CompareLines order rather than scan order.
func WithSortedLines() SVGOption {
	return func(r *svgRenderer) { r.sorted = true }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{preserveAspect: true, styles: DefaultLineStyles()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Geometry is the resolved drawing size of a sheet.
type Geometry struct {
	CellWidth, CellHeight float64
	PageWidth, PageHeight float64
}

// geometry resolves cell and page size for a width x height grid.
func (r *svgRenderer) geometry(width, height int) (Geometry, error) {
	cols, rows := float64(width), float64(max(height, 1))
	var g Geometry

	if r.pageW == 0 && r.pageH == 0 {
		g.CellWidth, g.CellHeight = r.cellW, r.cellH
		if g.CellWidth == 0 && g.CellHeight == 0 {
			g.CellWidth, g.CellHeight = DefaultCellSize, DefaultCellSize
		}
		if err := kerrors.ValidateSize("cell size", g.CellWidth, g.CellHeight); err != nil {
			return g, err
		}
		if r.preserveAspect {
			c := min(g.CellWidth, g.CellHeight)
			g.CellWidth, g.CellHeight = c, c
		}
		g.PageWidth, g.PageHeight = cols*g.CellWidth, float64(height)*g.CellHeight
		return g, nil
	}

	if err := kerrors.ValidateSize("page size", r.pageW, r.pageH); err != nil {
		return g, err
	}
	g.CellWidth, g.CellHeight = r.pageW/cols, r.pageH/rows
	g.PageWidth, g.PageHeight = r.pageW, r.pageH
	if r.preserveAspect {
		c := min(g.CellWidth, g.CellHeight)
		g.CellWidth, g.CellHeight = c, c
		g.PageWidth, g.PageHeight = cols*c, float64(height)*c
	}
	return g, nil
}

// ResolveGeometry reports the cell and page size RenderSVG would use.
func ResolveGeometry(cfg *kirigami.Configuration, opts ...SVGOption) (Geometry, error) {
	r := newSVGRenderer(opts...)
	return r.geometry(cfg.Width(), cfg.Height())
}

// RenderSVG draws every line of cfg on a white page.
func RenderSVG(cfg *kirigami.Configuration, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)
	for _, s := range kirigami.LineStyles {
		if err := kerrors.ValidateStyleDeclaration(r.styles[s]); err != nil {
			return nil, kerrors.Wrap(kerrors.ErrCodeInvalidStyle, err, "%s lines", StyleName(s))
		}
	}
	g, err := r.geometry(cfg.Width(), cfg.Height())
	if err != nil {
		return nil, err
	}

	lines, err := cfg.CollectLines()
	if err != nil {
		return nil, err
	}
	if r.sorted {
		slices.SortFunc(lines, kirigami.CompareLines)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(g.PageWidth), num(g.PageHeight), num(g.PageWidth), num(g.PageHeight))
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" style="stroke:#000000; fill: #ffffff"/>`+"\n",
		num(g.PageWidth), num(g.PageHeight))
	for _, l := range lines {
		fmt.Fprintf(&buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" style="%s" />`+"\n",
			num(float64(l.Start.X)*g.CellWidth), num(float64(l.Start.Y)*g.CellHeight),
			num(float64(l.End.X)*g.CellWidth), num(float64(l.End.Y)*g.CellHeight),
			r.styles[l.Style])
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// num formats a coordinate with as few digits as needed.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
