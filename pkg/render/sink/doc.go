// Package sink renders the cut and fold lines of a kirigami sheet.
//
// # Overview
//
// A "sink" transforms a [kirigami.Configuration] into a final output
// format. This package provides renderers for:
//
//   - SVG: the printable cut pattern
//   - JSON: line data for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster output (requires rsvg-convert)
//
// # Sizing
//
// Grid coordinates are scaled by a cell size. Without a page size the cell
// size is used as given (10x10 by default) and the page is the grid scaled
// by it. With a page size the cell size is derived from it instead. When
// the aspect ratio is preserved (the default) both cell dimensions are set
// to the smaller one and the page shrinks to fit.
//
//	svg, err := sink.RenderSVG(cfg,
//	    sink.WithPageSize(210, 297),
//	    sink.WithPreserveAspectRatio(true),
//	)
//
// # Line Styles
//
// Each line style maps to an SVG style declaration. [DefaultLineStyles]
// draws cuts solid black, mountain folds dashed red and valley folds dashed
// blue. Override any of them with [WithLineStyles]; style names for
// configuration files are "cut", "mountain" and "valley" ([ParseLineStyle]).
//
// [kirigami.Configuration]: github.com/matzehuels/kirigami/pkg/kirigami.Configuration
package sink
