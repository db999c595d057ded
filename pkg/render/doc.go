// Package render converts SVG cut patterns to print formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, _ := sink.RenderSVG(cfg)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// librsvg has to be installed separately:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// The [sink] subpackage turns a [kirigami.Configuration] into SVG, JSON,
// PDF and PNG documents.
//
// [sink]: github.com/matzehuels/kirigami/pkg/render/sink
// [kirigami.Configuration]: github.com/matzehuels/kirigami/pkg/kirigami.Configuration
package render
