// Package render converts rendered figures between output formats.
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg). The sinks in the [sink] subpackage turn a canvas into
// SVG, PNG, PDF or JSON; PNG is rasterized in-process.
//
//	svg := sink.RenderSVG(c)
//	pdf, err := render.ToPDF(svg)
package render
