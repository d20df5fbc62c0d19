// Package sink renders a canvas into output formats.
//
// SVG is written with ajstarks/svgo and PNG is rasterized natively with
// fogleman/gg using the same Go fonts the canvas measures with, so text
// lands exactly where the layout engines put it. PDF goes through
// rsvg-convert, and JSON dumps the resolved scene for other tools.
package sink
