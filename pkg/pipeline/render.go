package pipeline

import (
	"fmt"

	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/render/sink"
)

// Render writes c in every format of opts.Formats.
func Render(c *canvas.Canvas, title string, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(title, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(c, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(c, sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(c, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(c, sink.WithJSONTitle(title), sink.WithJSONStyles())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(title string, opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(title))
	}
	if opts.Debug {
		svgOpts = append(svgOpts, sink.WithDebugBoxes())
	}
	return svgOpts
}
