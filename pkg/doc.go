// Package pkg provides the libraries behind multiplex, a charting toolkit
// whose layout engines keep text and labels readable.
//
// # Overview
//
// The pkg directory is organized in layers:
//
//  1. Drawing: [geom], [style], [fonts], [surface] and [canvas]
//  2. Layout engines: [text] wraps styled tokens into aligned lines with
//     legends, [labels] spreads overlapping labels apart
//  3. Charts: [viz] builds time series, slopes, 100% bars, population
//     grids, node-link graphs and legends on a canvas
//  4. Documents: [document] decodes TOML and YAML chart descriptions
//  5. Output: [render] and its sink package write SVG, PNG, PDF and JSON
//  6. Orchestration: [pipeline] runs layout and render behind [cache]
//
// # Architecture
//
//	chart.toml / chart.yaml
//	         ↓
//	    [document] (decode + validate)
//	         ↓
//	    [pipeline] Layout → [viz] → [text] / [labels] → [canvas]
//	         ↓
//	    [pipeline] Render → sink
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Annotate a sentence directly on a canvas:
//
//	c, _ := canvas.New(canvas.Options{})
//	lines, err := text.Annotate(c, text.Split("Prices rose sharply."), text.Options{
//	    X:           text.Between(0, 1),
//	    Y:           1,
//	    WordSpacing: 0.01,
//	    Align:       text.AlignJustify,
//	})
//	svg := sink.RenderSVG(c)
//
// Or render a whole document:
//
//	doc, _ := document.Load("chart.toml")
//	res, err := pipeline.NewRunner(nil, nil).Execute(ctx, doc, pipeline.Options{})
package pkg
