// Package pipeline turns chart documents into rendered artifacts.
//
// The pipeline has two stages shared by the CLI and the HTTP server:
//
//  1. Layout: draw every section of a [document.Document] onto a fresh
//     canvas, running the text and label layout engines
//  2. Render: write the canvas in each requested format (SVG, PNG, PDF, JSON)
//
// A [Runner] wraps both stages with an artifact cache keyed by the
// document's content.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	doc, err := document.Load("chart.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg", "png"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/multiplex/pkg/cache"
	"github.com/matzehuels/multiplex/pkg/errors"
)

// DefaultScale is the PNG pixel density.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options configures a pipeline run. It supports JSON for server requests.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	// Width and Height override the document's figure size when set.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	// Scale is the PNG pixel density.
	Scale float64 `json:"scale,omitempty"`
	// Debug outlines every text box in SVG output.
	Debug bool `json:"debug,omitempty"`
	// LabelPasses caps label distribution; zero keeps the default.
	LabelPasses int `json:"label_passes,omitempty"`
	// NoCache skips both cache reads and writes.
	NoCache bool `json:"no_cache,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DocHash is the content hash of the document source; empty when the
	// document has no source.
	DocHash   string
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sections   int
	Items      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which artifacts came from the cache.
type CacheInfo struct {
	// Hits lists the formats served from the cache.
	Hits []string
	// RenderHit is true when every artifact came from the cache and no
	// layout ran.
	RenderHit bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("height", o.Height); err != nil {
		return err
	}
	if err := errors.ValidatePositive("scale", o.Scale); err != nil {
		return err
	}
	if o.LabelPasses < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "label_passes must not be negative, got %d", o.LabelPasses)
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Width: o.Width, Height: o.Height, LabelPasses: o.LabelPasses}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG, FormatPDF:
		k.Debug = o.Debug
	}
	return k
}
