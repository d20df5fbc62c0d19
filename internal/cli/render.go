package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/multiplex/pkg/document"
	"github.com/matzehuels/multiplex/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file (single format) or base path
	formats     string  // comma-separated output formats
	width       float64 // overrides the figure width when set
	height      float64 // overrides the figure height when set
	scale       float64 // PNG pixel density
	debug       bool    // outline text boxes
	labelPasses int     // cap on label distribution passes
	noCache     bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart document to SVG, PNG, PDF or JSON",
		Long: `Render lays out a TOML or YAML chart document and writes one file per format.

With a single format, --output names the file. With several formats it is a
base path and each file gets the format's extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "override figure width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "override figure height in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "outline text boxes in SVG and PDF output")
	cmd.Flags().IntVar(&opts.labelPasses, "label-passes", 0, "maximum label distribution passes (0 = default)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	formats := []string{pipeline.FormatSVG}
	if opts.formats != "" {
		var err error
		if formats, err = pipeline.ParseFormats(opts.formats); err != nil {
			return err
		}
	}

	doc, err := document.Load(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded document", "path", input, "format", doc.Format, "sections", doc.Sections())

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	sp := newSpinner(ctx, os.Stderr, "Loading "+filepath.Base(input)+"...")
	sp.Start()
	var res *pipeline.Result
	sp.follow(func() {
		res, err = runner.Execute(ctx, doc, pipeline.Options{
			Formats:     formats,
			Width:       opts.width,
			Height:      opts.height,
			Scale:       opts.scale,
			Debug:       opts.debug,
			LabelPasses: opts.labelPasses,
			NoCache:     opts.noCache,
			Logger:      c.Logger,
		})
	})
	if err != nil {
		sp.StopWithError("Render failed")
		return err
	}
	sp.Stop()

	paths := outputPaths(opts.output, input, formats)
	for _, f := range formats {
		if err := writeFile(paths[f], res.Artifacts[f]); err != nil {
			return err
		}
	}
	prog.done("Rendered " + input)

	printSuccess("Rendered %s", input)
	printStats(res.Stats.Sections, res.Stats.Items, res.CacheInfo.RenderHit)
	for _, f := range formats {
		printFile(paths[f])
	}
	return nil
}

// outputPaths maps each format to its file. A single format writes to
// output verbatim when given; otherwise files share a base path derived
// from output or the input file name.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or the extension
// of input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
