package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/multiplex/pkg/pipeline"
	"github.com/matzehuels/multiplex/pkg/render/sink"
)

func (c *CLI) textCommand() *cobra.Command {
	var req pipeline.TextRequest
	var output string

	cmd := &cobra.Command{
		Use:   "text [words...]",
		Short: "Lay out a sentence and print its lines",
		Long: `Text wraps the given words the way a text section would and prints one
row per line. With --output the layout is also written as SVG.`,
		Example: `  multiplex text --align justify --width 0.4 "The quick brown fox jumps over the lazy dog."`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Text = strings.Join(args, " ")
			return c.runText(req, output)
		},
	}

	cmd.Flags().StringVar(&req.Align, "align", "", "alignment: left, right, center, justify[-start|-center|-end]")
	cmd.Flags().Float64Var(&req.Width, "width", 1, "share of the canvas width to fill, in (0, 1]")
	cmd.Flags().Float64Var(&req.WordSpacing, "word-spacing", pipeline.DefaultWordSpacing, "gap between words as a share of the width")
	cmd.Flags().Float64Var(&req.LineHeight, "line-height", 0, "line spacing multiplier (0 = default)")
	cmd.Flags().Float64Var(&req.CanvasWidth, "canvas-width", 0, "canvas width in pixels (0 = default)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the layout as SVG")

	return cmd
}

func (c *CLI) runText(req pipeline.TextRequest, output string) error {
	canvas, lines, err := pipeline.LayoutText(req)
	if err != nil {
		return err
	}
	c.Logger.Debug("laid out text", "lines", len(lines), "align", req.Align)

	fmt.Println(StyleTitle.Render(fmt.Sprintf("%d lines", len(lines))))
	for _, l := range lines {
		fmt.Println(formatLine(l.Index+1, l.String(), l.Legend))
	}
	if output == "" {
		return nil
	}
	if err := writeFile(output, sink.RenderSVG(canvas)); err != nil {
		return err
	}
	printFile(output)
	return nil
}
