// Package text lays out runs of tokens as lines of text on a surface.
//
// [Annotate] places every token, wraps greedily at the effective right
// edge, aligns each line (left, right, center or one of the justify
// variants) and optionally attaches legend labels to the lines where a
// labelled token first appears.
//
//	tokens := text.Split("The quick brown fox jumps over the lazy dog.")
//	lines, err := text.Annotate(canvas, tokens, text.Options{
//	    X:           text.Between(0, 1),
//	    WordSpacing: 0.01,
//	    Align:       text.AlignJustify,
//	})
//
// All work happens synchronously against the surface. Measurements are
// cached only for the duration of a single Annotate call.
package text
