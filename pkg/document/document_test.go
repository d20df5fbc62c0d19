package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/text"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"toml", FormatTOML, true},
		{"YAML", FormatYAML, true},
		{"yml", FormatYAML, true},
		{"json", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if !tt.ok {
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	f, err := DetectFormat("charts/a.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = DetectFormat("chart")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestLoadSeries(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "series.toml"))
	require.NoError(t, err)

	assert.Equal(t, "Revenue", doc.Title)
	assert.Equal(t, FormatTOML, doc.Format)
	assert.NotEmpty(t, doc.Source)
	assert.Equal(t, 600.0, doc.Figure.Width)
	assert.Equal(t, []float64{2019, 2023}, doc.Figure.XLim)
	require.Len(t, doc.Series, 2)
	assert.Equal(t, "south", doc.Series[1].Label)
	require.NotNil(t, doc.Series[1].Line.LineWidth)
	assert.Equal(t, 2.0, *doc.Series[1].Line.LineWidth)
	assert.Equal(t, style.WeightBold, *doc.Series[1].LabelStyle.FontWeight)
	require.Len(t, doc.Legend, 1)

	base := style.Default().With(doc.Figure.Base())
	assert.Equal(t, 11.0, base.FontSize)
	assert.Equal(t, style.FamilySans, base.FontFamily)
}

func TestLoadText(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "text.yaml"))
	require.NoError(t, err)
	require.NotNil(t, doc.Text)

	tokens := doc.Text.TokenList()
	require.Len(t, tokens, 4)
	assert.Equal(t, "subject", tokens[0].Label)
	assert.Equal(t, "#1f77b4", *tokens[0].Style.Color)
	assert.True(t, text.IsPunctuation(tokens[3].Text))

	o := doc.Text.Options()
	assert.Equal(t, text.AlignJustify, o.Align)
	assert.True(t, o.WithLegend)
	assert.Equal(t, 0.01, o.WordSpacing)
}

func TestLoadBars(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "bars.toml"))
	require.NoError(t, err)
	require.Len(t, doc.Bars, 1)

	b := doc.Bars[0]
	require.Len(t, b.Bars, 3)
	assert.Equal(t, 60.0, b.Bars[2].Value)
	require.NotNil(t, b.Bars[2].Pad)
	assert.Equal(t, 0.5, *b.Bars[2].Pad)

	o := b.Options()
	assert.Equal(t, 2.0, o.MinPercentage)
	assert.Equal(t, 0.25, o.Pad)
	assert.Equal(t, 0.8, o.Height)
}

func TestLoadGraph(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "graph.yml"))
	require.NoError(t, err)
	require.NotNil(t, doc.Graph)
	assert.Len(t, doc.Graph.Nodes, 3)
	assert.Equal(t, "Bee", doc.Graph.Nodes[1].Label)
	assert.Equal(t, "neato", doc.Graph.Options().Layout)
	assert.Equal(t, 4, doc.Graph.Options().Seed)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode([]byte("[figure]\nwidht = 3\n[[series]]\ny = [1]\n"), FormatTOML)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocument))
	assert.Contains(t, err.Error(), "figure.widht")

	_, err = Decode([]byte("figure:\n  widht: 3\nseries:\n  - y: [1]\n"), FormatYAML)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocument))
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode([]byte("[figure"), FormatTOML)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocument))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "title = \"x\"\n", "draws nothing"},
		{"exclusive", "[text]\ncontent = \"a\"\n[population]\nrows = 2\n", "cannot share"},
		{"text without content", "[text]\nalign = \"left\"\n", "text"},
		{"text both", "[text]\ncontent = \"a\"\ntokens = [{text = \"b\"}]\n", "mutually exclusive"},
		{"bad align", "[text]\ncontent = \"a\"\nalign = \"middle\"\n", "unknown alignment"},
		{"bad padding", "[text]\ncontent = \"a\"\nlpad = 0.6\nrpad = 0.6\n", "text"},
		{"series lengths", "[[series]]\nx = [1, 2]\ny = [1]\n", "series[0]"},
		{"bad xlim", "[figure]\nxlim = [1, 0]\n[[series]]\ny = [1]\n", "figure"},
		{"short ylim", "[figure]\nylim = [1]\n[[series]]\ny = [1]\n", "exactly 2"},
		{"font", "[figure]\nfont = \"serif\"\n[[series]]\ny = [1]\n", "unknown font"},
		{"negative bar", "[[bars]]\nbar = [{value = -1}]\n", "bars[0]"},
		{"no bars", "[[bars]]\nheight = 0.5\n", "at least one bar"},
		{"population rows", "[population]\ncount = 4\n", "rows"},
		{"graph edge", "[graph]\nnodes = [{id = \"a\"}]\nedges = [{from = \"a\", to = \"b\"}]\n", "unknown node"},
		{"graph duplicate", "[graph]\nnodes = [{id = \"a\"}, {id = \"a\"}]\n", "duplicate"},
		{"legend label", "[[legend]]\nline = {color = \"#000\"}\n", "label is required"},
		{"annotation x", "[[annotation]]\ntext = \"hi\"\nx = 1.5\n", "annotation[0]"},
		{"style halign", "[[series]]\ny = [1]\nlabel_style = {halign = \"middle\"}\n", "horizontal alignment"},
		{"style case", "[[series]]\ny = [1]\nlabel_style = {halign = \"Right\"}\n", "must be written"},
		{"alpha", "[[slope]]\nfrom = 1\nto = 2\nline = {alpha = 2.0}\n", "alpha"},
		{"named color", "[[series]]\ny = [1]\nline = {color = \"red\"}\n", "invalid color"},
		{"bad border", "[[bars]]\nbar = [{value = 1, style = {border = \"#12345\"}}]\n", "bars[0]"},
		{"background", "[figure]\nbackground = \"white\"\n[[series]]\ny = [1]\n", "figure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), FormatTOML)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocument), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSeriesDefaultX(t *testing.T) {
	s := SeriesSection{Y: []float64{3, 4, 5}}
	assert.Equal(t, []float64{0, 1, 2}, s.Xs())
}

func TestDecodeCopiesSource(t *testing.T) {
	src := []byte("[[series]]\ny = [1, 2]\n")
	doc, err := Decode(src, FormatTOML)
	require.NoError(t, err)
	src[0] = '#'
	assert.Equal(t, byte('['), doc.Source[0])
}

func TestLoadRejectsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err := Load(path)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}
