package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/multiplex/pkg/document"
	"github.com/matzehuels/multiplex/pkg/errors"
)

const seriesDoc = `
title = "Growth"

[[series]]
label = "a"
y = [1, 2, 3]

[[series]]
label = "b"
y = [1.1, 2.1, 2.9]
`

const slopeDoc = `
slope:
  - from: 1
    to: 4
    left_label: start
    right_label: end
`

func mustParse(t *testing.T, src, format string) *document.Document {
	t.Helper()
	doc, err := Parse([]byte(src), format)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

// memCache is an in-memory cache.Cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(" SVG, png,,svg ")
	if err != nil {
		t.Fatalf("ParseFormats: %v", err)
	}
	if len(got) != 2 || got[0] != "svg" || got[1] != "png" {
		t.Errorf("ParseFormats = %v, want [svg png]", got)
	}

	if _, err := ParseFormats("svg,gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v, want INVALID_FORMAT", err)
	}
}

func TestValidateForRender(t *testing.T) {
	var opts Options
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("zero options: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}

	for name, o := range map[string]Options{
		"negative width":  {Width: -1},
		"negative scale":  {Scale: -2},
		"negative passes": {LabelPasses: -1},
	} {
		if err := o.ValidateForRender(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 3, Debug: true}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 || k.Debug {
		t.Errorf("png key = %+v, want scale only", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Scale != 0 || !k.Debug {
		t.Errorf("svg key = %+v, want debug only", k)
	}
	if k := opts.ArtifactKeyOpts(FormatJSON); k.Scale != 0 || k.Debug {
		t.Errorf("json key = %+v, want neither", k)
	}
}

func TestParse(t *testing.T) {
	doc := mustParse(t, seriesDoc, "")
	if doc.Format != document.FormatTOML || len(doc.Series) != 2 {
		t.Errorf("TOML detection: format %q, %d series", doc.Format, len(doc.Series))
	}

	doc = mustParse(t, slopeDoc, "")
	if doc.Format != document.FormatYAML || len(doc.Slopes) != 1 {
		t.Errorf("YAML detection: format %q, %d slopes", doc.Format, len(doc.Slopes))
	}

	if _, err := Parse(nil, ""); err == nil {
		t.Error("empty input should fail")
	}
	if _, err := Parse([]byte(seriesDoc), "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v, want INVALID_FORMAT", err)
	}

	// Valid YAML that fails validation reports the validation problem.
	_, err := Parse([]byte("series:\n  - label: a\n    x: [1, 2]\n    y: [1]\n"), "")
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("invalid YAML document error = %v, want INVALID_DOCUMENT", err)
	}
}

func TestLayoutFitsSeries(t *testing.T) {
	c, err := Layout(context.Background(), mustParse(t, seriesDoc, "toml"), Options{})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	lo, hi := c.Extent()
	if lo != 0 || math.Abs(hi-2.5) > 1e-9 {
		t.Errorf("xlim = [%g, %g], want [0, 2.5]", lo, hi)
	}
	ylo, yhi := c.VerticalExtent()
	if math.Abs(ylo-0.9) > 1e-9 || math.Abs(yhi-3.1) > 1e-9 {
		t.Errorf("ylim = [%g, %g], want [0.9, 3.1]", ylo, yhi)
	}

	// Two polylines and two labels.
	if n := len(c.Items()); n != 4 {
		t.Errorf("items = %d, want 4", n)
	}
}

func TestLayoutKeepsFigureLimits(t *testing.T) {
	src := seriesDoc + "\n[figure]\nxlim = [-1, 10]\n"
	c, err := Layout(context.Background(), mustParse(t, src, "toml"), Options{Width: 400})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if lo, hi := c.Extent(); lo != -1 || hi != 10 {
		t.Errorf("xlim = [%g, %g], want [-1, 10]", lo, hi)
	}
	if w, _ := c.Size(); w != 400 {
		t.Errorf("width = %g, want 400", w)
	}
}

func TestLayoutSlopes(t *testing.T) {
	c, err := Layout(context.Background(), mustParse(t, slopeDoc, "yaml"), Options{})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	lo, hi := c.Extent()
	if math.Abs(lo+slopeLabelRoom) > 1e-9 || math.Abs(hi-1-slopeLabelRoom) > 1e-9 {
		t.Errorf("xlim = [%g, %g]", lo, hi)
	}
	if ylo, yhi := c.VerticalExtent(); ylo >= 1 || yhi <= 4 {
		t.Errorf("ylim = [%g, %g] does not contain [1, 4]", ylo, yhi)
	}
}

func TestLayoutCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Layout(ctx, mustParse(t, seriesDoc, "toml"), Options{}); err == nil {
		t.Error("canceled context should fail")
	}
}

func TestRender(t *testing.T) {
	c, err := Layout(context.Background(), mustParse(t, seriesDoc, "toml"), Options{})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	out, err := Render(c, "Growth", Options{Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(out[FormatSVG]), []byte("<?xml")) {
		t.Errorf("svg output starts with %q", out[FormatSVG][:min(20, len(out[FormatSVG]))])
	}
	if !bytes.Contains(out[FormatSVG], []byte("Growth")) {
		t.Error("svg output missing title")
	}
	if !json.Valid(out[FormatJSON]) {
		t.Error("json output is not valid JSON")
	}

	if _, err := Render(c, "", Options{Formats: []string{"gif"}}); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestRunnerCaches(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil)
	doc := mustParse(t, seriesDoc, "toml")
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RenderHit || len(first.CacheInfo.Hits) != 0 {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if first.DocHash == "" || first.Stats.Items == 0 || first.Stats.Sections != 2 {
		t.Errorf("first run result = %+v", first.Stats)
	}
	if mc.sets != 2 {
		t.Errorf("cache writes = %d, want 2", mc.sets)
	}

	second, err := r.Execute(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should be served from cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	// A different debug flag changes the svg key but not the json key.
	third, err := r.Execute(context.Background(), doc, Options{Formats: opts.Formats, Debug: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.RenderHit || len(third.CacheInfo.Hits) != 1 || third.CacheInfo.Hits[0] != FormatJSON {
		t.Errorf("third run hits = %v, want [json]", third.CacheInfo.Hits)
	}
}

func TestRunnerNoCache(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil)
	defer r.Close()

	doc := mustParse(t, seriesDoc, "toml")
	for range 2 {
		res, err := r.Execute(context.Background(), doc, Options{NoCache: true})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if res.CacheInfo.RenderHit {
			t.Error("NoCache run served from cache")
		}
	}
	if mc.sets != 0 {
		t.Errorf("cache writes = %d, want 0", mc.sets)
	}
}

func TestRunnerRejectsOptions(t *testing.T) {
	r := NewRunner(nil, nil)
	_, err := r.Execute(context.Background(), mustParse(t, seriesDoc, "toml"), Options{Formats: []string{"bmp"}})
	if err == nil {
		t.Fatal("expected error")
	}
}
