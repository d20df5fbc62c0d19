package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/multiplex/pkg/pipeline"
)

const testChart = `
title = "Test"

[[series]]
label = "a"
y = [1, 2, 3]
`

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name, output, input, want string
	}{
		{"from input", "", "charts/sales.toml", "charts/sales"},
		{"known extension stripped", "out/chart.svg", "x.toml", "out/chart"},
		{"unknown extension kept", "out/chart.v2", "x.toml", "out/chart.v2"},
		{"no extension", "out/chart", "x.toml", "out/chart"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	got := outputPaths("final.svg", "chart.toml", []string{"svg"})
	if got["svg"] != "final.svg" {
		t.Errorf("single format path = %q, want final.svg", got["svg"])
	}

	got = outputPaths("", "chart.toml", []string{"svg", "png"})
	if got["svg"] != "chart.svg" || got["png"] != "chart.png" {
		t.Errorf("multi format paths = %v", got)
	}
}

func TestRunRender(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "chart.toml")
	if err := os.WriteFile(input, []byte(testChart), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCLI()
	out := filepath.Join(dir, "out", "chart")
	err := c.runRender(context.Background(), input, renderOpts{output: out, formats: "svg,json", scale: 2, noCache: true})
	if err != nil {
		t.Fatalf("runRender: %v", err)
	}

	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg file has no svg element")
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Errorf("json not written: %v", err)
	}
}

func TestRunRenderRejects(t *testing.T) {
	c := newTestCLI()
	if err := c.runRender(context.Background(), "missing.toml", renderOpts{noCache: true}); err == nil {
		t.Error("missing input should fail")
	}

	input := filepath.Join(t.TempDir(), "chart.toml")
	if err := os.WriteFile(input, []byte(testChart), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.runRender(context.Background(), input, renderOpts{formats: "gif", noCache: true}); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestRunText(t *testing.T) {
	out := filepath.Join(t.TempDir(), "text.svg")
	c := newTestCLI()
	if err := c.runText(textRequest("a few words to lay out"), out); err != nil {
		t.Fatalf("runText: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("svg not written: %v", err)
	}

	bad := textRequest("words")
	bad.Align = "diagonal"
	if err := c.runText(bad, ""); err == nil {
		t.Error("unknown alignment should fail")
	}
}

func TestRootCommand(t *testing.T) {
	root := newTestCLI().RootCommand()
	want := []string{"render", "text", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func textRequest(s string) pipeline.TextRequest {
	return pipeline.TextRequest{Text: s, Width: 0.5}
}
