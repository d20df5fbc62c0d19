package sink

import (
	"encoding/json"

	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title  string
	styles bool
}

// WithJSONTitle records a title in the output.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

// WithJSONStyles includes the full style of every item.
func WithJSONStyles() JSONOption { return func(r *jsonRenderer) { r.styles = true } }

type jsonOutput struct {
	Title      string     `json:"title,omitempty"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Margin     float64    `json:"margin"`
	XLim       [2]float64 `json:"xlim"`
	YLim       [2]float64 `json:"ylim"`
	Background string     `json:"background"`
	Items      []jsonItem `json:"items"`
}

type jsonItem struct {
	Kind   canvas.Kind  `json:"kind"`
	Text   string       `json:"text,omitempty"`
	Data   geom.Box     `json:"data"`
	Pixels geom.Box     `json:"pixels"`
	Points []geom.Point `json:"points,omitempty"`
	Style  *style.Style `json:"style,omitempty"`
}

// RenderJSON exports the resolved scene: every live item with its data and
// pixel bounding boxes, as a pretty-printed JSON document.
func RenderJSON(c *canvas.Canvas, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	o := c.Options()
	out := jsonOutput{
		Title:      r.title,
		Width:      o.Width,
		Height:     o.Height,
		Margin:     o.Margin,
		XLim:       o.XLim,
		YLim:       o.YLim,
		Background: o.Background,
		Items:      []jsonItem{},
	}

	for _, it := range c.Items() {
		data, err := c.Measure(it.Handle, surface.Data)
		if err != nil {
			return nil, err
		}
		ji := jsonItem{
			Kind:   it.Kind,
			Text:   it.Text,
			Data:   data,
			Pixels: c.Transform(surface.Display).ApplyBox(data),
			Points: it.Points,
		}
		if r.styles {
			st := it.Style
			ji.Style = &st
		}
		out.Items = append(out.Items, ji)
	}

	return json.MarshalIndent(out, "", "  ")
}
