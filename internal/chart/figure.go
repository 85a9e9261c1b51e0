package chart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedFigure is returned for chart specs that cannot be drawn.
var ErrMalformedFigure = errors.New("malformed figure")

// Figure is a Plotly figure: a list of traces and a layout.
type Figure struct {
	Data   json.RawMessage `json:"data"`
	Layout json.RawMessage `json:"layout,omitempty"`
}

// Options are the Plotly config flags passed to every draw call.
type Options struct {
	Responsive     bool `json:"responsive"`
	DisplayModeBar bool `json:"displayModeBar"`
}

// DefaultOptions resizes with the container and hides the mode bar.
var DefaultOptions = Options{Responsive: true, DisplayModeBar: false}

// Sink draws a figure into a named container.
type Sink interface {
	Draw(container string, fig Figure, opts Options) error
}

// ParseFigure validates a figure spec.
func ParseFigure(spec []byte) (Figure, error) {
	if !gjson.ValidBytes(spec) {
		return Figure{}, fmt.Errorf("%w: invalid json", ErrMalformedFigure)
	}

	root := gjson.ParseBytes(spec)
	if !root.IsObject() {
		return Figure{}, fmt.Errorf("%w: figure is not an object", ErrMalformedFigure)
	}

	data := root.Get("data")
	if !data.IsArray() {
		return Figure{}, fmt.Errorf("%w: data must be an array", ErrMalformedFigure)
	}

	fig := Figure{Data: json.RawMessage(data.Raw)}
	if layout := root.Get("layout"); layout.Exists() && layout.Type != gjson.Null {
		if !layout.IsObject() {
			return Figure{}, fmt.Errorf("%w: layout must be an object", ErrMalformedFigure)
		}
		fig.Layout = json.RawMessage(layout.Raw)
	}

	return fig, nil
}

func newFigure(traces any, layout map[string]any) (Figure, error) {
	data, err := json.Marshal(traces)
	if err != nil {
		return Figure{}, fmt.Errorf("marshal traces: %w", err)
	}
	l, err := json.Marshal(layout)
	if err != nil {
		return Figure{}, fmt.Errorf("marshal layout: %w", err)
	}
	return Figure{Data: data, Layout: l}, nil
}
