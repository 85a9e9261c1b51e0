package chart

import (
	"encoding/json"
	"fmt"

	"github.com/DeafMist/news-dashboard/internal/dom"
)

// PlotlySink draws figures as Plotly.newPlot calls placed in the container.
type PlotlySink struct {
	doc *dom.Document
}

// NewPlotlySink returns a sink writing into doc.
func NewPlotlySink(doc *dom.Document) *PlotlySink {
	return &PlotlySink{doc: doc}
}

// Draw replaces the container content with the draw call for fig.
func (s *PlotlySink) Draw(container string, fig Figure, opts Options) error {
	if !s.doc.Has(container) {
		return fmt.Errorf("draw %s: %w", container, dom.ErrMountNotFound)
	}
	if len(fig.Data) == 0 {
		return fmt.Errorf("draw %s: %w: empty data", container, ErrMalformedFigure)
	}

	script, err := drawCall(container, fig, opts)
	if err != nil {
		return fmt.Errorf("draw %s: %w", container, err)
	}

	if err := s.doc.Clear(container); err != nil {
		return err
	}
	return s.doc.Append(container, dom.Element("script", dom.Attrs("class", "chart-draw"), dom.Text(script)))
}

// drawCall builds the script text. json.Marshal escapes '<' and '>' so the
// payload cannot close the script element.
func drawCall(container string, fig Figure, opts Options) (string, error) {
	id, err := json.Marshal(container)
	if err != nil {
		return "", err
	}
	data, err := compact(fig.Data, "[]")
	if err != nil {
		return "", fmt.Errorf("%w: data: %v", ErrMalformedFigure, err)
	}
	layout, err := compact(fig.Layout, "{}")
	if err != nil {
		return "", fmt.Errorf("%w: layout: %v", ErrMalformedFigure, err)
	}
	config, err := json.Marshal(opts)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Plotly.newPlot(document.getElementById(%s), %s, %s, %s);", id, data, layout, config), nil
}

// compact re-encodes raw through json.Marshal to apply HTML escaping.
func compact(raw json.RawMessage, fallback string) (string, error) {
	if len(raw) == 0 {
		return fallback, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
