package render

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/DeafMist/news-dashboard/internal/chart"
	"github.com/DeafMist/news-dashboard/internal/metrics"
	"github.com/DeafMist/news-dashboard/internal/models"
)

// ChartFailure records a chart that was left empty.
type ChartFailure struct {
	Chart     string
	Container string
	Err       error
}

func (f ChartFailure) Error() string {
	return fmt.Sprintf("render %s: %v", f.Chart, f.Err)
}

// Charts draws visualizations through a sink. A chart that cannot be drawn
// is logged and its container left empty; the others still render.
type Charts struct {
	sink chart.Sink
	log  *slog.Logger
}

// NewCharts returns a chart renderer.
func NewCharts(sink chart.Sink, logger *slog.Logger) *Charts {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Charts{sink: sink, log: logger}
}

// ContainerID maps a visualization name to its container: "viz-" plus the
// name with its first underscore turned into a dash.
func ContainerID(name string) string {
	return "viz-" + strings.Replace(name, "_", "-", 1)
}

// Simple draws the document's pre-built figures. Visualizations without a
// container on the page are skipped.
func (c *Charts) Simple(s Surface, visualizations []models.Visualization) []ChartFailure {
	var failures []ChartFailure
	for _, v := range visualizations {
		container := ContainerID(v.Name)
		if !s.Has(container) {
			c.log.Debug("no container for visualization", slog.String("chart", v.Name), slog.String("container", container))
			continue
		}
		fig, err := chart.ParseFigure(v.Spec)
		if err == nil {
			err = c.sink.Draw(container, fig, chart.DefaultOptions)
		}
		if err != nil {
			failures = append(failures, c.fail(s, v.Name, container, err))
		}
	}
	return failures
}

// Topic chart containers.
const (
	ContainerSources   = "viz-sources"
	ContainerTimeline  = "viz-timeline"
	ContainerCountries = "viz-countries"
)

// Topic draws the source, timeline and country charts of one topic.
func (c *Charts) Topic(s Surface, td models.TopicData) []ChartFailure {
	specs := []struct {
		name      string
		container string
		build     func(json.RawMessage) (chart.Figure, error)
		raw       json.RawMessage
	}{
		{name: "sources", container: ContainerSources, build: chart.SourceBar, raw: td.SourceCounts},
		{name: "timeline", container: ContainerTimeline, build: chart.Timeline, raw: td.DateCounts},
		{name: "countries", container: ContainerCountries, build: chart.CountryPie, raw: td.CountryCounts},
	}

	var failures []ChartFailure
	for _, spec := range specs {
		fig, err := spec.build(spec.raw)
		if err == nil {
			err = c.sink.Draw(spec.container, fig, chart.DefaultOptions)
		}
		if err != nil {
			failures = append(failures, c.fail(s, spec.name, spec.container, err))
		}
	}
	return failures
}

func (c *Charts) fail(s Surface, name, container string, err error) ChartFailure {
	metrics.ChartFailures.WithLabelValues(name).Inc()
	c.log.Error("render visualization",
		slog.String("chart", name),
		slog.String("container", container),
		slog.Any("err", err),
	)
	if s.Has(container) {
		if cerr := s.Clear(container); cerr != nil {
			c.log.Warn("clear chart container", slog.String("container", container), slog.Any("err", cerr))
		}
	}
	return ChartFailure{Chart: name, Container: container, Err: err}
}
