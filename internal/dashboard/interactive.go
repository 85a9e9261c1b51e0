package dashboard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/DeafMist/news-dashboard/internal/dom"
	"github.com/DeafMist/news-dashboard/internal/filter"
	"github.com/DeafMist/news-dashboard/internal/metrics"
	"github.com/DeafMist/news-dashboard/internal/models"
	"github.com/DeafMist/news-dashboard/internal/render"
	"github.com/DeafMist/news-dashboard/internal/state"
)

var (
	// ErrUnknownTopic is returned when selecting a key missing from the dataset.
	ErrUnknownTopic = errors.New("unknown topic")
	// ErrNoTopic is returned by filter changes before any topic is selected.
	ErrNoTopic = errors.New("no topic selected")
)

// Events the interactive page dispatches.
const (
	EventClick  = "click"
	EventChange = "change"
)

// Interactive is the multi-topic dashboard: a topic switch controller and a
// filter engine over one page. It is not safe for concurrent use; callers
// serialize access per page.
type Interactive struct {
	*page
	data  *models.InteractiveDataset
	state *state.ViewState
}

// NewInteractive builds an empty interactive page.
func NewInteractive(opts Options) (*Interactive, error) {
	p, err := newPage("interactive.html", opts)
	if err != nil {
		return nil, err
	}
	return &Interactive{page: p, state: state.New()}, nil
}

// Init attaches the dataset, registers control listeners and selects the
// first topic in document order.
func (d *Interactive) Init(data *models.InteractiveDataset) error {
	d.data = data

	d.doc.On(render.MountTopicButtons, EventClick, d.SelectTopic)
	d.doc.On(render.MountSourceFilter, EventChange, d.SetSourceFilter)
	d.doc.On(render.MountCountryFilter, EventChange, d.SetCountryFilter)
	d.doc.On(render.MountResetFilters, EventClick, func(string) error { return d.ResetFilters() })

	if len(data.Topics) == 0 {
		d.log.Warn("dataset has no topics")
		if err := render.TopicButtons(d.doc, nil, ""); err != nil {
			return err
		}
		return d.doc.SetText(render.MountTopicSummary, render.NoTopics)
	}

	return d.SelectTopic(data.Topics[0].Key)
}

// Fail shows the load failure state. No listeners are registered.
func (d *Interactive) Fail(err error) {
	d.log.Error("dashboard unavailable", slog.Any("err", err))
	if rerr := render.LoadFailure(d.doc, render.MountTopicSummary, render.MountArticlesGrid); rerr != nil {
		d.log.Error("render load failure", slog.Any("err", rerr))
	}
}

// SelectTopic switches to key, resets both filters and re-renders every
// section for the topic. Unknown keys leave the state untouched.
func (d *Interactive) SelectTopic(key string) error {
	td, ok := d.data.Topic(key)
	if !ok {
		return fmt.Errorf("select %q: %w", key, ErrUnknownTopic)
	}

	d.state.Select(key)

	if err := render.TopicButtons(d.doc, d.data.Topics, key); err != nil {
		return fmt.Errorf("render topic buttons: %w", err)
	}
	if err := render.TopicStats(d.doc, key, td); err != nil {
		return fmt.Errorf("render topic stats: %w", err)
	}
	if err := render.Summary(d.doc, render.MountTopicSummary, td.Summary); err != nil {
		return fmt.Errorf("render topic summary: %w", err)
	}

	failures := d.charts.Topic(d.doc, td)

	if err := d.renderArticles(td); err != nil {
		return err
	}

	d.log.Debug("topic selected",
		slog.String("topic", key),
		slog.Int("articles", len(td.Articles)),
		slog.Int("chart_failures", len(failures)),
	)
	return nil
}

// SetSourceFilter applies a source filter to the current topic.
func (d *Interactive) SetSourceFilter(value string) error {
	td, err := d.current()
	if err != nil {
		return err
	}
	d.state.SetSource(value)
	return d.renderArticles(td)
}

// SetCountryFilter applies a country filter to the current topic.
func (d *Interactive) SetCountryFilter(value string) error {
	td, err := d.current()
	if err != nil {
		return err
	}
	d.state.SetCountry(value)
	return d.renderArticles(td)
}

// ResetFilters disables both filters for the current topic.
func (d *Interactive) ResetFilters() error {
	td, err := d.current()
	if err != nil {
		return err
	}
	d.state.ResetFilters()
	return d.renderArticles(td)
}

// Dispatch routes a control event to its listener.
func (d *Interactive) Dispatch(target, event, value string) error {
	err := d.doc.Dispatch(target, event, value)
	status := metrics.StatusOK
	switch {
	case errors.Is(err, dom.ErrNoListener):
		// unregistered pairs share one series
		target, event, status = metrics.LabelUnknown, metrics.LabelUnknown, metrics.StatusError
	case err != nil:
		status = metrics.StatusError
	}
	metrics.Events.WithLabelValues(target, event, status).Inc()
	return err
}

// State returns a copy of the view state.
func (d *Interactive) State() state.ViewState {
	return *d.state
}

// Visible returns the articles passing the active filters.
func (d *Interactive) Visible() []models.Article {
	td, err := d.current()
	if err != nil {
		return []models.Article{}
	}
	return filter.Apply(td.Articles, d.state.Criteria())
}

func (d *Interactive) current() (models.TopicData, error) {
	if !d.state.Initialized() {
		return models.TopicData{}, ErrNoTopic
	}
	td, ok := d.data.Topic(d.state.CurrentTopic)
	if !ok {
		return models.TopicData{}, fmt.Errorf("current %q: %w", d.state.CurrentTopic, ErrUnknownTopic)
	}
	return td, nil
}

// renderArticles recomputes the filtered subset in full. The dropdowns are
// rebuilt too so the served page shows the active selection.
func (d *Interactive) renderArticles(td models.TopicData) error {
	criteria := d.state.Criteria()
	if err := render.FilterOptions(d.doc, td.Stats, criteria); err != nil {
		return fmt.Errorf("render filter options: %w", err)
	}
	visible := filter.Apply(td.Articles, criteria)
	if err := render.TopicArticles(d.doc, visible, d.opts.Placeholder); err != nil {
		return fmt.Errorf("render articles: %w", err)
	}
	return nil
}
