package dashboard

import (
	"fmt"
	"log/slog"

	"github.com/DeafMist/news-dashboard/internal/models"
	"github.com/DeafMist/news-dashboard/internal/render"
)

// Simple is the single-topic dashboard. It is rendered once and never changes.
type Simple struct {
	*page
}

// NewSimple builds an empty simple page.
func NewSimple(opts Options) (*Simple, error) {
	p, err := newPage("simple.html", opts)
	if err != nil {
		return nil, err
	}
	return &Simple{page: p}, nil
}

// Render fills the page from ds. Chart failures are logged and leave only
// their own container empty.
func (s *Simple) Render(ds *models.SimpleDataset) error {
	if err := render.SimpleStats(s.doc, ds); err != nil {
		return fmt.Errorf("render stats: %w", err)
	}
	if err := render.Summary(s.doc, render.MountSummary, ds.Summary); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	failures := s.charts.Simple(s.doc, ds.Visualizations)

	if err := render.SimpleArticles(s.doc, ds.Articles, s.opts.Placeholder); err != nil {
		return fmt.Errorf("render articles: %w", err)
	}
	if err := render.GenerationDate(s.doc, ds.Metadata.GeneratedAt, s.opts.Location); err != nil {
		return fmt.Errorf("render generation date: %w", err)
	}

	s.log.Info("simple dashboard rendered",
		slog.Int("articles", len(ds.Articles)),
		slog.Int("charts", len(ds.Visualizations)),
		slog.Int("chart_failures", len(failures)),
	)
	return nil
}

// Fail shows the load failure state.
func (s *Simple) Fail(err error) {
	s.log.Error("dashboard unavailable", slog.Any("err", err))
	if rerr := render.LoadFailure(s.doc, render.MountSummary, render.MountArticlesList); rerr != nil {
		s.log.Error("render load failure", slog.Any("err", rerr))
	}
}
