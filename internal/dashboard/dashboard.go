// Package dashboard wires the dataset, view state, renderers and page for
// the simple and interactive dashboards.
package dashboard

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/DeafMist/news-dashboard/internal/chart"
	"github.com/DeafMist/news-dashboard/internal/dom"
	"github.com/DeafMist/news-dashboard/internal/render"
)

//go:embed web/*.html web/static/*
var webFS embed.FS

// Static holds the page script and stylesheet.
var Static fs.FS = mustSub(webFS, "web/static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("static assets: %v", err))
	}
	return sub
}

// Options configure a dashboard page.
type Options struct {
	Placeholder string
	Location    *time.Location
	Logger      *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Placeholder == "" {
		o.Placeholder = render.DefaultPlaceholderImage
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

type page struct {
	doc    *dom.Document
	charts *render.Charts
	opts   Options
	log    *slog.Logger
}

func newPage(shell string, opts Options) (*page, error) {
	opts = opts.withDefaults()

	raw, err := webFS.ReadFile("web/" + shell)
	if err != nil {
		return nil, fmt.Errorf("read page %s: %w", shell, err)
	}
	doc, err := dom.ParseBytes(raw)
	if err != nil {
		return nil, err
	}

	return &page{
		doc:    doc,
		charts: render.NewCharts(chart.NewPlotlySink(doc), opts.Logger),
		opts:   opts,
		log:    opts.Logger,
	}, nil
}

// Document returns the page tree.
func (p *page) Document() *dom.Document {
	return p.doc
}

// WriteHTML writes the page as HTML.
func (p *page) WriteHTML(w io.Writer) error {
	return p.doc.Render(w)
}
