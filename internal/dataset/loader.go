package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/DeafMist/news-dashboard/internal/metrics"
	"github.com/DeafMist/news-dashboard/internal/models"
)

// LoadError reports that the dataset could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader reads the dataset once. It never retries.
type Loader struct {
	src Source
	log *slog.Logger
}

// NewLoader returns a loader for src.
func NewLoader(src Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{src: src, log: logger}
}

// LoadSimple reads and parses a single-topic document.
func (l *Loader) LoadSimple(ctx context.Context) (*models.SimpleDataset, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	ds, err := ParseSimple(data)
	if err != nil {
		return nil, l.fail(err)
	}
	l.succeed(slog.Int("articles", len(ds.Articles)), slog.Int("visualizations", len(ds.Visualizations)))
	return ds, nil
}

// LoadInteractive reads and parses a multi-topic document.
func (l *Loader) LoadInteractive(ctx context.Context) (*models.InteractiveDataset, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	ds, err := ParseInteractive(data)
	if err != nil {
		return nil, l.fail(err)
	}
	l.succeed(slog.Int("topics", len(ds.Topics)))
	return ds, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	data, err := l.src.Read(ctx)
	if err != nil {
		return nil, l.fail(err)
	}
	return data, nil
}

func (l *Loader) fail(err error) error {
	metrics.DatasetLoads.WithLabelValues(metrics.StatusError).Inc()
	loadErr := &LoadError{Source: l.src.String(), Err: err}
	l.log.Error("load dataset", slog.String("source", loadErr.Source), slog.Any("err", err))
	return loadErr
}

func (l *Loader) succeed(attrs ...any) {
	metrics.DatasetLoads.WithLabelValues(metrics.StatusOK).Inc()
	l.log.Info("dataset loaded", append([]any{slog.String("source", l.src.String())}, attrs...)...)
}
