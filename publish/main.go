package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DeafMist/news-dashboard/internal/config"
	"github.com/DeafMist/news-dashboard/internal/dataset"
	"github.com/DeafMist/news-dashboard/internal/elasticsearch"
	"github.com/DeafMist/news-dashboard/internal/logger"
)

type documentPutter interface {
	PutDocument(ctx context.Context, id string, body []byte) error
}

func main() {
	log := logger.New("publish")
	cfg, err := config.LoadPublish()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	es, err := elasticsearch.Connect(ctx, cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log, 10)
	if err != nil {
		log.Error("connect elasticsearch", slog.Any("err", err))
		os.Exit(1)
	}

	src := dataset.NewSource(cfg.DataSource, cfg.FetchTimeout)
	if err := publish(ctx, log, src, cfg.Variant, es, cfg.ElasticsearchDocument); err != nil {
		log.Error("publish dataset", slog.String("source", src.String()), slog.Any("err", err))
		os.Exit(1)
	}
}

// publish reads a dataset, checks that it parses as the given variant and
// stores it unchanged under id.
func publish(ctx context.Context, log *slog.Logger, src dataset.Source, variant string, store documentPutter, id string) error {
	start := time.Now()

	body, err := src.Read(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	articles, err := validate(body, variant)
	if err != nil {
		return fmt.Errorf("validate %s: %w", src, err)
	}

	if err := store.PutDocument(ctx, id, body); err != nil {
		return err
	}

	log.Info("dataset published",
		slog.String("source", src.String()),
		slog.String("variant", variant),
		slog.String("document", id),
		slog.Int("articles", articles),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

// validate returns the number of articles the document carries.
func validate(body []byte, variant string) (int, error) {
	switch variant {
	case config.VariantSimple:
		ds, err := dataset.ParseSimple(body)
		if err != nil {
			return 0, err
		}
		return len(ds.Articles), nil
	case config.VariantInteractive:
		ds, err := dataset.ParseInteractive(body)
		if err != nil {
			return 0, err
		}
		n := 0
		for _, t := range ds.Topics {
			n += len(t.Data.Articles)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", variant)
	}
}
