package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DeafMist/news-dashboard/internal/config"
	"github.com/DeafMist/news-dashboard/internal/dataset"
	"github.com/DeafMist/news-dashboard/internal/elasticsearch"
	"github.com/DeafMist/news-dashboard/internal/logger"
)

func main() {
	log := logger.New("dashboard")
	cfg, err := config.LoadDashboard()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var (
		health healthChecker
		src    = dataset.NewSource(cfg.DataSource, cfg.FetchTimeout)
	)
	if cfg.UsesElasticsearch() {
		es, err := elasticsearch.Connect(ctx, cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log, 10)
		if err != nil {
			log.Error("init elasticsearch", slog.Any("err", err))
			os.Exit(1)
		}
		src = dataset.StoreSource{Store: es, Name: cfg.ElasticsearchIndex, ID: cfg.ElasticsearchDocument}
		health = es
	}

	srv, err := newServer(ctx, log, cfg, dataset.NewLoader(src, log), health)
	if err != nil {
		log.Error("init dashboard", slog.Any("err", err))
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		log.Info("dashboard server starting",
			slog.String("addr", cfg.BindAddr),
			slog.String("variant", cfg.Variant),
			slog.String("source", src.String()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}
