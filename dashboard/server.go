package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DeafMist/news-dashboard/internal/config"
	"github.com/DeafMist/news-dashboard/internal/dashboard"
	"github.com/DeafMist/news-dashboard/internal/dataset"
	"github.com/DeafMist/news-dashboard/internal/dom"
	"github.com/DeafMist/news-dashboard/internal/metrics"
	"github.com/DeafMist/news-dashboard/internal/models"
	"github.com/DeafMist/news-dashboard/internal/session"
)

const sessionCookie = "dashboard_session"

type healthChecker interface {
	Health(ctx context.Context) error
}

type server struct {
	log *slog.Logger
	cfg *config.Dashboard
	es  healthChecker

	loadErr error

	// simple variant: rendered once at startup
	simplePage []byte

	// interactive variant: one page per session over a shared dataset
	data     *models.InteractiveDataset
	sessions *session.Store
}

type errorResponse struct {
	Error string `json:"error"`
}

type stateResponse struct {
	CurrentTopic    *string  `json:"current_topic"`
	SourceFilter    string   `json:"source_filter"`
	CountryFilter   string   `json:"country_filter"`
	VisibleArticles int      `json:"visible_articles"`
	Topics          []string `json:"topics"`
}

// newServer loads the dataset once. A load failure does not stop the
// server; every page shows the failure state instead.
func newServer(ctx context.Context, log *slog.Logger, cfg *config.Dashboard, loader *dataset.Loader, es healthChecker) (*server, error) {
	s := &server{log: log, cfg: cfg, es: es}

	switch cfg.Variant {
	case config.VariantSimple:
		if err := s.loadSimple(ctx, loader); err != nil {
			return nil, err
		}
	default:
		s.data, s.loadErr = loader.LoadInteractive(ctx)
		s.sessions = session.NewStore(cfg.SessionCapacity, cfg.SessionTTL)
	}

	return s, nil
}

func (s *server) options() dashboard.Options {
	return dashboard.Options{Placeholder: s.cfg.PlaceholderImage, Logger: s.log}
}

func (s *server) loadSimple(ctx context.Context, loader *dataset.Loader) error {
	page, err := dashboard.NewSimple(s.options())
	if err != nil {
		return err
	}

	ds, err := loader.LoadSimple(ctx)
	if err != nil {
		s.loadErr = err
		page.Fail(err)
	} else if err := page.Render(ds); err != nil {
		return fmt.Errorf("render simple dashboard: %w", err)
	}

	var buf bytes.Buffer
	if err := page.WriteHTML(&buf); err != nil {
		return err
	}
	s.simplePage = buf.Bytes()
	return nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(dashboard.Static))))
	r.Get("/", s.handleIndex)

	if s.sessions != nil {
		r.Post("/events", s.handleEvent)
		r.Get("/api/state", s.handleState)
	}

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.loadErr != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: s.loadErr.Error()})
		return
	}

	if s.es != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.es.Health(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.PageRenderSeconds.Observe(time.Since(start).Seconds())
	}()

	if s.sessions == nil {
		writeHTML(w, s.simplePage)
		return
	}

	sess, err := s.session(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := sess.Do(func(d *dashboard.Interactive) error { return d.WriteHTML(&buf) }); err != nil {
		s.log.Error("render page", slog.String("session", sess.ID), slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "render failed"})
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *server) handleEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	target := strings.TrimSpace(r.PostForm.Get("target"))
	event := strings.TrimSpace(r.PostForm.Get("event"))
	value := r.PostForm.Get("value")
	if target == "" || event == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "target and event are required"})
		return
	}

	sess, err := s.session(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	err = sess.Do(func(d *dashboard.Interactive) error { return d.Dispatch(target, event, value) })
	switch {
	case err == nil:
	case errors.Is(err, dashboard.ErrUnknownTopic), errors.Is(err, dashboard.ErrNoTopic), errors.Is(err, dom.ErrNoListener):
		s.log.Warn("event ignored",
			slog.String("session", sess.ID),
			slog.String("target", target),
			slog.String("event", event),
			slog.Any("err", err),
		)
	default:
		s.log.Error("dispatch event", slog.String("session", sess.ID), slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "event failed"})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	var resp stateResponse
	err = sess.Do(func(d *dashboard.Interactive) error {
		st := d.State()
		if st.Initialized() {
			topic := st.CurrentTopic
			resp.CurrentTopic = &topic
		}
		resp.SourceFilter = st.SourceFilter
		resp.CountryFilter = st.CountryFilter
		resp.VisibleArticles = len(d.Visible())
		return nil
	})
	if err != nil {
		s.log.Error("read state", slog.String("session", sess.ID), slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "state unavailable"})
		return
	}

	resp.Topics = make([]string, 0)
	if s.data != nil {
		for _, t := range s.data.Topics {
			resp.Topics = append(resp.Topics, t.Key)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// session returns the caller's session, creating a page and cookie on first
// visit or after expiry.
func (s *server) session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.Get(c.Value); ok {
			return sess, nil
		}
	}

	page, err := dashboard.NewInteractive(s.options())
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	if s.loadErr != nil {
		page.Fail(s.loadErr)
	} else if err := page.Init(s.data); err != nil {
		s.log.Error("init page", slog.Any("err", err))
	}

	sess := s.sessions.Create(page)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(s.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.log.Debug("session created", slog.String("session", sess.ID))
	return sess, nil
}

func writeHTML(w http.ResponseWriter, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
