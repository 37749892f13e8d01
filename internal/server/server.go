// Package server serves a live preview of the dashboard. Every request
// reloads the survey, so edits to the data file show up on refresh.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KaramelBytes/heartviz/internal/chart"
	"github.com/KaramelBytes/heartviz/internal/dashboard"
	"github.com/KaramelBytes/heartviz/internal/logger"
	"github.com/KaramelBytes/heartviz/internal/survey"
	"github.com/KaramelBytes/heartviz/internal/utils"
)

// Options configures the preview server.
type Options struct {
	Title  string
	Load   func() (*survey.Dataset, error)
	Charts chart.Options
	Theme  chart.Theme
}

// Server renders charts on demand.
type Server struct {
	router *chi.Mux
	opt    Options
}

// New builds the router.
func New(opt Options) *Server {
	if opt.Title == "" {
		opt.Title = "Heart Disease Dashboard"
	}
	s := &Server{router: chi.NewRouter(), opt: opt}
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/charts/{id}.svg", s.handleSVG)
	s.router.Get("/data/{id}.json", s.handleData)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sidebar, err := dashboard.SidebarFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := &dashboard.Page{
		Title:   s.opt.Title,
		Sidebar: sidebar,
		Link:    func(id string) string { return "/charts/" + id + ".svg" },
	}
	status := http.StatusOK
	if err := s.buildPage(r.Context(), page); err != nil {
		logger.Log.WithError(err).Error("dashboard load failed")
		page.Error = err.Error()
		status = http.StatusInternalServerError
	}

	var buf bytes.Buffer
	if err := dashboard.Write(&buf, page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) buildPage(ctx context.Context, page *dashboard.Page) error {
	ds, err := s.opt.Load()
	if err != nil {
		return err
	}
	page.Source, page.Rows, page.Warnings = ds.Name, ds.Rows, ds.Warnings
	specs, err := chart.Catalog(s.opt.Charts)
	if err != nil {
		return err
	}
	_, err = chart.RenderAll(ctx, specs, ds.Records, s.opt.Theme, func(res chart.Result) error {
		page.Sections = append(page.Sections, dashboard.NewSection(res))
		return nil
	})
	return err
}

// build loads the survey and builds one chart. Unknown ids are reported
// before the data is touched.
func (s *Server) build(w http.ResponseWriter, r *http.Request) (*chart.Data, bool) {
	id := chi.URLParam(r, "id")
	spec, err := chart.Find(id, s.opt.Charts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chart.ErrUnknownChart) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return nil, false
	}
	ds, err := s.opt.Load()
	if err != nil {
		logger.Log.WithError(err).WithField("chart", id).Error("survey load failed")
		http.Error(w, "failed to load data: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	d, err := chart.Build(spec, ds.Records)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return d, true
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	d, ok := s.build(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.Render(&buf, d, s.opt.Theme); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	d, ok := s.build(w, r)
	if !ok {
		return
	}
	b, err := utils.PrettyJSON(d)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
