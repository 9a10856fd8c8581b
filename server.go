package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

const maxCodeBody = 1 << 20

type conversionResponse struct {
	Path  []Waypoint `json:"path"`
	Code  string     `json:"code"`
	Share string     `json:"share"`
	URL   string     `json:"url,omitempty"`
}

type generateRequest struct {
	Path []Waypoint `json:"path"`
}

type errResponse struct {
	Error string `json:"error"`
}

// converter serves stateless conversions between code, path JSON and share
// links. Each request works on its own PathEditor.
type converter struct {
	config *Config
	logger *slog.Logger
}

func newRouter(cfg *Config, logger *slog.Logger) chi.Router {
	c := &converter{config: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", c.Parse)
		r.Post("/generate", c.Generate)
		r.Get("/share", c.Share)
	})
	return r
}

func (c *converter) newEditor() *PathEditor {
	t := NewTranslator(c.config.Field.Width, c.config.Field.Height, WithFieldSize(c.config.Field.Width, c.config.Field.Height))
	return NewPathEditor(t, WithLogger(c.logger), WithDefaultTimeout(c.config.Field.DefaultTimeout))
}

func (c *converter) respond(w http.ResponseWriter, e *PathEditor, url string) {
	share, err := e.ShareLink(c.config.Share.BaseURL, c.config.Share.Param)
	if err != nil {
		c.logger.Error("share link failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, conversionResponse{
		Path:  e.Waypoints(),
		Code:  e.Code(),
		Share: share,
		URL:   url,
	})
}

// Parse handles POST /api/parse with motion-control code as the body.
func (c *converter) Parse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCodeBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "unreadable body"})
		return
	}
	e := c.newEditor()
	if err := e.Import(string(body)); err != nil {
		c.logger.Info("parse rejected", slog.String("error", err.Error()))
		writeJSON(w, http.StatusUnprocessableEntity, errResponse{Error: err.Error()})
		return
	}
	c.respond(w, e, "")
}

// Generate handles POST /api/generate with {"path": [...]}.
func (c *converter) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxCodeBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid JSON body"})
		return
	}
	e := c.newEditor()
	if err := e.Load(req.Path); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errResponse{Error: err.Error()})
		return
	}
	c.respond(w, e, "")
}

// Share handles GET /api/share. The payload parameter is optional; the
// response carries the request URL with the parameter stripped.
func (c *converter) Share(w http.ResponseWriter, r *http.Request) {
	path, stripped, err := DecodeShareURL(r.URL.String(), c.config.Share.Param)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: err.Error()})
		return
	}
	e := c.newEditor()
	if err := e.Load(path); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errResponse{Error: err.Error()})
		return
	}
	c.respond(w, e, stripped)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// runServer serves the conversion API until ctx is cancelled or a shutdown
// signal arrives.
func runServer(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Address(),
		Handler:           newRouter(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Server stopped successfully")
	return nil
}
