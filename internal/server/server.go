// Package server is the development server: it serves the built site,
// exposes the build ledger, and pushes live-reload events to open pages.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/exec"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	slogchi "github.com/samber/slog-chi"

	"github.com/ziadkadry99/codex/internal/history"
)

// Config holds server configuration.
type Config struct {
	Port       int
	Dir        string // directory containing the built site
	AllowAll   bool   // allow all CORS origins
	LiveReload bool   // inject the reload client and serve /__livereload
}

// Server serves a built codex.
type Server struct {
	cfg        Config
	log        *slog.Logger
	ledger     *history.Store
	hub        *Hub
	router     chi.Router
	httpServer *http.Server

	rebuildMu sync.Mutex
}

// New creates a server. ledger may be nil.
func New(cfg Config, logger *slog.Logger, ledger *history.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		log:    logger,
		ledger: ledger,
		hub:    NewHub(logger),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(slogchi.New(s.log))
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if s.ledger != nil {
		history.RegisterRoutes(r, s.ledger)
	}
	if s.cfg.LiveReload {
		r.Get(ReloadPath, s.hub.ServeWS)
	}

	r.Handle("/*", s.siteHandler())
	return r
}

// siteHandler serves the built files. HTML pages get the live-reload
// client injected when enabled.
func (s *Server) siteHandler() http.Handler {
	root := http.Dir(s.cfg.Dir)
	files := http.FileServer(root)
	if !s.cfg.LiveReload {
		return files
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/") {
			name = path.Join(name, "index.html")
		}
		if !strings.HasSuffix(name, ".html") {
			files.ServeHTTP(w, r)
			return
		}

		f, err := root.Open(name)
		if err != nil {
			files.ServeHTTP(w, r)
			return
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil || info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		data, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		http.ServeContent(w, r, name, info.ModTime(), bytes.NewReader(InjectLiveReload(data)))
	})
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live-reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Rebuild runs fn while holding the rebuild lock. A failed rebuild is
// logged and the last good output keeps being served; a successful one
// reloads every connected page.
func (s *Server) Rebuild(ctx context.Context, fn func(context.Context) error) error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	if err := fn(ctx); err != nil {
		s.log.Warn("rebuild failed, serving previous output", "err", err)
		return err
	}
	n := s.hub.Broadcast()
	s.log.Info("rebuilt site", "reloaded_clients", n)
	return nil
}

// Start begins listening on the configured port and blocks until the
// server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("codex server listening", "addr", addr, "dir", s.cfg.Dir)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server and closes reload clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

