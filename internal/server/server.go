// Package server assembles the POS HTTP server: feature routes, static
// assets behind the install-time cache, and the live event socket.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakchai-01/school-pos/internal/account"
	"github.com/sakchai-01/school-pos/internal/assetcache"
	"github.com/sakchai-01/school-pos/internal/db"
	"github.com/sakchai-01/school-pos/internal/menu"
	"github.com/sakchai-01/school-pos/internal/notify"
	"github.com/sakchai-01/school-pos/internal/order"
	"github.com/sakchai-01/school-pos/internal/report"
	"github.com/sakchai-01/school-pos/internal/session"
)

// Config holds server configuration.
type Config struct {
	Port      int
	DataDir   string // directory for the SQLite database
	StaticDir string // directory of static assets, served under /static/
	AllowAll  bool   // allow all CORS origins (dev mode)
}

// Server is the canteen POS server.
type Server struct {
	cfg        Config
	db         *db.DB
	sessions   *session.Manager
	notifier   *notify.Center
	hub        *Hub
	cache      *assetcache.Cache
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all feature routes mounted.
func New(cfg Config, database *db.DB) *Server {
	s := &Server{
		cfg:      cfg,
		db:       database,
		sessions: session.NewManager(),
		notifier: notify.New(),
	}
	s.hub = NewHub(s.notifier)
	s.router = s.buildRouter()
	s.cache = assetcache.New(s.router)
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Entry page. Terminals with a static bundle get its index.html,
	// otherwise a plain landing page so the asset manifest can cache "/".
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		if s.cfg.StaticDir != "" {
			index := filepath.Join(s.cfg.StaticDir, "index.html")
			if _, err := os.Stat(index); err == nil {
				http.ServeFile(w, req, index)
				return
			}
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<!DOCTYPE html><html><body><h1>School POS</h1></body></html>"))
	})

	accounts := account.NewStore(s.db)
	menus := menu.NewStore(s.db)
	orders := order.NewStore(s.db)

	account.RegisterRoutes(r, accounts, s.sessions)
	session.RegisterRoutes(r, s.sessions)
	menu.RegisterRoutes(r, menus, s.sessions, s.notifier)
	order.RegisterRoutes(r, orders, s.sessions, s.notifier)
	report.RegisterRoutes(r, orders, s.sessions)

	r.Get("/ws/events", s.hub.HandleWebSocket)

	if s.cfg.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// Sessions returns the session manager.
func (s *Server) Sessions() *session.Manager { return s.sessions }

// Notifier returns the event center feature handlers publish to.
func (s *Server) Notifier() *notify.Center { return s.notifier }

// Handler returns the outermost handler: the asset cache in front of the
// router.
func (s *Server) Handler() http.Handler { return s.cache }

// InstallAssets captures the named assets into the in-memory cache. Glob
// patterns expand against the configured static directory.
func (s *Server) InstallAssets(ctx context.Context, manifest []string) error {
	if len(manifest) == 0 {
		return nil
	}
	var staticFS = os.DirFS(s.cfg.StaticDir)
	if s.cfg.StaticDir == "" {
		staticFS = nil
	}
	if err := s.cache.Install(ctx, staticFS, manifest); err != nil {
		return fmt.Errorf("installing asset cache: %w", err)
	}
	log.Printf("server: cached %d static assets", s.cache.Len())
	return nil
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	s.hub.Run()

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("school-pos server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
