// Package server wires the services, the Huma API and the viewer page into
// one http.Handler.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/joeblew999/colegis/internal/api"
	"github.com/joeblew999/colegis/internal/api/viewer"
	"github.com/joeblew999/colegis/internal/db"
	"github.com/joeblew999/colegis/internal/service"
	"github.com/joeblew999/colegis/internal/style"
	"github.com/joeblew999/colegis/internal/templates"
)

// Config holds the server configuration.
type Config struct {
	Host      string
	Port      string
	DataDir   string // input files and layers.json
	SourceURL string // remote base URL for the inputs; empty reads DataDir
	WebDir    string // optional web/ directory with static files and template overrides
	NoDB      bool   // skip DuckDB
}

// Server is the district map HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	db       *sql.DB
	services *api.Services
	renderer *templates.Renderer
}

// New builds the server. It does not fetch any input; call Load for that.
func New(cfg Config) (*Server, error) {
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("colegis API", "1.0.0")
	humaConfig.Info.Description = "Colorado legislative district maps: composed map scenes, legislator roster and overlay toggles."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	// Disable $schema property in responses (cleaner JSON)
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}
	humaConfig.Transformers = append(humaConfig.Transformers, api.LinkTransformer())

	humaAPI := humago.New(mux, humaConfig)

	renderer := templates.Default()
	if cfg.WebDir != "" {
		dir := filepath.Join(cfg.WebDir, "templates")
		r, err := templates.New(dir)
		if err != nil {
			return nil, eris.Wrapf(err, "server: load templates from %s", dir)
		}
		renderer = r
		zap.L().Info("loaded template overrides", zap.String("dir", dir))
	}

	fetcher, err := service.NewFetcher(cfg.DataDir, cfg.SourceURL)
	if err != nil {
		return nil, eris.Wrap(err, "server: create fetcher")
	}

	layers := service.NewLayerService(cfg.DataDir)
	composer := service.NewComposer(fetcher, layers, service.ComposerOptions{
		Resolver: style.NewResolver(renderer),
	})

	services := &api.Services{
		Layer:  layers,
		Source: service.NewSourceService(cfg.DataDir, layers),
		Atlas:  service.NewAtlasService(composer, service.NewEventBus()),
	}

	s := &Server{
		config:   cfg,
		mux:      mux,
		humaAPI:  humaAPI,
		services: services,
		renderer: renderer,
	}

	if !cfg.NoDB {
		conn, err := db.Get(db.Config{DataDir: cfg.DataDir, DBName: "colegis"})
		if err != nil {
			zap.L().Warn("duckdb unavailable", zap.Error(err))
		} else {
			s.db = conn
			services.Atlas.OnLoad(s.storeRoster)
		}
	}

	s.routes()
	return s, nil
}

// Load composes the maps for the first time.
func (s *Server) Load(ctx context.Context) error {
	return s.services.Atlas.Reload(ctx)
}

// Services returns the services behind the API.
func (s *Server) Services() *api.Services {
	return s.services
}

// OpenAPI returns the generated OpenAPI document.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close closes server resources.
func (s *Server) Close() error {
	if s.db == nil {
		return nil
	}
	return db.Close()
}

func (s *Server) storeRoster(ctx context.Context, atlas *service.Atlas) {
	if err := db.LoadLegislators(ctx, s.db, atlas.Records); err != nil {
		zap.L().Warn("store roster in duckdb", zap.Error(err))
	}
}

func (s *Server) routes() {
	api.RegisterRoutes(s.humaAPI, s.services)
	api.NewInfoHandler(s.config.DataDir, s.config.SourceURL, s.db != nil).RegisterRoutes(s.humaAPI)
	api.NewDBHandler(s.db).RegisterRoutes(s.humaAPI)
	viewer.NewHandler(s.services.Atlas, s.renderer).RegisterRoutes(s.humaAPI)

	if s.config.WebDir != "" {
		staticDir := filepath.Join(s.config.WebDir, "static")
		s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	s.mux.HandleFunc("/viewer", s.handleViewer)
	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "colegis",
		"status":  "running",
		"viewer":  "/viewer",
		"docs":    "/docs",
	})
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	atlas, err := s.services.Atlas.Current()
	if err != nil {
		http.Error(w, "Maps not loaded yet", http.StatusServiceUnavailable)
		return
	}
	html, err := s.renderer.Render("viewer", viewer.NewPageData(atlas))
	if err != nil {
		zap.L().Error("render viewer", zap.Error(err))
		http.Error(w, "Failed to render viewer", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
